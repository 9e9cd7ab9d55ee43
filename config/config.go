// Package config loads database connection settings.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DBLINK_"

// Defaults.
const (
	DefaultHost            = "localhost"
	DefaultConnectionLimit = 10
)

// Config holds connection settings for one database.
type Config struct {
	Dialect         string            `koanf:"dialect"`
	Host            string            `koanf:"host"`
	Port            int               `koanf:"port"`
	Username        string            `koanf:"username"`
	Password        string            `koanf:"password"`
	Database        string            `koanf:"database"`
	ConnectionLimit int               `koanf:"connection_limit"`
	ConnMaxLifetime time.Duration     `koanf:"conn_max_lifetime"`
	Options         map[string]string `koanf:"options"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads configuration in order of increasing precedence:
// defaults, the YAML file at path (skipped when path is empty), then
// DBLINK_* environment variables. ${VAR} references in credentials and
// addresses are expanded.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"host":             DefaultHost,
		"connection_limit": DefaultConnectionLimit,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// DBLINK_CONNECTION_LIMIT -> connection_limit
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Host = expandEnvVars(cfg.Host)
	cfg.Username = expandEnvVars(cfg.Username)
	cfg.Password = expandEnvVars(cfg.Password)
	cfg.Database = expandEnvVars(cfg.Database)
	cfg.Dialect = strings.ToLower(strings.TrimSpace(cfg.Dialect))
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills the dialect port when none is set.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort(c.Dialect)
	}
	if c.ConnectionLimit == 0 {
		c.ConnectionLimit = DefaultConnectionLimit
	}
}

// Validate checks that the configuration names a known dialect and a target.
func (c *Config) Validate() error {
	switch c.Dialect {
	case "":
		return fmt.Errorf("dialect is required")
	case "sqlite":
		if c.Database == "" {
			return fmt.Errorf("database is required for sqlite (use :memory: for an in-memory database)")
		}
		return nil
	case "postgres", "mariadb", "mssql":
	default:
		return fmt.Errorf("unknown dialect %q", c.Dialect)
	}

	if c.Host == "" {
		return fmt.Errorf("host is required for %s", c.Dialect)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.ConnectionLimit < 0 {
		return fmt.Errorf("connection_limit must be non-negative, got %d", c.ConnectionLimit)
	}
	return nil
}

// DefaultPort returns the conventional server port of a dialect, or 0.
func DefaultPort(dialect string) int {
	switch dialect {
	case "postgres":
		return 5432
	case "mariadb":
		return 3306
	case "mssql":
		return 1433
	default:
		return 0
	}
}

// expandEnvVars expands ${VAR} patterns. Unset variables are left as-is.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}
