package adapter

import (
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/nitinet/dblink-core/config"
)

// postgresDSN builds a key=value connection string for pgx.
func postgresDSN(cfg *config.Config) (string, error) {
	params := map[string]string{
		"host":    orDefault(cfg.Host, config.DefaultHost),
		"port":    strconv.Itoa(portOf(cfg)),
		"dbname":  cfg.Database,
		"sslmode": "disable",
	}
	if cfg.Username != "" {
		params["user"] = cfg.Username
	}
	if cfg.Password != "" {
		params["password"] = cfg.Password
	}
	for k, v := range cfg.Options {
		params[k] = v
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if params[k] != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + quoteValue(params[k])
	}
	return strings.Join(parts, " "), nil
}

// quoteValue quotes a libpq keyword value when it contains spaces or quotes.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func mariadbDSN(cfg *config.Config) (string, error) {
	c := mysql.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(orDefault(cfg.Host, config.DefaultHost), strconv.Itoa(portOf(cfg)))
	c.DBName = cfg.Database
	c.ParseTime = true
	if len(cfg.Options) > 0 {
		c.Params = make(map[string]string, len(cfg.Options))
		for k, v := range cfg.Options {
			c.Params[k] = v
		}
	}
	return c.FormatDSN(), nil
}

func mssqlDSN(cfg *config.Config) (string, error) {
	q := url.Values{}
	if cfg.Database != "" {
		q.Set("database", cfg.Database)
	}
	for k, v := range cfg.Options {
		q.Set(k, v)
	}
	u := url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(orDefault(cfg.Host, config.DefaultHost), strconv.Itoa(portOf(cfg))),
		RawQuery: q.Encode(),
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String(), nil
}

// sqliteDSN passes the database path through; options become query parameters
// such as _pragma=foreign_keys(1).
func sqliteDSN(cfg *config.Config) (string, error) {
	if len(cfg.Options) == 0 {
		return cfg.Database, nil
	}
	q := url.Values{}
	for k, v := range cfg.Options {
		q.Set(k, v)
	}
	return "file:" + cfg.Database + "?" + q.Encode(), nil
}

func portOf(cfg *config.Config) int {
	if cfg.Port != 0 {
		return cfg.Port
	}
	return config.DefaultPort(cfg.Dialect)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
