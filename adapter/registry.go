package adapter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nitinet/dblink-core/config"
	"github.com/nitinet/dblink-core/mariadb"
	"github.com/nitinet/dblink-core/mssql"
	"github.com/nitinet/dblink-core/postgres"
	"github.com/nitinet/dblink-core/sqlite"
)

// Driver binds a dialect name to a database/sql driver.
type Driver struct {
	Name    string // database/sql driver name
	Dialect func() Dialect
	DSN     func(cfg *config.Config) (string, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Driver)
)

func init() {
	Register("postgres", Driver{Name: "pgx", Dialect: func() Dialect { return postgres.New() }, DSN: postgresDSN})
	Register("mariadb", Driver{Name: "mysql", Dialect: func() Dialect { return mariadb.New() }, DSN: mariadbDSN})
	Register("mssql", Driver{Name: "sqlserver", Dialect: func() Dialect { return mssql.New() }, DSN: mssqlDSN})
	Register("sqlite", Driver{Name: "sqlite", Dialect: func() Dialect { return sqlite.New() }, DSN: sqliteDSN})
}

// Register adds or replaces the driver for a dialect name.
func Register(name string, d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = d
}

// Lookup retrieves the driver registered for a dialect name.
func Lookup(name string) (Driver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	return d, ok
}

// ListDialects returns all registered dialect names (sorted).
func ListDialects() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownDialectError is returned when no driver is registered for a dialect.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (available: %v)", e.Name, e.Available)
}
