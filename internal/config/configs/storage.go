package configs

import "fmt"

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Storage selects the campaign repository backend. The memory driver keeps
// everything in process and loses it on exit; postgres and sqlite persist
// campaigns, history rows and ledger accounts.
type Storage struct {
	// Driver is one of memory (default), postgres or sqlite.
	Driver string `env:"DRIVER" envDefault:"memory"`
}

// Validate reports an unknown driver.
func (s Storage) Validate() error {
	switch s.Driver {
	case DriverMemory, DriverPostgres, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
}

// SQLite configures the embedded database file. Its parent directory is
// created on open and migrations are applied before first use.
type SQLite struct {
	// Path is the database file. Defaults to ./data/crowdfund.db.
	Path string `env:"PATH" envDefault:"./data/crowdfund.db"`
}
