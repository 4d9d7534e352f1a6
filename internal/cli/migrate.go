package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"crowdfund/internal/config/configs"
	"crowdfund/internal/db"
)

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured storage driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch a.cfg.Storage.Driver {
			case configs.DriverPostgres:
				if err := db.MigratePostgres(a.cfg.Psql.Addr.String()); err != nil {
					return fmt.Errorf("migrate postgres: %w", err)
				}
			case configs.DriverSQLite:
				conn, err := db.OpenSQLite(a.cfg.SQLite.Path)
				if err != nil {
					return err
				}
				_ = conn.Close()
			default:
				return fmt.Errorf("storage driver %q has no schema to migrate", a.cfg.Storage.Driver)
			}
			a.logger.Info("migrations applied successfully")
			return nil
		},
	}
}
