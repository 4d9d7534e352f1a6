package cli

import (
	"context"
	"fmt"
	"log/slog"

	"crowdfund/internal/adapter/memory"
	"crowdfund/internal/adapter/postgres"
	"crowdfund/internal/adapter/sqlite"
	"crowdfund/internal/adapter/usecase"
	"crowdfund/internal/config/configs"
	"crowdfund/internal/core/port"
	"crowdfund/internal/db"
	"crowdfund/internal/metrics"
)

// openRepository builds the configured storage backend. The returned func
// releases it.
func (a *app) openRepository(ctx context.Context) (port.CampaignRepository, func(), error) {
	switch a.cfg.Storage.Driver {
	case configs.DriverPostgres:
		if a.cfg.Psql.RunMigrations {
			if err := db.MigratePostgres(a.cfg.Psql.Addr.String()); err != nil {
				return nil, nil, fmt.Errorf("migrate postgres: %w", err)
			}
			a.logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, a.cfg.Psql)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection: %w", err)
		}
		return postgres.NewCampaignRepository(pool), pool.Close, nil

	case configs.DriverSQLite:
		conn, err := db.OpenSQLite(a.cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewCampaignRepository(conn), func() {
			if err := conn.Close(); err != nil {
				a.logger.Error("close sqlite", slog.Any("error", err))
			}
		}, nil

	default:
		return memory.NewCampaignRepository(), func() {}, nil
	}
}

func (a *app) newUseCase(repo port.CampaignRepository, m *metrics.Metrics) *usecase.CampaignUseCase {
	return usecase.NewCampaignUseCase(repo, a.cfg.Factory.Address,
		usecase.WithLogger(a.logger),
		usecase.WithMetrics(m),
	)
}
