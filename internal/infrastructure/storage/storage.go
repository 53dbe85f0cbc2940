package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/config"
	"loancalc/internal/domain/calculation"
	"loancalc/internal/domain/session"
	"loancalc/internal/domain/user"
	"loancalc/internal/infrastructure/migration"
	"loancalc/internal/infrastructure/storage/postgres"
	"loancalc/internal/infrastructure/storage/sqlite"
)

// Store объединяет репозитории выбранного драйвера
type Store struct {
	Users        user.Repository
	Sessions     session.Repository
	Calculations calculation.Repository

	close func() error
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// New применяет миграции и открывает хранилище, заданное DB_DRIVER.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Store, error) {
	return open(ctx, cfg, log, migration.DefaultEngine)
}

func open(ctx context.Context, cfg *config.Config, log *slog.Logger, engine migration.MigrationEngine) (*Store, error) {
	if err := migration.NewMigration(cfg, engine).Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		log.Info("storage ready", "driver", cfg.DB.Driver)
		return &Store{
			Users:        postgres.NewUserRepository(db.Pool(), log),
			Sessions:     postgres.NewSessionRepository(db.Pool(), log),
			Calculations: postgres.NewCalculationRepository(db.Pool(), log),
			close:        db.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		log.Info("storage ready", "driver", cfg.DB.Driver, "path", cfg.DB.DatabaseURI)
		return &Store{
			Users:        sqlite.NewUserRepository(db.DB(), log),
			Sessions:     sqlite.NewSessionRepository(db.DB(), log),
			Calculations: sqlite.NewCalculationRepository(db.DB(), log),
			close:        db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", migration.ErrUnknownDriver, cfg.DB.Driver)
	}
}
