package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register database drivers for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"loancalc/internal/app/server/config"
	"loancalc/migrations"
)

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(driver, databaseURL string) (Migrator, error)

var ErrUnknownDriver = errors.New("unknown database driver")

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	return &Migration{
		cfg:    conf,
		engine: engine,
	}
}

// DefaultEngine читает встроенные SQL-файлы для выбранного драйвера
func DefaultEngine(driver, databaseURL string) (Migrator, error) {
	src, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// DatabaseURL приводит DSN из конфига к виду, который понимает migrate.
func DatabaseURL(driver, dsn string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return dsn, nil
	case config.DriverSQLite:
		return "sqlite3://" + strings.TrimPrefix(dsn, "file:"), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func (mg *Migration) Up() (err error) {
	url, err := DatabaseURL(mg.cfg.DB.Driver, mg.cfg.DB.DatabaseURI)
	if err != nil {
		return err
	}

	m, err := mg.engine(mg.cfg.DB.Driver, url)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
