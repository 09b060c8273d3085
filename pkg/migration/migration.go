package migration

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/saransh1220/notify-dispatch/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

// Runner applies schema migrations to one database.
type Runner struct {
	migrationsPath string
	databaseURL    string
	log            *zap.Logger
}

func NewRunner(migrationsPath, databaseURL string, log *zap.Logger) *Runner {
	return &Runner{migrationsPath: migrationsPath, databaseURL: databaseURL, log: log}
}

// Up runs all pending migrations
func (r *Runner) Up() error {
	m, err := r.getMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			r.log.Info("no new migrations to run")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.log.Info("migrations completed")
	return nil
}

// Version returns the current migration version
func (r *Runner) Version() (uint, bool, error) {
	m, err := r.getMigrate()
	if err != nil {
		return 0, false, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if err == migrate.ErrNilVersion {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}

	return version, dirty, nil
}

func (r *Runner) getMigrate() (*migrate.Migrate, error) {
	db, err := sql.Open("postgres", r.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	return migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", r.migrationsPath),
		"postgres",
		driver,
	)
}

// AutoMigrate brings the primary database and every configured tenant
// database up to the current schema on startup. Each tenant's store is
// isolated, so each gets the full migration set.
func AutoMigrate(cfg config.Config, log *zap.Logger) error {
	targets := map[string]string{
		cfg.Tenants.DefaultTenant: cfg.Database.DSN(),
	}
	for tenantID, dsn := range cfg.Tenants.DSNs {
		targets[tenantID] = dsn
	}

	for tenantID, dsn := range targets {
		tlog := log.With(zap.String("tenant", tenantID))

		runner := NewRunner(cfg.Server.MigrationsPath, dsn, tlog)

		version, dirty, err := runner.Version()
		if err != nil {
			return fmt.Errorf("tenant %s: %w", tenantID, err)
		}
		if dirty {
			return fmt.Errorf("tenant %s: database in dirty state at version %d", tenantID, version)
		}

		if err := runner.Up(); err != nil {
			return fmt.Errorf("tenant %s: %w", tenantID, err)
		}
		tlog.Info("schema up to date")
	}
	return nil
}
