// Package repository is the relational store of the shop: users, catalog,
// orders and the order-event outbox. It runs on postgres (deployments) or
// sqlite (local single-user runs), selected by Config.Driver.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string

	// postgres
	Host     string
	Port     int
	User     string
	Password string
	DBName   string

	// sqlite
	Path string

	MigrationsDirPath string
}

type Repository struct {
	db     *sql.DB
	driver string
}

func NewRepository(cfg *Config) (*Repository, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName)
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(100)
		db.SetMaxIdleConns(10)
	case DriverSQLite:
		// WAL keeps reads from blocking the single writer; busy_timeout waits
		// for locks instead of failing immediately.
		dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", cfg.Path)
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	slog.Info("connected to database", "driver", cfg.Driver)
	return &Repository{db: db, driver: cfg.Driver}, nil
}

func (r *Repository) RunMigrations(cfg *Config) error {
	m, err := r.newMigrate(cfg)
	if err != nil {
		return err
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}
	return nil
}

func (r *Repository) newMigrate(cfg *Config) (*migrate.Migrate, error) {
	sourceURL := fmt.Sprintf("file://%s/%s", cfg.MigrationsDirPath, r.driver)

	switch r.driver {
	case DriverPostgres:
		driver, err := migratepg.WithInstance(r.db, &migratepg.Config{})
		if err != nil {
			return nil, fmt.Errorf("could not create migration driver: %w", err)
		}
		return migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	default:
		driver, err := migratesqlite.WithInstance(r.db, &migratesqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("could not create migration driver: %w", err)
		}
		return migrate.NewWithDatabaseInstance(sourceURL, "sqlite", driver)
	}
}

func (r *Repository) Close() error {
	return r.db.Close()
}
