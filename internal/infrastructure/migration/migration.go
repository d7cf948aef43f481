package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"hotelops/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// goose keeps its dialect and base filesystem in package globals.
var gooseMu sync.Mutex

// Migrator applies the embedded goose scripts for one database dialect.
type Migrator struct {
	db      *gorm.DB
	dialect string
	logger  logger.Interface
}

// New returns a migrator for the given database driver ("sqlite" or "mysql").
func New(db *gorm.DB, driver string, log logger.Interface) (*Migrator, error) {
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &Migrator{
		db:      db,
		dialect: dialect,
		logger:  log.With("component", "migration.goose", "dialect", dialect),
	}, nil
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "mysql", "":
		return "mysql", nil
	default:
		return "", fmt.Errorf("no migrations for database driver %q", driver)
	}
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(ctx context.Context, sqlDB *sql.DB) error {
		from, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}
		if err := goose.UpContext(ctx, sqlDB, m.dialect); err != nil {
			m.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		to, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}
		m.logger.Infow("migration completed successfully", "from_version", from, "to_version", to)
		return nil
	})
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	return m.run(ctx, func(ctx context.Context, sqlDB *sql.DB) error {
		for i := 0; i < steps; i++ {
			if err := goose.DownContext(ctx, sqlDB, m.dialect); err != nil {
				m.logger.Errorw("down migration failed", "error", err, "step", i+1)
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		m.logger.Infow("down migration completed successfully", "steps", steps)
		return nil
	})
}

// Status prints the applied and pending migrations through the logger.
func (m *Migrator) Status(ctx context.Context) error {
	return m.run(ctx, func(ctx context.Context, sqlDB *sql.DB) error {
		if err := goose.StatusContext(ctx, sqlDB, m.dialect); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

// Version returns the latest applied migration version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	var version int64
	err := m.run(ctx, func(ctx context.Context, sqlDB *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func (m *Migrator) run(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sub, err := fs.Sub(scripts, "scripts")
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(sub)
	goose.SetLogger(&gooseLogger{log: m.logger})
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(ctx, sqlDB)
}

// gooseLogger forwards goose's printf output to the application logger.
type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
