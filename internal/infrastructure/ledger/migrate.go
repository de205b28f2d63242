package ledger

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Goose dialects supported by the ledger schema
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// gooseLogger routes goose output through zerolog
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal().Msgf(format, v...)
}

func prepareGoose(dialect string, logger zerolog.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "migrate").Logger()})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Migrate applies every pending ledger migration.
func Migrate(ctx context.Context, db *sql.DB, dialect string, logger zerolog.Logger) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := prepareGoose(dialect, logger); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Rollback reverts the most recent ledger migration.
func Rollback(ctx context.Context, db *sql.DB, dialect string, logger zerolog.Logger) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := prepareGoose(dialect, logger); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, db *sql.DB, dialect string, logger zerolog.Logger) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("db is required")
	}
	if err := prepareGoose(dialect, logger); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return version, nil
}
