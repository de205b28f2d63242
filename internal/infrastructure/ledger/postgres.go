package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

// CreditsRow maps the user_credits table
type CreditsRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Credits   int       `gorm:"column:credits;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (CreditsRow) TableName() string {
	return "user_credits"
}

// PostgresStore is a CreditsLedger backed by the user_credits table
type PostgresStore struct {
	db *gorm.DB
}

// Open connects to Postgres with gorm. SQL logging is silenced; callers log outcomes.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("ledger DSN is required")
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent}),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening ledger connection: %w", err)
	}
	return conn, nil
}

// NewPostgresStore wraps an open gorm connection
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetCredits reads the balance for a user
func (s *PostgresStore) GetCredits(ctx context.Context, userID string) (int, error) {
	var row CreditsRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("reading credits: %w", err)
	}
	return row.Credits, nil
}

// SetCredits overwrites the balance of an existing user
func (s *PostgresStore) SetCredits(ctx context.Context, userID string, credits int) error {
	if credits < 0 {
		return fmt.Errorf("credits must not be negative, got %d", credits)
	}

	result := s.db.WithContext(ctx).
		Model(&CreditsRow{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"credits":    credits,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("updating credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CreateCredits inserts a row for userID unless one already exists
func (s *PostgresStore) CreateCredits(ctx context.Context, userID string, credits int) (bool, error) {
	if credits < 0 {
		return false, fmt.Errorf("credits must not be negative, got %d", credits)
	}

	row := CreditsRow{UserID: userID, Credits: credits, UpdatedAt: time.Now().UTC()}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return false, fmt.Errorf("creating credits: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Ping checks the underlying connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting sql db handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
