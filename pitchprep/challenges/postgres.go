package challenges

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// implements Repository using PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// creates a new PostgreSQL challenge repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// creates the required tables if they don't exist
func (r *PostgresRepository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createTableSQL)
	return err
}

// returns the challenge for the date
func (r *PostgresRepository) GetByDate(ctx context.Context, date time.Time) (*Challenge, error) {
	var c Challenge

	err := r.db.QueryRow(ctx, queryGetByDate, DayStart(date)).Scan(&c.ID, &c.Date, &c.Category, &c.Points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

// inserts a challenge unless one already exists for the date and returns the
// winning row either way
func (r *PostgresRepository) Create(ctx context.Context, challenge *Challenge) (*Challenge, error) {
	date := DayStart(challenge.Date)

	_, err := r.db.Exec(ctx, queryCreate, challenge.ID, date, challenge.Category, challenge.Points)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily challenge: %w", err)
	}

	// re-read so a losing concurrent insert still returns the shared row
	return r.GetByDate(ctx, date)
}

// returns the account's completion row for a challenge, or nil
func (r *PostgresRepository) Completion(ctx context.Context, accountID, challengeID string) (*Completion, error) {
	var c Completion

	err := r.db.QueryRow(ctx, queryCompletion, accountID, challengeID).Scan(
		&c.AccountID, &c.ChallengeID, &c.Completed, &c.CompletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &c, nil
}

// records a completion; false means the account already completed it
func (r *PostgresRepository) Complete(ctx context.Context, accountID, challengeID string) (bool, error) {
	var inserted string

	err := r.db.QueryRow(ctx, queryComplete, accountID, challengeID).Scan(&inserted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
