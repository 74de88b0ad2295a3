package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// implements Store using PostgreSQL
type PostgresStore struct {
	db *pgxpool.Pool
}

// creates a new PostgreSQL account store
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the required tables if they don't exist
func (s *PostgresStore) Initialize(ctx context.Context) error {
	_, err := s.db.Exec(ctx, createTableSQL)
	return err
}

// finds an account by its ID
func (s *PostgresStore) Get(ctx context.Context, id string) (*Account, error) {
	return s.getWithFallback(ctx, queryGetByID, rawGetByID, id)
}

// finds an account by its unique handle
func (s *PostgresStore) GetByHandle(ctx context.Context, handle string) (*Account, error) {
	return s.getWithFallback(ctx, queryGetByHandle, rawGetByHandle, handle)
}

// reads through the structured query first and retries once through the raw
// path on failure; both paths map rows through accountFromRow so the shape
// can never drift between them
func (s *PostgresStore) getWithFallback(ctx context.Context, structured, raw string, arg any) (*Account, error) {
	account, err := s.queryAccount(ctx, structured, arg)
	if err == nil {
		return account, nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	account, rawErr := s.queryAccount(ctx, raw, arg)
	if rawErr == nil {
		return account, nil
	}

	if errors.Is(rawErr, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}

// runs a single-row account query and maps the result by column name
func (s *PostgresStore) queryAccount(ctx context.Context, sql string, args ...any) (*Account, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}

	return accountFromRow(rows)
}

// registers a new account seeded with zero counters, the default tier and a
// freshly minted session identifier
func (s *PostgresStore) Create(ctx context.Context, input NewAccount) (*Account, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to mint session id: %w", err)
	}

	account, err := s.queryAccount(ctx, queryCreate,
		uuid.NewString(),
		input.Handle,
		input.SecretHash,
		input.Email,
		input.EventTrack,
		sessionID,
		MonthStart(time.Now()),
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}

	return account, nil
}

// updates an account's email and event track
func (s *PostgresStore) UpdateProfile(ctx context.Context, id, email, eventTrack string) (*Account, error) {
	account, err := s.queryAccount(ctx, queryUpdateProfile, id, email, eventTrack)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return account, nil
}

// updates an account's subscription tier (billing webhook surface)
func (s *PostgresStore) UpdateTier(ctx context.Context, id string, tier Tier) error {
	return s.exec(ctx, queryUpdateTier, id, string(tier))
}

// writes the single current session identifier for an account
func (s *PostgresStore) UpdateSession(ctx context.Context, id, sessionID string) error {
	return s.exec(ctx, queryUpdateSession, id, sessionID)
}

// writes a login streak and last-active timestamp
func (s *PostgresStore) UpdateStreak(ctx context.Context, id string, streak int, lastActive time.Time) error {
	return s.exec(ctx, queryUpdateStreak, id, streak, lastActive)
}

// credits reward points to an account
func (s *PostgresStore) AddPoints(ctx context.Context, id string, delta int) error {
	return s.exec(ctx, queryAddPoints, id, delta)
}

// marks the account as active now
func (s *PostgresStore) Touch(ctx context.Context, id string) error {
	return s.exec(ctx, queryTouch, id)
}

// atomically bumps a feature counter and returns the new value
func (s *PostgresStore) IncrementUsage(ctx context.Context, id string, feature Feature) (int, error) {
	if !feature.Valid() {
		return 0, fmt.Errorf("unknown feature %q", feature)
	}

	var count int

	err := s.db.QueryRow(ctx, incrementUsageQuery(feature), id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	return count, nil
}

// rolls back one increment after an overshoot rejection
func (s *PostgresStore) DecrementUsage(ctx context.Context, id string, feature Feature) error {
	if !feature.Valid() {
		return fmt.Errorf("unknown feature %q", feature)
	}

	return s.exec(ctx, decrementUsageQuery(feature), id)
}

// zeroes a counter whose reset stamp predates monthStart
func (s *PostgresStore) ResetUsageIfDue(ctx context.Context, id string, feature Feature, monthStart time.Time) error {
	if !feature.Valid() {
		return fmt.Errorf("unknown feature %q", feature)
	}

	// no row matched means either the account is missing or no reset is due;
	// a zero-row update is not an error here
	_, err := s.db.Exec(ctx, resetUsageQuery(feature), id, monthStart)
	return err
}

// bumps lifetime aggregates for a completed activity
func (s *PostgresStore) RecordActivity(ctx context.Context, id string, feature Feature, score int) error {
	if !feature.Valid() {
		return fmt.Errorf("unknown feature %q", feature)
	}

	if feature == FeatureExam {
		return s.exec(ctx, recordActivityQuery(feature), id, score)
	}

	return s.exec(ctx, recordActivityQuery(feature), id)
}

// runs a write statement and reports ErrNotFound on a zero-row update
func (s *PostgresStore) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
