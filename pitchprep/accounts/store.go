package accounts

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no account matches the lookup
	ErrNotFound = errors.New("account not found")

	// ErrConflict is returned when a uniqueness constraint is violated on create
	ErrConflict = errors.New("handle already taken")

	// ErrBackendUnavailable is returned when the durable store is unreachable
	// and the fallback read path also failed
	ErrBackendUnavailable = errors.New("account backend unavailable")
)

// Store is the persistence contract for account records. Both backends
// produce identical field shapes so callers are backend-agnostic.
type Store interface {
	Get(ctx context.Context, id string) (*Account, error)
	GetByHandle(ctx context.Context, handle string) (*Account, error)
	Create(ctx context.Context, input NewAccount) (*Account, error)
	UpdateProfile(ctx context.Context, id, email, eventTrack string) (*Account, error)
	UpdateTier(ctx context.Context, id string, tier Tier) error
	UpdateSession(ctx context.Context, id, sessionID string) error
	UpdateStreak(ctx context.Context, id string, streak int, lastActive time.Time) error
	AddPoints(ctx context.Context, id string, delta int) error

	// Touch marks the account as active now
	Touch(ctx context.Context, id string) error

	// IncrementUsage atomically bumps a feature counter and returns the new
	// value, serialized per account at the storage layer
	IncrementUsage(ctx context.Context, id string, feature Feature) (int, error)

	// DecrementUsage rolls back one increment after an overshoot rejection
	DecrementUsage(ctx context.Context, id string, feature Feature) error

	// ResetUsageIfDue zeroes a counter whose reset stamp predates monthStart;
	// the stamp only ever advances forward
	ResetUsageIfDue(ctx context.Context, id string, feature Feature, monthStart time.Time) error

	// RecordActivity bumps the lifetime completed count for a feature and,
	// for exams, raises the best score when the new one is higher
	RecordActivity(ctx context.Context, id string, feature Feature, score int) error
}

// returns a new random opaque session identifier
func newSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// returns the start of the calendar month containing t, in UTC
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
