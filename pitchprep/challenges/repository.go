package challenges

import (
	"context"
	"time"
)

// Repository is the persistence contract for daily challenges. At most one
// challenge exists per calendar date; concurrent first-requesters on the
// same day converge on one shared row.
type Repository interface {
	// returns the challenge for the date, or ErrNotFound
	GetByDate(ctx context.Context, date time.Time) (*Challenge, error)

	// inserts a challenge for its date unless one already exists and returns
	// the winning row either way
	Create(ctx context.Context, challenge *Challenge) (*Challenge, error)

	// returns the account's completion row for a challenge, or nil
	Completion(ctx context.Context, accountID, challengeID string) (*Completion, error)

	// records a completion; returns false when the account already completed
	// the challenge (exactly-once transition)
	Complete(ctx context.Context, accountID, challengeID string) (bool, error)
}
