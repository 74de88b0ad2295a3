package challenges

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no challenge exists for the date
	ErrNotFound = errors.New("challenge not found")
)

// Challenge is the single shared challenge for one calendar day
type Challenge struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Points   int       `json:"points"`
}

// Completion joins an account to a challenge it attempted
type Completion struct {
	AccountID   string    `json:"account_id"`
	ChallengeID string    `json:"challenge_id"`
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at"`
}

// View is a challenge as seen by one account
type View struct {
	Challenge Challenge `json:"challenge"`
	Completed bool      `json:"completed"`
}

// Result reports a completion attempt; Awarded is false when the account
// already completed today's challenge
type Result struct {
	Awarded bool `json:"awarded"`
	Points  int  `json:"points,omitempty"`
}

// returns the UTC start-of-day boundary for t
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
