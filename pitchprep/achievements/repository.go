package achievements

import (
	"context"
	"errors"
)

// ErrNotEarned is returned when marking an achievement the account never earned
var ErrNotEarned = errors.New("achievement not earned")

// Repository is the persistence contract for earned achievements. Award is
// idempotent per (account, achievement) and credits the reward points in the
// same operation, so a double invocation can never double-credit.
type Repository interface {
	// returns the account's earned set keyed by achievement id
	Earned(ctx context.Context, accountID string) (map[string]AccountAchievement, error)

	// awards once; returns false without side effects if already earned
	Award(ctx context.Context, accountID string, achievement Achievement) (bool, error)

	// flips the displayed flag on an earned achievement
	MarkDisplayed(ctx context.Context, accountID, achievementID string) error
}
