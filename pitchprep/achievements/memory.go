package achievements

import (
	"context"
	"sync"
	"time"

	"github.com/pitchprep/server/pitchprep/accounts"
)

// implements Repository using process-local in-memory storage
type MemoryRepository struct {
	mu       sync.RWMutex
	earned   map[string]map[string]AccountAchievement
	accounts accounts.Store
}

// creates a new in-memory achievement repository; the account store is
// needed to credit points atomically with the award
func NewMemoryRepository(accountStore accounts.Store) *MemoryRepository {
	return &MemoryRepository{
		earned:   make(map[string]map[string]AccountAchievement),
		accounts: accountStore,
	}
}

// loads the account's earned set keyed by achievement id
func (r *MemoryRepository) Earned(_ context.Context, accountID string) (map[string]AccountAchievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]AccountAchievement, len(r.earned[accountID]))

	for id, a := range r.earned[accountID] {
		out[id] = a
	}

	return out, nil
}

// awards an achievement and credits its points; a second call for the same
// pair is a no-op
func (r *MemoryRepository) Award(ctx context.Context, accountID string, achievement Achievement) (bool, error) {
	r.mu.Lock()

	byAccount, exists := r.earned[accountID]
	if !exists {
		byAccount = make(map[string]AccountAchievement)
		r.earned[accountID] = byAccount
	}

	if _, already := byAccount[achievement.ID]; already {
		r.mu.Unlock()
		return false, nil
	}

	byAccount[achievement.ID] = AccountAchievement{
		AccountID:     accountID,
		AchievementID: achievement.ID,
		EarnedAt:      time.Now().UTC(),
	}

	r.mu.Unlock()

	if err := r.accounts.AddPoints(ctx, accountID, achievement.Points); err != nil {
		// roll the award back so award and credit stay coupled
		r.mu.Lock()
		delete(r.earned[accountID], achievement.ID)
		r.mu.Unlock()
		return false, err
	}

	return true, nil
}

// flips the displayed flag on an earned achievement
func (r *MemoryRepository) MarkDisplayed(_ context.Context, accountID, achievementID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.earned[accountID][achievementID]
	if !exists {
		return ErrNotEarned
	}

	a.Displayed = true
	r.earned[accountID][achievementID] = a

	return nil
}
