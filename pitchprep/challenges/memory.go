package challenges

import (
	"context"
	"sync"
	"time"
)

// implements Repository using process-local in-memory storage
type MemoryRepository struct {
	mu          sync.RWMutex
	byDate      map[string]*Challenge
	completions map[string]*Completion
}

// creates a new in-memory challenge repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byDate:      make(map[string]*Challenge),
		completions: make(map[string]*Completion),
	}
}

func dateKey(t time.Time) string {
	return DayStart(t).Format("2006-01-02")
}

func completionKey(accountID, challengeID string) string {
	return accountID + "|" + challengeID
}

// returns the challenge for the date
func (r *MemoryRepository) GetByDate(_ context.Context, date time.Time) (*Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	challenge, exists := r.byDate[dateKey(date)]
	if !exists {
		return nil, ErrNotFound
	}

	clone := *challenge
	return &clone, nil
}

// inserts a challenge unless one already exists for the date and returns the
// winning row either way
func (r *MemoryRepository) Create(_ context.Context, challenge *Challenge) (*Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dateKey(challenge.Date)

	if existing, exists := r.byDate[key]; exists {
		clone := *existing
		return &clone, nil
	}

	stored := *challenge
	stored.Date = DayStart(challenge.Date)
	r.byDate[key] = &stored

	clone := stored
	return &clone, nil
}

// returns the account's completion row for a challenge, or nil
func (r *MemoryRepository) Completion(_ context.Context, accountID, challengeID string) (*Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	completion, exists := r.completions[completionKey(accountID, challengeID)]
	if !exists {
		return nil, nil
	}

	clone := *completion
	return &clone, nil
}

// records a completion; false means the account already completed it
func (r *MemoryRepository) Complete(_ context.Context, accountID, challengeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey(accountID, challengeID)

	if _, exists := r.completions[key]; exists {
		return false, nil
	}

	r.completions[key] = &Completion{
		AccountID:   accountID,
		ChallengeID: challengeID,
		Completed:   true,
		CompletedAt: time.Now().UTC(),
	}

	return true, nil
}
