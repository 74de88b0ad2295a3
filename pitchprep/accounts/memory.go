package accounts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// implements Store using process-local in-memory storage, used when no
// durable store is configured
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	byHandle map[string]string
}

// creates a new in-memory account store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*Account),
		byHandle: make(map[string]string),
	}
}

// finds an account by its ID
func (s *MemoryStore) Get(_ context.Context, id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[id]
	if !exists {
		return nil, ErrNotFound
	}

	return account.Clone(), nil
}

// finds an account by its unique handle
func (s *MemoryStore) GetByHandle(_ context.Context, handle string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byHandle[handle]
	if !exists {
		return nil, ErrNotFound
	}

	return s.accounts[id].Clone(), nil
}

// registers a new account seeded with zero counters, the default tier and a
// freshly minted session identifier
func (s *MemoryStore) Create(_ context.Context, input NewAccount) (*Account, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to mint session id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byHandle[input.Handle]; exists {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	monthStart := MonthStart(now)

	account := &Account{
		ID:         uuid.NewString(),
		Handle:     input.Handle,
		SecretHash: input.SecretHash,
		Email:      input.Email,
		EventTrack: input.EventTrack,
		Tier:       TierStarter,
		SessionID:  sessionID,
		LastActive: now,
		Usage: map[Feature]UsageCounter{
			FeatureRoleplay: {ResetAt: monthStart},
			FeatureExam:     {ResetAt: monthStart},
			FeatureFeedback: {ResetAt: monthStart},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.accounts[account.ID] = account
	s.byHandle[account.Handle] = account.ID

	return account.Clone(), nil
}

// updates an account's email and event track
func (s *MemoryStore) UpdateProfile(_ context.Context, id, email, eventTrack string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[id]
	if !exists {
		return nil, ErrNotFound
	}

	account.Email = email
	account.EventTrack = eventTrack
	account.UpdatedAt = time.Now().UTC()

	return account.Clone(), nil
}

// updates an account's subscription tier
func (s *MemoryStore) UpdateTier(_ context.Context, id string, tier Tier) error {
	return s.mutate(id, func(a *Account) {
		a.Tier = tier
	})
}

// writes the single current session identifier for an account
func (s *MemoryStore) UpdateSession(_ context.Context, id, sessionID string) error {
	return s.mutate(id, func(a *Account) {
		a.SessionID = sessionID
		a.LastActive = time.Now().UTC()
	})
}

// writes a login streak and last-active timestamp
func (s *MemoryStore) UpdateStreak(_ context.Context, id string, streak int, lastActive time.Time) error {
	return s.mutate(id, func(a *Account) {
		a.Streak = streak
		a.LastActive = lastActive
	})
}

// marks the account as active now
func (s *MemoryStore) Touch(_ context.Context, id string) error {
	return s.mutate(id, func(a *Account) {
		a.LastActive = time.Now().UTC()
	})
}

// credits reward points to an account
func (s *MemoryStore) AddPoints(_ context.Context, id string, delta int) error {
	return s.mutate(id, func(a *Account) {
		a.Points += delta
	})
}

// atomically bumps a feature counter and returns the new value
func (s *MemoryStore) IncrementUsage(_ context.Context, id string, feature Feature) (int, error) {
	if !feature.Valid() {
		return 0, fmt.Errorf("unknown feature %q", feature)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[id]
	if !exists {
		return 0, ErrNotFound
	}

	counter := account.Usage[feature]
	counter.Count++
	account.Usage[feature] = counter
	account.UpdatedAt = time.Now().UTC()

	return counter.Count, nil
}

// rolls back one increment after an overshoot rejection
func (s *MemoryStore) DecrementUsage(_ context.Context, id string, feature Feature) error {
	if !feature.Valid() {
		return fmt.Errorf("unknown feature %q", feature)
	}

	return s.mutate(id, func(a *Account) {
		counter := a.Usage[feature]
		if counter.Count > 0 {
			counter.Count--
		}
		a.Usage[feature] = counter
	})
}

// zeroes a counter whose reset stamp predates monthStart
func (s *MemoryStore) ResetUsageIfDue(_ context.Context, id string, feature Feature, monthStart time.Time) error {
	if !feature.Valid() {
		return fmt.Errorf("unknown feature %q", feature)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[id]
	if !exists {
		// same contract as the durable backend: a no-op reset is not an error
		return nil
	}

	counter := account.Usage[feature]
	if !counter.ResetAt.Before(monthStart) {
		return nil
	}

	counter.Count = 0
	counter.ResetAt = time.Now().UTC()
	account.Usage[feature] = counter
	account.UpdatedAt = counter.ResetAt

	return nil
}

// bumps lifetime aggregates for a completed activity
func (s *MemoryStore) RecordActivity(_ context.Context, id string, feature Feature, score int) error {
	if !feature.Valid() {
		return fmt.Errorf("unknown feature %q", feature)
	}

	return s.mutate(id, func(a *Account) {
		switch feature {
		case FeatureRoleplay:
			a.RoleplaysCompleted++
		case FeatureExam:
			a.ExamsCompleted++
			if score > a.BestExamScore {
				a.BestExamScore = score
			}
		case FeatureFeedback:
			a.FeedbackCompleted++
		}
	})
}

// applies a mutation to one account under the write lock
func (s *MemoryStore) mutate(id string, fn func(*Account)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[id]
	if !exists {
		return ErrNotFound
	}

	fn(account)
	account.UpdatedAt = time.Now().UTC()

	return nil
}
