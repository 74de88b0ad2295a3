package challenges

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pitchprep/server/pitchprep/accounts"
)

const defaultChallengePoints = 25

// category used when the requesting account has no declared event track
const fallbackCategory = "general"

// Scheduler produces exactly one challenge per calendar day and records
// per-account completion
type Scheduler struct {
	repo  Repository
	store accounts.Store
	now   func() time.Time
}

// creates a new daily challenge scheduler
func NewScheduler(repo Repository, store accounts.Store) *Scheduler {
	return &Scheduler{repo: repo, store: store, now: time.Now}
}

// Today returns the shared challenge for the current date, creating it on
// first access. The challenge identity is keyed purely by date; only the
// category of a freshly created challenge derives from the requesting
// account's event track.
func (s *Scheduler) Today(ctx context.Context, accountID string) (*View, error) {
	challenge, err := s.todayChallenge(ctx, accountID)
	if err != nil {
		return nil, err
	}

	completion, err := s.repo.Completion(ctx, accountID, challenge.ID)
	if err != nil {
		return nil, err
	}

	return &View{
		Challenge: *challenge,
		Completed: completion != nil && completion.Completed,
	}, nil
}

// Complete records the account's completion of today's challenge. The first
// call credits the challenge points; repeats report Awarded false and leave
// the point total untouched.
func (s *Scheduler) Complete(ctx context.Context, accountID string) (*Result, error) {
	challenge, err := s.todayChallenge(ctx, accountID)
	if err != nil {
		return nil, err
	}

	first, err := s.repo.Complete(ctx, accountID, challenge.ID)
	if err != nil {
		return nil, err
	}

	if !first {
		return &Result{Awarded: false}, nil
	}

	if err := s.store.AddPoints(ctx, accountID, challenge.Points); err != nil {
		return nil, err
	}

	return &Result{Awarded: true, Points: challenge.Points}, nil
}

// get-or-create for the current date; concurrent first-requesters converge
// on one shared row through the repository's unique date key
func (s *Scheduler) todayChallenge(ctx context.Context, accountID string) (*Challenge, error) {
	today := DayStart(s.now())

	challenge, err := s.repo.GetByDate(ctx, today)
	if err == nil {
		return challenge, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	account, err := s.store.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	category := account.EventTrack
	if category == "" {
		category = fallbackCategory
	}

	return s.repo.Create(ctx, &Challenge{
		ID:       uuid.NewString(),
		Date:     today,
		Category: category,
		Points:   defaultChallengePoints,
	})
}
