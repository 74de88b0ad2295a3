package achievements

import (
	"context"
	"sort"

	"github.com/pitchprep/server/pitchprep/accounts"
)

// Engine scans account aggregates against the catalog and unlocks newly
// crossed thresholds exactly once
type Engine struct {
	catalog []Achievement
	repo    Repository
	store   accounts.Store
}

// creates a new achievement engine over the static catalog
func NewEngine(repo Repository, store accounts.Store) *Engine {
	return &Engine{catalog: Catalog(), repo: repo, store: store}
}

// Check detects and awards any achievements the account newly qualifies for,
// returning the fresh awards. A second call with no intervening activity
// returns an empty list and never double-credits points.
func (e *Engine) Check(ctx context.Context, accountID string) ([]AccountAchievement, error) {
	account, err := e.store.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	earned, err := e.repo.Earned(ctx, accountID)
	if err != nil {
		return nil, err
	}

	qualified := Detect(e.catalog, earned, MetricsFor(account))

	var awarded []AccountAchievement

	for _, a := range qualified {
		fresh, err := e.repo.Award(ctx, accountID, a)
		if err != nil {
			return awarded, err
		}

		// a concurrent check may have awarded it first; skip silently
		if !fresh {
			continue
		}

		awarded = append(awarded, AccountAchievement{
			AccountID:     accountID,
			AchievementID: a.ID,
		})
	}

	return awarded, nil
}

// extracts the aggregates achievements are measured against
func MetricsFor(account *accounts.Account) Metrics {
	return Metrics{
		Streak:             account.Streak,
		RoleplaysCompleted: account.RoleplaysCompleted,
		ExamsCompleted:     account.ExamsCompleted,
		FeedbackCompleted:  account.FeedbackCompleted,
		BestExamScore:      account.BestExamScore,
	}
}

// Detect returns the catalog entries the metrics newly qualify for, in
// category-rank order. Pure: it mutates nothing, so the detection rules are
// testable independently of awarding.
func Detect(catalog []Achievement, earned map[string]AccountAchievement, m Metrics) []Achievement {
	var qualified []Achievement

	for _, a := range catalog {
		if _, already := earned[a.ID]; already {
			continue
		}

		if metricFor(a.Category, m) >= a.Threshold {
			qualified = append(qualified, a)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].Category != qualified[j].Category {
			return qualified[i].Category < qualified[j].Category
		}
		return qualified[i].Rank < qualified[j].Rank
	})

	return qualified
}

// selects the aggregate a category is measured against. Count categories
// read completed-activity counts; score categories read the best observed
// score. An unknown category never qualifies.
func metricFor(c Category, m Metrics) int {
	switch c {
	case CategoryStreak:
		return m.Streak
	case CategoryRoleplayCount:
		return m.RoleplaysCompleted
	case CategoryExamCount:
		return m.ExamsCompleted
	case CategoryFeedbackCount:
		return m.FeedbackCompleted
	case CategoryExamScore:
		return m.BestExamScore
	}

	return -1
}
