package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchprep/server/pitchprep/accounts"
)

// QuotaError reports an exhausted monthly allowance. It carries the feature
// and tier so the caller can offer an upgrade path rather than a bare failure.
type QuotaError struct {
	Feature accounts.Feature
	Tier    accounts.Tier
	Limit   int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("monthly %s limit of %d reached on tier %s", e.Feature, e.Limit, e.Tier)
}

// Decision is the result of an allowance check
type Decision struct {
	Allowed bool
	Feature accounts.Feature
	Tier    accounts.Tier
	Limit   int
	Used    int
}

// Meter checks and records consumption of the metered features against the
// per-tier limit table, applying the monthly reset lazily
type Meter struct {
	store accounts.Store
	now   func() time.Time
}

// creates a new usage meter over an account store
func NewMeter(store accounts.Store) *Meter {
	return &Meter{store: store, now: time.Now}
}

// Allow reports whether the account may consume one unit of the feature. The
// answer is advisory: Record is the authoritative gate under concurrency.
func (m *Meter) Allow(ctx context.Context, accountID string, feature accounts.Feature) (*Decision, error) {
	if !feature.Valid() {
		return nil, fmt.Errorf("unknown feature %q", feature)
	}

	if err := m.store.ResetUsageIfDue(ctx, accountID, feature, accounts.MonthStart(m.now())); err != nil {
		return nil, err
	}

	account, err := m.store.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	limit := LimitFor(account.Tier, feature)
	used := account.Usage[feature].Count

	decision := &Decision{
		Feature: feature,
		Tier:    account.Tier,
		Limit:   limit,
		Used:    used,
	}

	decision.Allowed = limit == Unlimited || used < limit

	return decision, nil
}

// Record consumes one unit of the feature. Callers invoke it only after the
// gated operation actually succeeded, so a failed external call never costs
// quota. The storage-layer increment is atomic; if the returned value
// overshoots the limit the increment is rolled back and the overshoot is the
// authoritative rejection, regardless of any earlier Allow answer.
func (m *Meter) Record(ctx context.Context, accountID string, feature accounts.Feature) error {
	if !feature.Valid() {
		return fmt.Errorf("unknown feature %q", feature)
	}

	if err := m.store.ResetUsageIfDue(ctx, accountID, feature, accounts.MonthStart(m.now())); err != nil {
		return err
	}

	account, err := m.store.Get(ctx, accountID)
	if err != nil {
		return err
	}

	limit := LimitFor(account.Tier, feature)

	count, err := m.store.IncrementUsage(ctx, accountID, feature)
	if err != nil {
		return err
	}

	if limit != Unlimited && count > limit {
		if err := m.store.DecrementUsage(ctx, accountID, feature); err != nil {
			return fmt.Errorf("failed to roll back overshoot: %w", err)
		}

		return &QuotaError{Feature: feature, Tier: account.Tier, Limit: limit}
	}

	return nil
}
