package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchprep/server/pitchprep/accounts"
)

func newTestMeter(t *testing.T) (*Meter, accounts.Store, string) {
	t.Helper()

	store := accounts.NewMemoryStore()

	account, err := store.Create(context.Background(), accounts.NewAccount{
		Handle:     "casey",
		SecretHash: "$2a$10$notarealhash",
	})
	require.NoError(t, err)

	return NewMeter(store), store, account.ID
}

func TestRecord_ExhaustsStarterLimit(t *testing.T) {
	meter, _, accountID := newTestMeter(t)
	ctx := context.Background()

	// starter gets 5 feedback sessions per month
	for i := 0; i < 5; i++ {
		require.NoError(t, meter.Record(ctx, accountID, accounts.FeatureFeedback))
	}

	decision, err := meter.Allow(ctx, accountID, accounts.FeatureFeedback)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 5, decision.Used)
	assert.Equal(t, 5, decision.Limit)

	err = meter.Record(ctx, accountID, accounts.FeatureFeedback)

	var quotaErr *QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, accounts.FeatureFeedback, quotaErr.Feature)
	assert.Equal(t, accounts.TierStarter, quotaErr.Tier)
	assert.Equal(t, 5, quotaErr.Limit)
}

func TestRecord_OvershootRollsBack(t *testing.T) {
	meter, store, accountID := newTestMeter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, meter.Record(ctx, accountID, accounts.FeatureFeedback))
	}

	err := meter.Record(ctx, accountID, accounts.FeatureFeedback)
	require.Error(t, err)

	// the rejected increment must not leave the counter above the limit
	account, err := store.Get(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 5, account.Usage[accounts.FeatureFeedback].Count)
}

func TestAllow_IndependentPerFeature(t *testing.T) {
	meter, _, accountID := newTestMeter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, meter.Record(ctx, accountID, accounts.FeatureFeedback))
	}

	decision, err := meter.Allow(ctx, accountID, accounts.FeatureRoleplay)
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "exhausting one feature must not gate another")
	assert.Equal(t, 0, decision.Used)
}

func TestAllow_PremierUnlimited(t *testing.T) {
	meter, store, accountID := newTestMeter(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateTier(ctx, accountID, accounts.TierPremier))

	for i := 0; i < 30; i++ {
		require.NoError(t, meter.Record(ctx, accountID, accounts.FeatureRoleplay))
	}

	decision, err := meter.Allow(ctx, accountID, accounts.FeatureRoleplay)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, Unlimited, decision.Limit)
}

func TestRecord_MonthlyReset(t *testing.T) {
	meter, _, accountID := newTestMeter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, meter.Record(ctx, accountID, accounts.FeatureFeedback))
	}
	require.Error(t, meter.Record(ctx, accountID, accounts.FeatureFeedback))

	// advance the meter's clock into next month; the exhausted counter
	// resets lazily on the next touch
	meter.now = func() time.Time {
		return time.Now().UTC().AddDate(0, 1, 0)
	}

	decision, err := meter.Allow(ctx, accountID, accounts.FeatureFeedback)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0, decision.Used)

	require.NoError(t, meter.Record(ctx, accountID, accounts.FeatureFeedback))
}

func TestLimitFor_UnknownTierFallsBackToStarter(t *testing.T) {
	assert.Equal(t, 15, LimitFor(accounts.Tier("gold"), accounts.FeatureRoleplay))
	assert.Equal(t, 10, LimitFor(accounts.Tier(""), accounts.FeatureExam))
}

func TestRecord_UnknownFeature(t *testing.T) {
	meter, _, accountID := newTestMeter(t)

	err := meter.Record(context.Background(), accountID, accounts.Feature("karaoke"))
	require.Error(t, err)

	var quotaErr *QuotaError
	assert.False(t, errors.As(err, &quotaErr), "validation failure is not a quota rejection")
}
