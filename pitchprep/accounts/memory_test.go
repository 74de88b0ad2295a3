package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*MemoryStore, *Account) {
	t.Helper()

	store := NewMemoryStore()

	account, err := store.Create(context.Background(), NewAccount{
		Handle:     "jordan",
		SecretHash: "$2a$10$notarealhash",
		Email:      "jordan@example.com",
		EventTrack: "marketing",
	})
	require.NoError(t, err)

	return store, account
}

func TestCreate_SeedsDefaults(t *testing.T) {
	_, account := newTestStore(t)

	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "jordan", account.Handle)
	assert.Equal(t, TierStarter, account.Tier)
	assert.Equal(t, 0, account.Points)
	assert.Equal(t, 0, account.Streak)
	assert.NotEmpty(t, account.SessionID, "new accounts should never enter the legacy pass-through rule")

	for _, feature := range Features() {
		counter, exists := account.Usage[feature]
		require.True(t, exists, "missing counter for %s", feature)
		assert.Equal(t, 0, counter.Count)
		assert.False(t, counter.ResetAt.IsZero())
	}
}

func TestCreate_DuplicateHandle(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Create(context.Background(), NewAccount{
		Handle:     "jordan",
		SecretHash: "$2a$10$anotherhash",
	})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestGet_RoundTrip(t *testing.T) {
	store, created := newTestStore(t)

	byID, err := store.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Handle, byID.Handle)
	assert.Equal(t, created.SessionID, byID.SessionID)

	byHandle, err := store.GetByHandle(context.Background(), "jordan")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byHandle.ID)
}

func TestGet_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetByHandle(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_ReturnsClone(t *testing.T) {
	store, created := newTestStore(t)

	first, err := store.Get(context.Background(), created.ID)
	require.NoError(t, err)

	// mutating the returned value must not leak into the store
	first.Points = 9999
	first.Usage[FeatureRoleplay] = UsageCounter{Count: 42}

	second, err := store.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Points)
	assert.Equal(t, 0, second.Usage[FeatureRoleplay].Count)
}

func TestIncrementUsage_ReturnsNewCount(t *testing.T) {
	store, created := newTestStore(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		count, err := store.IncrementUsage(ctx, created.ID, FeatureExam)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	account, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, account.Usage[FeatureExam].Count)
	assert.Equal(t, 0, account.Usage[FeatureRoleplay].Count, "counters are independent per feature")
}

func TestDecrementUsage_FloorsAtZero(t *testing.T) {
	store, created := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DecrementUsage(ctx, created.ID, FeatureFeedback))

	account, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, account.Usage[FeatureFeedback].Count)
}

func TestResetUsageIfDue_OnlyWhenStampPredatesMonth(t *testing.T) {
	store, created := newTestStore(t)
	ctx := context.Background()

	_, err := store.IncrementUsage(ctx, created.ID, FeatureRoleplay)
	require.NoError(t, err)

	// current month: stamp is not older, so the count survives
	require.NoError(t, store.ResetUsageIfDue(ctx, created.ID, FeatureRoleplay, MonthStart(time.Now())))

	account, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, account.Usage[FeatureRoleplay].Count)

	// next month: stamp predates the boundary and the counter zeroes
	nextMonth := MonthStart(time.Now().UTC().AddDate(0, 1, 0))
	require.NoError(t, store.ResetUsageIfDue(ctx, created.ID, FeatureRoleplay, nextMonth))

	account, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, account.Usage[FeatureRoleplay].Count)
}

func TestRecordActivity_Aggregates(t *testing.T) {
	store, created := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordActivity(ctx, created.ID, FeatureRoleplay, 0))
	require.NoError(t, store.RecordActivity(ctx, created.ID, FeatureExam, 80))
	require.NoError(t, store.RecordActivity(ctx, created.ID, FeatureExam, 65))

	account, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, account.RoleplaysCompleted)
	assert.Equal(t, 2, account.ExamsCompleted)
	assert.Equal(t, 80, account.BestExamScore, "a lower score never lowers the best")
}

func TestTouch_AdvancesLastActive(t *testing.T) {
	store, created := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Touch(ctx, created.ID))

	account, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, account.LastActive.Before(created.LastActive))

	assert.ErrorIs(t, store.Touch(ctx, "no-such-id"), ErrNotFound)
}

func TestUpdateSession_Replaces(t *testing.T) {
	store, created := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateSession(ctx, created.ID, "fresh-session"))

	account, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh-session", account.SessionID)
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		current    int
		lastActive time.Time
		want       int
	}{
		{"first login ever", 0, time.Time{}, 1},
		{"same day keeps streak", 4, now.Add(-2 * time.Hour), 4},
		{"next day extends", 4, now.AddDate(0, 0, -1), 5},
		{"gap resets", 4, now.AddDate(0, 0, -3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStreak(tt.current, tt.lastActive, now))
		})
	}
}
