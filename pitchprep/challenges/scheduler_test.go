package challenges

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchprep/server/pitchprep/accounts"
)

func newTestScheduler(t *testing.T) (*Scheduler, accounts.Store) {
	t.Helper()

	store := accounts.NewMemoryStore()

	return NewScheduler(NewMemoryRepository(), store), store
}

func createAccount(t *testing.T, store accounts.Store, handle, track string) string {
	t.Helper()

	account, err := store.Create(context.Background(), accounts.NewAccount{
		Handle:     handle,
		SecretHash: "$2a$10$notarealhash",
		EventTrack: track,
	})
	require.NoError(t, err)

	return account.ID
}

func TestToday_SharedAcrossAccounts(t *testing.T) {
	scheduler, store := newTestScheduler(t)
	ctx := context.Background()

	first := createAccount(t, store, "avery", "finance")
	second := createAccount(t, store, "blake", "hospitality")

	viewA, err := scheduler.Today(ctx, first)
	require.NoError(t, err)

	viewB, err := scheduler.Today(ctx, second)
	require.NoError(t, err)

	// both accounts converge on the one challenge minted for the date; the
	// first requester's event track decides its category
	assert.Equal(t, viewA.Challenge.ID, viewB.Challenge.ID)
	assert.Equal(t, "finance", viewB.Challenge.Category)
	assert.False(t, viewA.Completed)
	assert.False(t, viewB.Completed)
}

func TestToday_FallbackCategory(t *testing.T) {
	scheduler, store := newTestScheduler(t)

	accountID := createAccount(t, store, "drew", "")

	view, err := scheduler.Today(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, "general", view.Challenge.Category)
	assert.Equal(t, defaultChallengePoints, view.Challenge.Points)
}

func TestComplete_OnceOnly(t *testing.T) {
	scheduler, store := newTestScheduler(t)
	ctx := context.Background()

	accountID := createAccount(t, store, "ellis", "marketing")

	result, err := scheduler.Complete(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, result.Awarded)
	assert.Equal(t, defaultChallengePoints, result.Points)

	// the repeat reports not-awarded and credits nothing
	result, err = scheduler.Complete(ctx, accountID)
	require.NoError(t, err)
	assert.False(t, result.Awarded)
	assert.Equal(t, 0, result.Points)

	account, err := store.Get(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, defaultChallengePoints, account.Points)

	view, err := scheduler.Today(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, view.Completed)
}

func TestComplete_PerAccount(t *testing.T) {
	scheduler, store := newTestScheduler(t)
	ctx := context.Background()

	first := createAccount(t, store, "frankie", "finance")
	second := createAccount(t, store, "gale", "finance")

	result, err := scheduler.Complete(ctx, first)
	require.NoError(t, err)
	require.True(t, result.Awarded)

	// one account's completion never consumes another's
	result, err = scheduler.Complete(ctx, second)
	require.NoError(t, err)
	assert.True(t, result.Awarded)
}

func TestToday_NewChallengePerDay(t *testing.T) {
	scheduler, store := newTestScheduler(t)
	ctx := context.Background()

	accountID := createAccount(t, store, "harper", "marketing")

	today, err := scheduler.Today(ctx, accountID)
	require.NoError(t, err)

	result, err := scheduler.Complete(ctx, accountID)
	require.NoError(t, err)
	require.True(t, result.Awarded)

	// advance the scheduler's clock past midnight UTC
	scheduler.now = func() time.Time {
		return time.Now().UTC().AddDate(0, 0, 1)
	}

	tomorrow, err := scheduler.Today(ctx, accountID)
	require.NoError(t, err)
	assert.NotEqual(t, today.Challenge.ID, tomorrow.Challenge.ID)
	assert.False(t, tomorrow.Completed, "yesterday's completion does not carry over")

	result, err = scheduler.Complete(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, result.Awarded)
}

func TestDayStart_Boundaries(t *testing.T) {
	late := time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC)
	early := time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, DayStart(late), DayStart(early))
	assert.NotEqual(t, DayStart(late), DayStart(late.Add(time.Minute)))
}
