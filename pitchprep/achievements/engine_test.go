package achievements

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchprep/server/pitchprep/accounts"
)

func newTestEngine(t *testing.T) (*Engine, accounts.Store, string) {
	t.Helper()

	store := accounts.NewMemoryStore()
	repo := NewMemoryRepository(store)

	account, err := store.Create(context.Background(), accounts.NewAccount{
		Handle:     "morgan",
		SecretHash: "$2a$10$notarealhash",
	})
	require.NoError(t, err)

	return NewEngine(repo, store), store, account.ID
}

func TestCheck_AwardsOnceAndCreditsPoints(t *testing.T) {
	engine, store, accountID := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, store.RecordActivity(ctx, accountID, accounts.FeatureRoleplay, 0))

	awarded, err := engine.Check(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "roleplay-1", awarded[0].AchievementID)

	account, err := store.Get(ctx, accountID)
	require.NoError(t, err)
	pointsAfterFirst := account.Points
	assert.Equal(t, 10, pointsAfterFirst)

	// a second check with no new activity awards nothing and credits nothing
	awarded, err = engine.Check(ctx, accountID)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	account, err = store.Get(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, pointsAfterFirst, account.Points)
}

func TestCheck_MultipleThresholdsInOnePass(t *testing.T) {
	engine, store, accountID := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.RecordActivity(ctx, accountID, accounts.FeatureExam, 72))
	}

	awarded, err := engine.Check(ctx, accountID)
	require.NoError(t, err)

	ids := make([]string, 0, len(awarded))
	for _, a := range awarded {
		ids = append(ids, a.AchievementID)
	}

	assert.ElementsMatch(t, []string{"exam-1", "exam-10", "score-70"}, ids)
}

func TestDetect_CountVsScoreModes(t *testing.T) {
	catalog := Catalog()
	earned := map[string]AccountAchievement{}

	// one exam at a top score: score thresholds qualify on the best score,
	// count thresholds only on completed count
	qualified := Detect(catalog, earned, Metrics{ExamsCompleted: 1, BestExamScore: 96})

	ids := make([]string, 0, len(qualified))
	for _, a := range qualified {
		ids = append(ids, a.ID)
	}

	assert.ElementsMatch(t, []string{"exam-1", "score-70", "score-85", "score-95"}, ids)
	assert.NotContains(t, ids, "exam-10")
}

func TestDetect_SkipsEarned(t *testing.T) {
	catalog := Catalog()
	earned := map[string]AccountAchievement{
		"streak-3": {AchievementID: "streak-3"},
	}

	qualified := Detect(catalog, earned, Metrics{Streak: 7})

	ids := make([]string, 0, len(qualified))
	for _, a := range qualified {
		ids = append(ids, a.ID)
	}

	assert.Equal(t, []string{"streak-7"}, ids)
}

func TestDetect_OrderedByCategoryThenRank(t *testing.T) {
	catalog := Catalog()

	qualified := Detect(catalog, nil, Metrics{Streak: 30})

	require.Len(t, qualified, 3)
	assert.Equal(t, "streak-3", qualified[0].ID)
	assert.Equal(t, "streak-7", qualified[1].ID)
	assert.Equal(t, "streak-30", qualified[2].ID)
}

func TestAward_Idempotent(t *testing.T) {
	store := accounts.NewMemoryStore()
	repo := NewMemoryRepository(store)
	ctx := context.Background()

	account, err := store.Create(ctx, accounts.NewAccount{
		Handle:     "sam",
		SecretHash: "$2a$10$notarealhash",
	})
	require.NoError(t, err)

	achievement := Achievement{ID: "streak-3", Points: 25, Category: CategoryStreak, Threshold: 3}

	fresh, err := repo.Award(ctx, account.ID, achievement)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = repo.Award(ctx, account.ID, achievement)
	require.NoError(t, err)
	assert.False(t, fresh)

	got, err := store.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Points, "repeat awards never double-credit")
}

func TestMarkDisplayed_NotEarned(t *testing.T) {
	store := accounts.NewMemoryStore()
	repo := NewMemoryRepository(store)

	err := repo.MarkDisplayed(context.Background(), "someone", "streak-3")
	assert.ErrorIs(t, err, ErrNotEarned)
}
