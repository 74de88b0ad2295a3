package sessions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchprep/server/pitchprep/accounts"
)

func newTestGuard(t *testing.T) (*Guard, accounts.Store, string) {
	t.Helper()

	store := accounts.NewMemoryStore()

	account, err := store.Create(context.Background(), accounts.NewAccount{
		Handle:     "riley",
		SecretHash: "$2a$10$notarealhash",
	})
	require.NoError(t, err)

	return NewGuard(store), store, account.ID
}

func TestIssue_InvalidatesPreviousSession(t *testing.T) {
	guard, _, accountID := newTestGuard(t)
	ctx := context.Background()

	deviceA, err := guard.Issue(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, guard.Validate(ctx, accountID, deviceA))

	// login from a second device replaces the stored identifier
	deviceB, err := guard.Issue(ctx, accountID)
	require.NoError(t, err)
	assert.NotEqual(t, deviceA, deviceB)

	assert.ErrorIs(t, guard.Validate(ctx, accountID, deviceA), ErrSessionInvalidated)
	assert.NoError(t, guard.Validate(ctx, accountID, deviceB))
}

func TestValidate_LegacyAccountPasses(t *testing.T) {
	guard, store, accountID := newTestGuard(t)
	ctx := context.Background()

	// accounts that predate session control carry no stored identifier
	require.NoError(t, store.UpdateSession(ctx, accountID, ""))

	assert.NoError(t, guard.Validate(ctx, accountID, "anything"))
	assert.NoError(t, guard.Validate(ctx, accountID, ""))
}

func TestValidate_UnknownAccount(t *testing.T) {
	guard, _, _ := newTestGuard(t)

	err := guard.Validate(context.Background(), "no-such-id", "token")
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestRevoke_RotatesWithoutClearing(t *testing.T) {
	guard, store, accountID := newTestGuard(t)
	ctx := context.Background()

	session, err := guard.Issue(ctx, accountID)
	require.NoError(t, err)

	require.NoError(t, guard.Revoke(ctx, accountID))

	// the old token stops working but the stored id is never emptied, so the
	// legacy pass-through rule does not reopen
	assert.ErrorIs(t, guard.Validate(ctx, accountID, session), ErrSessionInvalidated)

	account, err := store.Get(ctx, accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, account.SessionID)
	assert.NotEqual(t, session, account.SessionID)
}

func TestGenerateSessionID_Unique(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)

	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
