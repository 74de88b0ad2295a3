package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/pitchprep/server/pitchprep/accounts"
)

// Guard enforces a single valid session per account. The account row holds
// exactly one current identifier; issuing a new one implicitly invalidates
// whatever a previous device still presents.
type Guard struct {
	store accounts.Store
}

// creates a new session guard over an account store
func NewGuard(store accounts.Store) *Guard {
	return &Guard{store: store}
}

// returns a new random opaque session identifier
func GenerateSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// mints a new session identifier and writes it onto the account, replacing
// the previous one. Visible to all subsequent Validate calls as soon as the
// store write completes.
func (g *Guard) Issue(ctx context.Context, accountID string) (string, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return "", fmt.Errorf("failed to mint session id: %w", err)
	}

	if err := g.store.UpdateSession(ctx, accountID, id); err != nil {
		return "", err
	}

	return id, nil
}

// checks a presented identifier against the stored one. Accounts with no
// stored identifier predate session control and pass unchecked.
func (g *Guard) Validate(ctx context.Context, accountID, presented string) error {
	account, err := g.store.Get(ctx, accountID)
	if err != nil {
		return err
	}

	if account.SessionID == "" {
		return nil
	}

	if account.SessionID != presented {
		return ErrSessionInvalidated
	}

	return nil
}

// invalidates the caller's session at logout by rotating the stored
// identifier to a fresh value that is never returned to any client. The
// column is deliberately never cleared: an empty identifier would re-enter
// the legacy pass-through rule.
func (g *Guard) Revoke(ctx context.Context, accountID string) error {
	_, err := g.Issue(ctx, accountID)
	return err
}
