package sessions

import "errors"

var (
	// ErrSessionInvalidated means the presented identifier was superseded by
	// a newer login on another device; distinct from bad credentials so
	// clients can force a clean re-login with the right messaging
	ErrSessionInvalidated = errors.New("session invalidated by a newer login")
)
