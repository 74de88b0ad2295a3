package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims; the token carries the opaque session identifier so
// every request can be checked against the single stored one
type Claims struct {
	AccountID string `json:"account_id"`
	Handle    string `json:"handle"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}
