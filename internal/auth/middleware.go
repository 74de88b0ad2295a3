package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	resterrors "github.com/pitchprep/server/internal/errors"
	"github.com/pitchprep/server/internal/sessions"
)

// Middleware validates JWT tokens, enforces the one-active-session rule and
// adds account info to the request context. Paths on the exemption list skip
// only the session check, so a login elsewhere cannot abort their in-flight
// work mid-request.
func Middleware(guard *sessions.Guard, exemptPaths []string) gin.HandlerFunc {
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			resterrors.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			resterrors.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := ValidateJWT(parts[1])
		if err != nil {
			resterrors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		if _, skip := exempt[c.FullPath()]; !skip {
			err := guard.Validate(c.Request.Context(), claims.AccountID, claims.SessionID)
			if err != nil {
				if errors.Is(err, sessions.ErrSessionInvalidated) {
					resterrors.SessionInvalidated(c)
				} else {
					resterrors.InternalError(c, "failed to validate session", err)
				}
				c.Abort()
				return
			}
		}

		c.Set("account_id", claims.AccountID)
		c.Set("handle", claims.Handle)
		c.Set("session_id", claims.SessionID)

		c.Next()
	}
}

// extracts account_id from context after Middleware
func GetAccountID(c *gin.Context) (string, bool) {
	accountID, exists := c.Get("account_id")

	if !exists {
		return "", false
	}

	return accountID.(string), true
}
