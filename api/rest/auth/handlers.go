package auth

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/pitchprep/server/internal/auth"
	"github.com/pitchprep/server/internal/errors"
	"github.com/pitchprep/server/internal/sessions"
	"github.com/pitchprep/server/pitchprep/accounts"
)

// RegisterHandler godoc
// @Summary Register a new account
// @Description Create an account with a unique handle. Returns the account and a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/auth/register [post]
func RegisterHandler(store accounts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
		if err != nil {
			errors.InternalError(c, "failed to hash secret", err)
			return
		}

		account, err := store.Create(c.Request.Context(), accounts.NewAccount{
			Handle:     req.Handle,
			SecretHash: string(hash),
			Email:      req.Email,
			EventTrack: req.EventTrack,
		})

		if err != nil {
			if stderrors.Is(err, accounts.ErrConflict) {
				errors.Conflict(c, "handle already taken")
				return
			}
			errors.InternalError(c, "failed to create account", err)
			return
		}

		token, err := auth.GenerateJWT(account.ID, account.Handle, account.SessionID)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Account: account, Token: token})
	}
}

// LoginHandler godoc
// @Summary Log in
// @Description Verify credentials, advance the login streak and mint a new session.
// @Description Any session on another device becomes stale immediately.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/login [post]
func LoginHandler(store accounts.Store, guard *sessions.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		account, err := store.GetByHandle(c.Request.Context(), req.Handle)
		if err != nil {
			// same response as a bad secret so handles can't be probed
			errors.AuthenticationFailed(c)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(account.SecretHash), []byte(req.Secret)) != nil {
			errors.AuthenticationFailed(c)
			return
		}

		now := time.Now().UTC()
		streak := accounts.NextStreak(account.Streak, account.LastActive, now)

		if err := store.UpdateStreak(c.Request.Context(), account.ID, streak, now); err != nil {
			errors.InternalError(c, "failed to update streak", err)
			return
		}

		sessionID, err := guard.Issue(c.Request.Context(), account.ID)
		if err != nil {
			errors.InternalError(c, "failed to issue session", err)
			return
		}

		token, err := auth.GenerateJWT(account.ID, account.Handle, sessionID)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		account.Streak = streak
		account.LastActive = now
		account.SessionID = sessionID

		c.JSON(http.StatusOK, AuthResponse{Account: account, Token: token})
	}
}

// LogoutHandler godoc
// @Summary Log out
// @Description Invalidate the caller's session server-side
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/logout [post]
// @Security BearerAuth
func LogoutHandler(guard *sessions.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		if err := guard.Revoke(c.Request.Context(), accountID); err != nil {
			errors.InternalError(c, "failed to log out", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

// GetCurrentAccountHandler godoc
// @Summary Get current account
// @Description Get the authenticated account's profile, counters and streak
// @Tags auth
// @Produce json
// @Success 200 {object} AccountResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentAccountHandler(store accounts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		account, err := store.Get(c.Request.Context(), accountID)
		if err != nil {
			errors.NotFound(c, "account")
			return
		}

		c.JSON(http.StatusOK, AccountResponse{Account: account})
	}
}

// UpdateProfileHandler godoc
// @Summary Update profile
// @Description Update the authenticated account's email and event track
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile update"
// @Success 200 {object} AccountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [put]
// @Security BearerAuth
func UpdateProfileHandler(store accounts.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req UpdateProfileRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		account, err := store.UpdateProfile(c.Request.Context(), accountID, req.Email, req.EventTrack)
		if err != nil {
			errors.InternalError(c, "failed to update profile", err)
			return
		}

		c.JSON(http.StatusOK, AccountResponse{Account: account})
	}
}
