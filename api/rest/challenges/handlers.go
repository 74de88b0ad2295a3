package challenges

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/internal/auth"
	"github.com/pitchprep/server/internal/errors"
	"github.com/pitchprep/server/internal/logger"
	"github.com/pitchprep/server/pitchprep/achievements"
	"github.com/pitchprep/server/pitchprep/challenges"
)

// TodayHandler godoc
// @Summary Get today's challenge
// @Description Get the shared challenge for the current date, creating it on first access
// @Tags challenges
// @Produce json
// @Success 200 {object} TodayResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/challenges/today [get]
// @Security BearerAuth
func TodayHandler(scheduler *challenges.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		view, err := scheduler.Today(c.Request.Context(), accountID)
		if err != nil {
			errors.InternalError(c, "failed to load today's challenge", err)
			return
		}

		c.JSON(http.StatusOK, TodayResponse{Challenge: *view})
	}
}

// CompleteHandler godoc
// @Summary Complete today's challenge
// @Description Record completion; the first call credits points, repeats return awarded=false
// @Tags challenges
// @Produce json
// @Success 200 {object} CompleteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/challenges/today/complete [post]
// @Security BearerAuth
func CompleteHandler(scheduler *challenges.Scheduler, engine *achievements.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		result, err := scheduler.Complete(c.Request.Context(), accountID)
		if err != nil {
			errors.InternalError(c, "failed to complete challenge", err)
			return
		}

		if result.Awarded {
			if _, err := engine.Check(c.Request.Context(), accountID); err != nil {
				logger.ErrorErr(err, "achievement check failed after challenge completion", "account_id", accountID)
			}
		}

		c.JSON(http.StatusOK, CompleteResponse{Result: *result})
	}
}
