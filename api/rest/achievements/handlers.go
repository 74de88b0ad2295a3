package achievements

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/internal/auth"
	"github.com/pitchprep/server/internal/errors"
	"github.com/pitchprep/server/pitchprep/achievements"
)

// ListHandler godoc
// @Summary List achievements
// @Description List the full catalog annotated with the caller's earned and displayed flags
// @Tags achievements
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/achievements [get]
// @Security BearerAuth
func ListHandler(repo achievements.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		earned, err := repo.Earned(c.Request.Context(), accountID)
		if err != nil {
			errors.InternalError(c, "failed to load achievements", err)
			return
		}

		catalog := achievements.Catalog()
		entries := make([]CatalogEntry, 0, len(catalog))

		for _, a := range catalog {
			record, has := earned[a.ID]
			entries = append(entries, CatalogEntry{
				Achievement: a,
				Earned:      has,
				Displayed:   has && record.Displayed,
			})
		}

		c.JSON(http.StatusOK, ListResponse{Achievements: entries})
	}
}

// CheckHandler godoc
// @Summary Check for new achievements
// @Description Detect and award any achievements the account newly qualifies for
// @Tags achievements
// @Produce json
// @Success 200 {object} CheckResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/achievements/check [post]
// @Security BearerAuth
func CheckHandler(engine *achievements.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		newly, err := engine.Check(c.Request.Context(), accountID)
		if err != nil {
			errors.InternalError(c, "failed to check achievements", err)
			return
		}

		if newly == nil {
			newly = []achievements.AccountAchievement{}
		}

		c.JSON(http.StatusOK, CheckResponse{NewlyEarned: newly})
	}
}

// MarkDisplayedHandler godoc
// @Summary Mark an achievement as displayed
// @Description Flag an earned achievement so the client stops announcing it
// @Tags achievements
// @Produce json
// @Param id path string true "Achievement ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/achievements/{id}/displayed [post]
// @Security BearerAuth
func MarkDisplayedHandler(repo achievements.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := auth.GetAccountID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		achievementID := c.Param("id")
		if achievementID == "" {
			errors.BadRequest(c, "missing achievement id", nil)
			return
		}

		err := repo.MarkDisplayed(c.Request.Context(), accountID, achievementID)
		if err != nil {
			if stderrors.Is(err, achievements.ErrNotEarned) {
				errors.NotFound(c, "achievement")
				return
			}
			errors.InternalError(c, "failed to mark achievement displayed", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "marked displayed"})
	}
}
