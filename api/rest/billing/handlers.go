package billing

import (
	"crypto/subtle"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/internal/errors"
	"github.com/pitchprep/server/internal/logger"
	"github.com/pitchprep/server/pitchprep/accounts"
)

// WebhookHandler godoc
// @Summary Billing tier webhook
// @Description Receive a tier change from the billing provider and apply it to the account
// @Tags billing
// @Accept json
// @Produce json
// @Param request body WebhookRequest true "Tier change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/billing/webhook [post]
func WebhookHandler(store accounts.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader("X-Billing-Signature")

		if subtle.ConstantTimeCompare([]byte(signature), []byte(secret)) != 1 {
			errors.Unauthorized(c, "invalid webhook signature")
			return
		}

		var req WebhookRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		tier := accounts.Tier(req.Tier)
		if !tier.Valid() {
			errors.BadRequest(c, "unknown tier", nil)
			return
		}

		if err := store.UpdateTier(c.Request.Context(), req.AccountID, tier); err != nil {
			if stderrors.Is(err, accounts.ErrNotFound) {
				errors.NotFound(c, "account")
				return
			}
			errors.InternalError(c, "failed to update tier", err)
			return
		}

		logger.Info("tier updated by billing webhook", "account_id", req.AccountID, "tier", req.Tier)

		c.JSON(http.StatusOK, MessageResponse{Message: "tier updated"})
	}
}
