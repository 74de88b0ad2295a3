package billing

import (
	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/pitchprep/accounts"
)

// registers the billing webhook; authenticated by shared secret, not JWT
func RegisterRoutes(router *gin.RouterGroup, store accounts.Store, secret string) {
	group := router.Group("/billing")
	{
		group.POST("/webhook", WebhookHandler(store, secret))
	}
}
