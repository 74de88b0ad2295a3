package achievements

import (
	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/pitchprep/achievements"
)

// registers the achievement routes behind the auth middleware
func RegisterRoutes(router *gin.RouterGroup, repo achievements.Repository, engine *achievements.Engine, authMiddleware gin.HandlerFunc) {
	group := router.Group("/achievements", authMiddleware)
	{
		group.GET("", ListHandler(repo))
		group.POST("/check", CheckHandler(engine))
		group.POST("/:id/displayed", MarkDisplayedHandler(repo))
	}
}
