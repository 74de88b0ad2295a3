package challenges

import (
	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/pitchprep/achievements"
	"github.com/pitchprep/server/pitchprep/challenges"
)

// registers the daily challenge routes behind the auth middleware
func RegisterRoutes(router *gin.RouterGroup, scheduler *challenges.Scheduler, engine *achievements.Engine, authMiddleware gin.HandlerFunc) {
	group := router.Group("/challenges", authMiddleware)
	{
		group.GET("/today", TodayHandler(scheduler))
		group.POST("/today/complete", CompleteHandler(scheduler, engine))
	}
}
