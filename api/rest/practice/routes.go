package practice

import "github.com/gin-gonic/gin"

// registers the quota-gated practice routes behind the auth middleware
func RegisterRoutes(router *gin.RouterGroup, deps Deps, authMiddleware gin.HandlerFunc) {
	group := router.Group("/practice", authMiddleware)
	{
		group.POST("/roleplay", RoleplayHandler(deps))
		group.POST("/exam", ExamHandler(deps))
		group.POST("/exam/score", SubmitScoreHandler(deps))
		group.POST("/feedback", FeedbackHandler(deps))
	}
}
