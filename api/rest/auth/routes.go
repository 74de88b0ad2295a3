package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/pitchprep/server/internal/sessions"
	"github.com/pitchprep/server/pitchprep/accounts"
)

// registers all authentication routes; rateLimit throttles the credential
// endpoints against brute forcing
func RegisterRoutes(router *gin.RouterGroup, store accounts.Store, guard *sessions.Guard, rateLimit gin.HandlerFunc, authMiddleware gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", rateLimit, RegisterHandler(store))
		authGroup.POST("/login", rateLimit, LoginHandler(store, guard))
		authGroup.POST("/logout", authMiddleware, LogoutHandler(guard))
		authGroup.GET("/me", authMiddleware, GetCurrentAccountHandler(store))
		authGroup.PUT("/me", authMiddleware, UpdateProfileHandler(store))
	}
}
