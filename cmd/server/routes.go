package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	achievementsrest "github.com/pitchprep/server/api/rest/achievements"
	authrest "github.com/pitchprep/server/api/rest/auth"
	"github.com/pitchprep/server/api/rest/billing"
	challengesrest "github.com/pitchprep/server/api/rest/challenges"
	"github.com/pitchprep/server/api/rest/health"
	"github.com/pitchprep/server/api/rest/practice"
	"github.com/pitchprep/server/internal/auth"
	"github.com/pitchprep/server/internal/logger"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://pitchprep.app", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", health.Handler)

	authMiddleware := auth.Middleware(server.guard, server.config.SessionExemptPaths)
	credentialLimit := credentialRateLimit()

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		authrest.RegisterRoutes(v1, server.accountStore, server.guard, credentialLimit, authMiddleware)

		practice.RegisterRoutes(v1, practice.Deps{
			Store:     server.accountStore,
			Meter:     server.meter,
			Generator: server.generator,
			Engine:    server.engine,
		}, authMiddleware)

		achievementsrest.RegisterRoutes(v1, server.achievementRepo, server.engine, authMiddleware)
		challengesrest.RegisterRoutes(v1, server.scheduler, server.engine, authMiddleware)

		if server.config.BillingWebhookSecret != "" {
			billing.RegisterRoutes(v1, server.accountStore, server.config.BillingWebhookSecret)
		} else {
			logger.Warn("BILLING_WEBHOOK_SECRET not set, billing webhook disabled")
		}
	}
}

// throttles the credential endpoints (10 attempts per minute per client IP)
func credentialRateLimit() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  10,
	}

	return mgin.NewMiddleware(limiter.New(memorystore.NewStore(), rate))
}
