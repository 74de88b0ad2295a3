package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchprep/server/internal/config"
	"github.com/pitchprep/server/internal/generator"
	"github.com/pitchprep/server/internal/quota"
	"github.com/pitchprep/server/internal/sessions"
	"github.com/pitchprep/server/pitchprep/accounts"
	"github.com/pitchprep/server/pitchprep/achievements"
	"github.com/pitchprep/server/pitchprep/challenges"
)

// holds all dependencies and state for the API server
type Server struct {
	db *pgxpool.Pool // nil when running on the in-memory backend

	config          *config.Config
	accountStore    accounts.Store
	achievementRepo achievements.Repository
	challengeRepo   challenges.Repository

	guard     *sessions.Guard
	meter     *quota.Meter
	engine    *achievements.Engine
	scheduler *challenges.Scheduler
	generator generator.Client

	router *gin.Engine
}
