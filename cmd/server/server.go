package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchprep/server/internal/config"
	"github.com/pitchprep/server/internal/generator"
	"github.com/pitchprep/server/internal/logger"
	"github.com/pitchprep/server/internal/quota"
	"github.com/pitchprep/server/internal/sessions"
	"github.com/pitchprep/server/pitchprep/accounts"
	"github.com/pitchprep/server/pitchprep/achievements"
	"github.com/pitchprep/server/pitchprep/challenges"
)

// creates and configures a new server instance with all dependencies. The
// storage backend is selected once here and injected everywhere; nothing
// else ever asks which backend is in play.
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	server := &Server{config: cfg}

	if cfg.HasDatabase() {
		db, err := connectDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		accountStore := accounts.NewPostgresStore(db)
		achievementRepo := achievements.NewPostgresRepository(db)
		challengeRepo := challenges.NewPostgresRepository(db)

		for name, init := range map[string]func(context.Context) error{
			"accounts":     accountStore.Initialize,
			"achievements": achievementRepo.Initialize,
			"challenges":   challengeRepo.Initialize,
		} {
			if err := init(ctx); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to initialize %s schema: %w", name, err)
			}
		}

		server.db = db
		server.accountStore = accountStore
		server.achievementRepo = achievementRepo
		server.challengeRepo = challengeRepo
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage; data is lost on restart")

		accountStore := accounts.NewMemoryStore()

		server.accountStore = accountStore
		server.achievementRepo = achievements.NewMemoryRepository(accountStore)
		server.challengeRepo = challenges.NewMemoryRepository()
	}

	server.guard = sessions.NewGuard(server.accountStore)
	server.meter = quota.NewMeter(server.accountStore)
	server.engine = achievements.NewEngine(server.achievementRepo, server.accountStore)
	server.scheduler = challenges.NewScheduler(server.challengeRepo, server.accountStore)
	server.generator = generator.NewHTTPClient(generator.Config{
		APIKey:  cfg.GeneratorAPIKey,
		BaseURL: cfg.GeneratorBaseURL,
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server.router = gin.Default()

	RegisterRoutes(server.router, server)

	return server, nil
}

// opens and verifies the Postgres connection pool
func connectDatabase(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small; the hosted pooler caps connections per project
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
