package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taberinos/backend/internal/api"
	"github.com/taberinos/backend/internal/config"
	"github.com/taberinos/backend/internal/database"
	"github.com/taberinos/backend/internal/leaderboard"
	"github.com/taberinos/backend/internal/migrations"
	"github.com/taberinos/backend/internal/redis"
	"github.com/taberinos/backend/internal/session"
	"github.com/taberinos/backend/internal/ws"
)

func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "taberinos"
	}
	b := make([]byte, 4)
	rand.Read(b)
	return host + "-" + hex.EncodeToString(b)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if cfg.MigrateOnStart {
		log.Println("Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	origin := instanceID()
	pub := redis.NewPublisher(rdb, origin, time.Duration(cfg.SnapshotTTLMinutes)*time.Minute)

	// Leaderboard: Postgres is the record, Redis the read cache
	store := leaderboard.NewCachedStore(
		leaderboard.NewPostgresStore(db),
		leaderboard.NewRedisStore(rdb, cfg.LeaderboardSize),
		cfg.LeaderboardSize,
	)
	scores := leaderboard.NewService(store, cfg.LeaderboardSize)

	// Sessions
	sessions := session.NewManager(ctx, session.OptionsFromConfig(cfg), pub, scores)
	go sessions.StartExpiryChecker(ctx, time.Minute)

	// WebSocket hub and cross-instance relay
	hub := ws.NewHub()
	go hub.Run(ctx)
	ws.StartEventSubscriber(ctx, rdb, hub, origin)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	api.SetupRoutes(router, api.Deps{
		DB:          db,
		Config:      cfg,
		Sessions:    sessions,
		Leaderboard: scores,
		Hub:         hub,
		Snapshots:   pub,
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Starting Taberinos server on port %s (instance %s)", port, origin)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	sessions.Shutdown()
}
