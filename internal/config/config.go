package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback for JWT_SECRET.
const DefaultJWTSecret = "change-me-in-production"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set in production")

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Canvas
	CanvasWidth  int
	CanvasHeight int
	LevelMargin  int

	// Sessions
	FrameIntervalMs    int
	SessionIdleMinutes int
	SnapshotTTLMinutes int

	// Leaderboard
	LeaderboardSize int
	LeaderboardURL  string

	// Security
	JWTSecret              string
	SessionTokenTTLMinutes int
	AdminTokenHash         string

	// Debug / client
	EnableDebugRoutes bool
	AudioEnabled      bool
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	env := getEnv("APP_ENV", "development")

	return &Config{
		// Environment
		Environment: env,

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/taberinos?sslmode=disable"),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Canvas
		CanvasWidth:  getEnvInt("CANVAS_WIDTH", 800),
		CanvasHeight: getEnvInt("CANVAS_HEIGHT", 600),
		LevelMargin:  getEnvInt("LEVEL_MARGIN", 50),

		// Sessions
		FrameIntervalMs:    getEnvInt("FRAME_INTERVAL_MS", 16),
		SessionIdleMinutes: getEnvInt("SESSION_IDLE_MINUTES", 30),
		SnapshotTTLMinutes: getEnvInt("SNAPSHOT_TTL_MINUTES", 60),

		// Leaderboard
		LeaderboardSize: getEnvInt("LEADERBOARD_SIZE", 10),
		LeaderboardURL:  getEnv("LEADERBOARD_URL", ""),

		// Security
		JWTSecret:              getEnv("JWT_SECRET", DefaultJWTSecret),
		SessionTokenTTLMinutes: getEnvInt("SESSION_TOKEN_TTL_MINUTES", 120),
		AdminTokenHash:         getEnv("ADMIN_TOKEN_HASH", ""),

		// Debug / client
		EnableDebugRoutes: getEnvBool("ENABLE_DEBUG_ROUTES", env != "production"),
		AudioEnabled:      getEnvBool("AUDIO_ENABLED", true),
	}
}

// Validate reports settings the server must not run with.
func (c *Config) Validate() error {
	if c.Environment == "production" && c.JWTSecret == DefaultJWTSecret {
		return ErrInsecureJWTSecret
	}
	if c.JWTSecret == DefaultJWTSecret {
		log.Printf("[CONFIG] JWT_SECRET not set; using the development default")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
