package config

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("CANVAS_WIDTH", "")
	t.Setenv("ENABLE_DEBUG_ROUTES", "")

	cfg := Load()
	if cfg.CanvasWidth != 800 || cfg.CanvasHeight != 600 || cfg.LevelMargin != 50 {
		t.Fatalf("canvas = %dx%d margin %d", cfg.CanvasWidth, cfg.CanvasHeight, cfg.LevelMargin)
	}
	if cfg.FrameIntervalMs != 16 {
		t.Errorf("frame interval = %d, want 16", cfg.FrameIntervalMs)
	}
	if cfg.LeaderboardSize != 10 {
		t.Errorf("leaderboard size = %d, want 10", cfg.LeaderboardSize)
	}
	if !cfg.EnableDebugRoutes {
		t.Error("debug routes should default on outside production")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CANVAS_WIDTH", "1024")
	t.Setenv("FRAME_INTERVAL_MS", "not-a-number")
	t.Setenv("AUDIO_ENABLED", "false")
	t.Setenv("ENABLE_DEBUG_ROUTES", "")

	cfg := Load()
	if cfg.CanvasWidth != 1024 {
		t.Errorf("canvas width = %d, want 1024", cfg.CanvasWidth)
	}
	if cfg.FrameIntervalMs != 16 {
		t.Errorf("bad int should fall back to default, got %d", cfg.FrameIntervalMs)
	}
	if cfg.AudioEnabled {
		t.Error("audio should be disabled")
	}
	if cfg.EnableDebugRoutes {
		t.Error("debug routes should default off in production")
	}
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if err := cfg.Validate(); !errors.Is(err, ErrInsecureJWTSecret) {
		t.Fatalf("Validate = %v, want ErrInsecureJWTSecret", err)
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	if err := Load().Validate(); err != nil {
		t.Fatalf("Validate with secret set = %v", err)
	}

	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	if err := Load().Validate(); err != nil {
		t.Fatalf("development default rejected: %v", err)
	}
}
