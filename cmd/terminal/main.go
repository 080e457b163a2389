package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/taberinos/backend/internal/config"
	"github.com/taberinos/backend/internal/leaderboard"
	"github.com/taberinos/backend/internal/tui"
)

func main() {
	player := flag.String("player", os.Getenv("USER"), "name recorded with scores")
	seed := flag.Uint64("seed", 0, "level seed (0 = random)")
	logFile := flag.String("log", "taberinos.log", "log file; the screen is owned by the game")
	flag.Parse()

	if f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	// Scores go to the server when one is configured, else stay in memory
	var store leaderboard.Store
	if cfg.LeaderboardURL != "" {
		store = leaderboard.NewRemoteStore(cfg.LeaderboardURL, 5*time.Second)
		log.Printf("[LEADERBOARD] Using remote leaderboard at %s", cfg.LeaderboardURL)
	} else {
		store = leaderboard.NewMemoryStore(cfg.LeaderboardSize)
	}
	scores := leaderboard.NewService(store, cfg.LeaderboardSize)

	sound := &tui.Sound{}
	if cfg.AudioEnabled {
		if err := sound.Init(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	term, err := tui.NewTerminal(screen, tui.Options{
		Player:        *player,
		FrameInterval: time.Duration(cfg.FrameIntervalMs) * time.Millisecond,
		Scores:        scores,
		Sound:         sound,
		Seed:          *seed,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	term.Run(ctx)
}
