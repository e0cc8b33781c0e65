package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fragmede/threadscity/internal/api"
	"github.com/fragmede/threadscity/internal/auth"
	"github.com/fragmede/threadscity/internal/cache"
	"github.com/fragmede/threadscity/internal/config"
	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/ui"
	"github.com/fragmede/threadscity/internal/ui/styles"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.Load()

	if err := os.MkdirAll(cfg.ConfigDir, 0o755); err != nil {
		log.Fatalf("creating config dir: %v", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	db, err := cache.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening cache: %v", err)
	}
	defer db.Close()

	client, err := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RequestRate, cfg.RequestBurst),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := auth.NewService(client, cfg.MaxRetries, cfg.RetryUnit)
	gate := auth.NewGate(svc, auth.NewPersistentSession(client, db))
	store := feed.NewStore(cfg.LoadDelay)

	theme, err := db.GetTheme()
	if err != nil {
		log.Printf("reading theme: %v", err)
	}

	app := ui.NewApp(cfg, client, gate, store, db, styles.New(theme))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	app.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
