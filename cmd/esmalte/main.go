package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/esmalte/internal/catalog"
	"github.com/javiermolinar/esmalte/internal/config"
	"github.com/javiermolinar/esmalte/internal/schedule"
	"github.com/javiermolinar/esmalte/internal/store"
	"github.com/javiermolinar/esmalte/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	st, err := store.NewSQLite(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	engine, err := schedule.New(ctx, st)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	cat, err := catalog.New(ctx, st)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	app := ui.NewApp(engine, cat, cfg)
	return app.Execute()
}
