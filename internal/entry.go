// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/ehwaz/internal/extract"
	"github.com/starford/ehwaz/internal/migrate"
	"github.com/starford/ehwaz/internal/resolve"
	"github.com/starford/ehwaz/internal/storage"
)

// Run executes a single migration pass with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	dryRun := cfg.Migrate.DryRun || app.dryRun

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("posts_path", cfg.Posts.Path),
		slog.String("attachments_path", cfg.Attachments.Path),
		slog.String("images_path", cfg.Images.Path),
		slog.Bool("dry_run", dryRun),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Nothing to process without a posts directory.
	docs, err := storage.NewDir(cfg.Posts.Path)
	if err != nil {
		return fmt.Errorf("open posts dir: %w", err)
	}

	// Ensure the destination tree exists.
	if err := os.MkdirAll(cfg.Images.Path, 0o755); err != nil {
		return fmt.Errorf("create images dir: %w", err)
	}

	scanner, err := extract.NewScanner(cfg.Migrate.Extensions)
	if err != nil {
		return fmt.Errorf("build scanner: %w", err)
	}

	m := migrate.New(migrate.Options{
		Docs:       docs,
		Scanner:    scanner,
		Resolver:   resolve.New(cfg.Attachments.Path, cfg.Images.Prefix),
		ImagesDir:  cfg.Images.Path,
		Prefix:     cfg.Images.Prefix,
		Extensions: cfg.Migrate.Extensions,
		DryRun:     dryRun,
		Logger:     logger,
	})

	stats, err := m.Run(ctx)
	if err != nil {
		logger.Error("Migration failed", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Migration finished",
		slog.Int("documents", stats.Documents),
		slog.Int("rewritten", stats.Rewritten),
		slog.Int("copied", stats.Copied),
		slog.Int("missing", stats.Missing),
		slog.Int("skipped", stats.Skipped))

	return nil
}
