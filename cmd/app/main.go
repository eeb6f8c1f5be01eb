package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/ehwaz/internal"
	pkgconfig "github.com/starford/ehwaz/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Command-line overrides take precedence over the config file.
	if v := cmd.String("posts"); v != "" {
		cfg.Posts.Path = v
	}
	if v := cmd.String("attachments"); v != "" {
		cfg.Attachments.Path = v
	}
	if v := cmd.String("images"); v != "" {
		cfg.Images.Path = v
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}
	if cmd.Bool("dry-run") {
		opts = append(opts, internal.WithDryRun())
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "ehwaz",
		Usage:  "Migrate Obsidian-style Markdown notes for static-site publishing: rewrite image links and copy attachments into the static images tree",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "posts",
				Usage: "Directory of Markdown documents to migrate",
			},
			&cli.StringFlag{
				Name:  "attachments",
				Usage: "Root of the attachment source tree",
			},
			&cli.StringFlag{
				Name:  "images",
				Usage: "Destination static-images directory",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "Log copies without performing them (rewritten documents are still written back)",
				Sources: cli.EnvVars("EHWAZ_DRY_RUN"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
