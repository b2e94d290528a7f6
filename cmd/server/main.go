package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"nicenote/internal/config"
)

func main() {
	// Load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:   "nicenote",
		Usage:  "note synchronization server",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start http server and search index reconciler",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back schema migrations",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateUp},
					{Name: "down", Usage: "roll back the latest migration", Action: migrateDown},
				},
			},
			{
				Name:  "reindex",
				Usage: "repair the search index",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "full", Usage: "truncate and rebuild the whole index"},
				},
				Action: reindex,
			},
			{
				Name:   "seed",
				Usage:  "import sample notes (dev and test only)",
				Action: seedNotes,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the process logger
func setup() (*config.Config, *slog.Logger, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logging: %w", err)
	}
	slog.SetDefault(logger)

	return cfg, logger, closeLog, nil
}
