package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"nicenote/internal/handler"
	"nicenote/internal/repository/postgres"
	"nicenote/internal/seed"
	"nicenote/internal/server"
)

func serve(c *cli.Context) error {
	cfg, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := newApp(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	router := server.NewRouter(&server.Handlers{
		Health: handler.NewHealthHandler(a.index.Failures),
		Note:   handler.NewNoteHandler(a.notes, logger),
		Folder: handler.NewFolderHandler(a.folders, logger),
		Tag:    handler.NewTagHandler(a.tags, logger),
	}, cfg.CORSOrigins, logger)

	var tasks []server.Background
	if cfg.ReconcileInterval > 0 {
		tasks = append(tasks, func(ctx context.Context) error {
			return a.reconciler.Run(ctx, cfg.ReconcileInterval)
		})
	} else {
		logger.Info("search index reconciler disabled")
	}

	return server.Run(c.Context, ":"+cfg.Port, router, logger, tasks...)
}

func migrateUp(c *cli.Context) error {
	return withMigrator(c, (*postgres.Migrator).Up)
}

func migrateDown(c *cli.Context) error {
	return withMigrator(c, (*postgres.Migrator).Down)
}

func withMigrator(c *cli.Context, step func(*postgres.Migrator) error) error {
	cfg, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	pool, err := postgres.CreateConnectionPool(c.Context, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool, cfg.TablePrefix, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	return step(m)
}

func reindex(c *cli.Context) error {
	cfg, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Bool("full") {
		report, err := a.reconciler.Rebuild(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "rebuilt: %d reindexed, %d failed\n", report.Reindexed, report.Failed)
		return nil
	}

	report, err := a.reconciler.Reconcile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "reconciled: %d orphans removed, %d reindexed, %d failed\n",
		report.OrphansRemoved, report.Reindexed, report.Failed)
	return nil
}

func seedNotes(c *cli.Context) error {
	cfg, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	// SAFETY: never write sample data into production tables
	if cfg.Environment == "prod" {
		return fmt.Errorf("seed is disabled in the prod environment")
	}

	a, err := newApp(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := seed.NewSeeder(a.notes, a.folders, a.tags, logger).Seed(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "seeded %d notes into %q\n", n, seed.SampleFolder)
	return nil
}
