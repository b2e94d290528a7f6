package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"nicenote/internal/config"
	models "nicenote/internal/domain/models/notebook"
	svc "nicenote/internal/domain/services/notebook"
	"nicenote/internal/repository/postgres"
	pgnotebook "nicenote/internal/repository/postgres/notebook"
	"nicenote/internal/service/notebook"
)

// app holds the wired services shared by the subcommands
type app struct {
	pool       *pgxpool.Pool
	notes      svc.NoteService
	folders    svc.FolderService
	tags       svc.TagService
	index      *notebook.IndexSynchronizer
	reconciler *notebook.Reconciler
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connected", "environment", cfg.Environment, "table_prefix", cfg.TablePrefix)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	noteRepo := pgnotebook.NewNoteRepository(repoConfig)
	folderRepo := pgnotebook.NewFolderRepository(repoConfig)
	tagRepo := pgnotebook.NewTagRepository(repoConfig)
	indexRepo := pgnotebook.NewSearchIndexRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	analyzer := notebook.NewContentAnalyzer()
	index := notebook.NewIndexSynchronizer(indexRepo, txManager, analyzer, models.SearchOptions{
		HighlightStart: cfg.HighlightStart,
		HighlightStop:  cfg.HighlightStop,
	}, logger)

	return &app{
		pool:       pool,
		notes:      notebook.NewNoteService(noteRepo, folderRepo, tagRepo, txManager, index, analyzer, logger),
		folders:    notebook.NewFolderService(folderRepo, logger),
		tags:       notebook.NewTagService(tagRepo, noteRepo, logger),
		index:      index,
		reconciler: notebook.NewReconciler(noteRepo, indexRepo, index, logger),
	}, nil
}

func (a *app) Close() {
	a.pool.Close()
}
