package notebook

import (
	"context"
	"fmt"
	"log/slog"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
	"nicenote/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) notebookRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, parent_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.ID,
		folder.Name,
		folder.ParentID,
		folder.Position,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFound("folder", deref(folder.ParentID))
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, position, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NewNotFound("folder", id)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// Exists reports whether a folder exists
func (r *PostgresFolderRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Folders)

	var exists bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check folder: %w", err)
	}

	return exists, nil
}

// Update updates a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_id = $2, position = $3, updated_at = $4
		WHERE id = $5
		RETURNING created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.Position,
		folder.UpdatedAt,
		folder.ID,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return domain.NewNotFound("folder", folder.ID)
		}
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFound("folder", deref(folder.ParentID))
		}
		return fmt.Errorf("update folder: %w", err)
	}

	return nil
}

// Delete deletes a folder. Descendant folders cascade; notes inside fall back to root.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("folder", id)
	}

	return nil
}

// List returns all folders ordered by position, then creation time
func (r *PostgresFolderRepository) List(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, position, created_at, updated_at
		FROM %s
		ORDER BY position ASC, created_at ASC
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	folders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Folder, error) {
		folder, err := scanFolder(row)
		if err != nil {
			return models.Folder{}, err
		}
		return *folder, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan folders: %w", err)
	}

	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// IsDescendant walks up from candidateID and reports whether ancestorID is on the path
func (r *PostgresFolderRepository) IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE ancestry AS (
			SELECT id, parent_id FROM %[1]s WHERE id = $1
			UNION ALL
			SELECT f.id, f.parent_id
			FROM %[1]s f
			JOIN ancestry a ON f.id = a.parent_id
		)
		SELECT EXISTS (SELECT 1 FROM ancestry WHERE id = $2)
	`, r.tables.Folders)

	var found bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, candidateID, ancestorID).Scan(&found); err != nil {
		return false, fmt.Errorf("check folder ancestry: %w", err)
	}

	return found, nil
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.Position,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}
