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

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *postgres.RepositoryConfig) notebookRepo.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new tag
func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, color, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, tag.ID, tag.Name, tag.Color, tag.CreatedAt).Scan(&tag.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, tag.Name)
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by ID
func (r *PostgresTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := fmt.Sprintf(`SELECT id, name, color, created_at FROM %s WHERE id = $1`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := scanTag(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NewNotFound("tag", id)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return tag, nil
}

// GetByName retrieves a tag by name
func (r *PostgresTagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	query := fmt.Sprintf(`SELECT id, name, color, created_at FROM %s WHERE name = $1`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := scanTag(executor.QueryRow(ctx, query, name))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NewNotFound("tag", name)
		}
		return nil, fmt.Errorf("get tag by name: %w", err)
	}

	return tag, nil
}

// Update updates name and color
func (r *PostgresTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, color = $2
		WHERE id = $3
		RETURNING created_at
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, tag.Name, tag.Color, tag.ID).Scan(&tag.CreatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return domain.NewNotFound("tag", tag.ID)
		}
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, tag.Name)
		}
		return fmt.Errorf("update tag: %w", err)
	}

	return nil
}

// Delete deletes a tag
func (r *PostgresTagRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("tag", id)
	}

	return nil
}

// List returns all tags ordered by name
func (r *PostgresTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := fmt.Sprintf(`SELECT id, name, color, created_at FROM %s ORDER BY name ASC`, r.tables.Tags)
	return r.collect(ctx, query)
}

// NoteIDs returns ids of notes carrying the tag
func (r *PostgresTagRepository) NoteIDs(ctx context.Context, tagID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT note_id FROM %s WHERE tag_id = $1`, r.tables.NoteTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, tagID)
	if err != nil {
		return nil, fmt.Errorf("list tagged notes: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan tagged notes: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// ListForNote returns the tags attached to a note
func (r *PostgresTagRepository) ListForNote(ctx context.Context, noteID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.color, t.created_at
		FROM %s t
		JOIN %s nt ON nt.tag_id = t.id
		WHERE nt.note_id = $1
		ORDER BY t.name ASC
	`, r.tables.Tags, r.tables.NoteTags)
	return r.collect(ctx, query, noteID)
}

// Attach links a tag to a note
func (r *PostgresTagRepository) Attach(ctx context.Context, noteID, tagID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (note_id, tag_id) VALUES ($1, $2)
		ON CONFLICT (note_id, tag_id) DO NOTHING
	`, r.tables.NoteTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, noteID, tagID); err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("note %s or tag %s: %w", noteID, tagID, domain.ErrNotFound)
		}
		return fmt.Errorf("attach tag: %w", err)
	}

	return nil
}

// Detach unlinks a tag from a note
func (r *PostgresTagRepository) Detach(ctx context.Context, noteID, tagID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE note_id = $1 AND tag_id = $2`, r.tables.NoteTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, noteID, tagID)
	if err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s on note %s: %w", tagID, noteID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresTagRepository) collect(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Tag, error) {
		tag, err := scanTag(row)
		if err != nil {
			return models.Tag{}, err
		}
		return *tag, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}

	if tags == nil {
		tags = []models.Tag{}
	}

	return tags, nil
}

// conflict builds a ConflictError pointing at the tag that already owns name
func (r *PostgresTagRepository) conflict(ctx context.Context, name string) error {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		// Fallback to generic conflict error if we can't find the existing tag
		return fmt.Errorf("tag %q: %w", name, domain.ErrConflict)
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a tag named %q already exists", name),
		ResourceType: "tag",
		ResourceID:   existing.ID,
	}
}

func scanTag(row pgx.Row) (*models.Tag, error) {
	var tag models.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}
