// Package seed loads sample notes into an empty development database.
package seed

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	svc "nicenote/internal/domain/services/notebook"
)

//go:embed notes/*.md
var sampleNotes embed.FS

// SampleFolder is the folder sample notes are imported into
const SampleFolder = "Samples"

// Seeder imports the embedded sample notes
type Seeder struct {
	notes   svc.NoteService
	folders svc.FolderService
	tags    svc.TagService
	logger  *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(notes svc.NoteService, folders svc.FolderService, tags svc.TagService, logger *slog.Logger) *Seeder {
	return &Seeder{
		notes:   notes,
		folders: folders,
		tags:    tags,
		logger:  logger,
	}
}

// Tags created before import so frontmatter tags attach
var sampleTags = []svc.CreateTagRequest{
	{Name: "getting-started", Color: ptr("#4f46e5")},
	{Name: "reference", Color: ptr("#059669")},
}

// Seed creates the sample folder and tags, then imports every sample note into it.
// Existing tags are reused. It returns the number of notes imported.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	folder, err := s.folders.CreateFolder(ctx, &svc.CreateFolderRequest{Name: SampleFolder})
	if err != nil {
		return 0, fmt.Errorf("create sample folder: %w", err)
	}

	for i := range sampleTags {
		if _, err := s.tags.CreateTag(ctx, &sampleTags[i]); err != nil {
			s.logger.Debug("sample tag not created", "name", sampleTags[i].Name, "error", err)
		}
	}

	files, err := fs.Glob(sampleNotes, "notes/*.md")
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, name := range files {
		doc, err := sampleNotes.ReadFile(name)
		if err != nil {
			return imported, err
		}
		note, err := s.notes.ImportNote(ctx, &svc.ImportNoteRequest{
			Markdown: doc,
			Filename: path.Base(name),
			FolderID: &folder.ID,
		})
		if err != nil {
			return imported, fmt.Errorf("import %s: %w", name, err)
		}
		imported++
		s.logger.Info("sample note imported", "id", note.ID, "title", note.Title)
	}

	return imported, nil
}

func ptr(s string) *string { return &s }
