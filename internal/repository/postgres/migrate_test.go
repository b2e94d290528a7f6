package postgres

import (
	"io"
	"io/fs"
	"strings"
	"testing"
)

func TestTemplatedFS_RendersPrefix(t *testing.T) {
	fsys := &templatedFS{
		base: migrationFiles,
		data: struct{ Prefix string }{Prefix: "test_"},
	}

	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected embedded migrations")
	}

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			f, err := fsys.Open("migrations/" + entry.Name())
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer f.Close()

			body, err := io.ReadAll(f)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			sql := string(body)

			if strings.Contains(sql, "{{") {
				t.Errorf("unrendered template in %s", entry.Name())
			}
			if !strings.Contains(sql, "test_") {
				t.Errorf("%s does not reference prefixed tables", entry.Name())
			}

			info, err := f.Stat()
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if info.Size() != int64(len(body)) {
				t.Errorf("Size() = %d, want %d", info.Size(), len(body))
			}
		})
	}
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("dev_")

	want := map[string]string{
		tables.Folders:          "dev_folders",
		tables.Notes:            "dev_notes",
		tables.Tags:             "dev_tags",
		tables.NoteTags:         "dev_note_tags",
		tables.NotesSearch:      "dev_notes_search",
		tables.SchemaMigrations: "dev_schema_migrations",
	}
	for got, expected := range want {
		if got != expected {
			t.Errorf("table name = %q, want %q", got, expected)
		}
	}
}
