package config

const (
	// MaxNoteTitleLength is the maximum length for note titles, in characters.
	MaxNoteTitleLength = 500

	// MaxNoteContentLength is the maximum length for note content, in characters.
	// Notes are markdown typed by a person; 100k characters is roughly a short book chapter.
	MaxNoteContentLength = 100_000

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 200

	// MaxTagNameLength is the maximum length for tag names.
	// Tags render as chips in the sidebar and must stay short.
	MaxTagNameLength = 50

	// MaxSummaryLength bounds the derived note summary, including the ellipsis.
	MaxSummaryLength = 200

	// MaxImportSize is the largest markdown document accepted by the import endpoint.
	MaxImportSize = 1 << 20
)
