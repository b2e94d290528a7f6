package notebook

import (
	"fmt"
	"time"
)

// Default search configuration values
const (
	DefaultSearchLimit    = 20
	MaxSearchLimit        = 50
	DefaultHighlightStart = "<mark>"
	DefaultHighlightStop  = "</mark>"
	DefaultSnippetWords   = 32
)

// SearchOptions configures a full-text search over the note index
type SearchOptions struct {
	// Query is the raw user query; it is sanitized before it reaches the index
	Query string

	// Limit is the number of hits to return (default: 20, max: 50)
	Limit int

	// HighlightStart and HighlightStop wrap matched terms in the snippet
	HighlightStart string
	HighlightStop  string

	// SnippetWords bounds the snippet length in words (default: 32)
	SnippetWords int
}

// ApplyDefaults fills in default values for unset fields
func (opts *SearchOptions) ApplyDefaults() {
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.HighlightStart == "" {
		opts.HighlightStart = DefaultHighlightStart
	}
	if opts.HighlightStop == "" {
		opts.HighlightStop = DefaultHighlightStop
	}
	if opts.SnippetWords <= 0 {
		opts.SnippetWords = DefaultSnippetWords
	}
}

// Validate checks that values are reasonable
func (opts *SearchOptions) Validate() error {
	if opts.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if opts.Limit > MaxSearchLimit {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", MaxSearchLimit, opts.Limit)
	}
	if opts.SnippetWords > 100 {
		return fmt.Errorf("snippet cannot exceed 100 words (requested: %d)", opts.SnippetWords)
	}
	return nil
}

// SearchHit is a single ranked search result
type SearchHit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FolderID  *string   `json:"folderId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Summary   *string   `json:"summary"`
	Snippet   string    `json:"snippet"`
	Rank      float64   `json:"-"`
}

// SearchIndexEntry is the derived, denormalized row mirrored from a note.
type SearchIndexEntry struct {
	ID              string
	Title           string
	Content         string // sanitized plain text
	Summary         *string
	SourceUpdatedAt time.Time // note.updated_at at index time
}

// ReconcileReport describes one index repair pass
type ReconcileReport struct {
	OrphansRemoved int64 `json:"orphansRemoved"`
	Reindexed      int   `json:"reindexed"`
	Failed         int   `json:"failed"`
}
