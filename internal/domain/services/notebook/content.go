package notebook

// ContentAnalyzer derives plain-text views of markdown note content
type ContentAnalyzer interface {
	// PlainText strips markdown and inline HTML, leaving searchable text
	PlainText(markdown string) string

	// Summary returns a short plain-text excerpt, or nil for empty content
	Summary(markdown string) *string

	// CountWords counts words in the plain-text rendering
	CountWords(markdown string) int
}
