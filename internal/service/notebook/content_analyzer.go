package notebook

import (
	"bytes"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"nicenote/internal/config"
	svc "nicenote/internal/domain/services/notebook"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type contentAnalyzerService struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewContentAnalyzer creates a content analyzer backed by goldmark.
// Raw HTML inside markdown is reduced to its text with a strict bluemonday policy.
func NewContentAnalyzer() svc.ContentAnalyzer {
	return &contentAnalyzerService{
		md:     goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough)),
		policy: bluemonday.StrictPolicy(),
	}
}

// PlainText renders markdown to searchable text, one line per block
func (s *contentAnalyzerService) PlainText(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	src := []byte(markdown)
	doc := s.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			switch {
			case n.Kind() == east.KindTableCell:
				buf.WriteByte(' ')
			case n.Type() == ast.TypeBlock:
				buf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(src))
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			writeLines(&buf, n, src)
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			var raw bytes.Buffer
			writeLines(&raw, n, src)
			if node.HasClosure() {
				raw.Write(node.ClosureLine.Value(src))
			}
			buf.WriteString(s.stripHTML(raw.String()))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			var raw bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(src))
			}
			buf.WriteString(s.stripHTML(raw.String()))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return tidyLines(buf.String())
}

// Summary returns the first words of the plain text, or nil when there is no text
func (s *contentAnalyzerService) Summary(markdown string) *string {
	plain := strings.Join(strings.Fields(s.PlainText(markdown)), " ")
	if plain == "" {
		return nil
	}
	summary := truncateWords(plain, config.MaxSummaryLength)
	return &summary
}

// CountWords counts whitespace-separated words in the plain text
func (s *contentAnalyzerService) CountWords(markdown string) int {
	return len(strings.FieldsFunc(s.PlainText(markdown), unicode.IsSpace))
}

func (s *contentAnalyzerService) stripHTML(raw string) string {
	return html.UnescapeString(s.policy.Sanitize(raw))
}

func writeLines(buf *bytes.Buffer, n ast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
}

// tidyLines trims every line and drops empty ones
func tidyLines(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// truncateWords cuts s to at most max runes including a "..." suffix,
// backing off to the last word boundary when one exists.
func truncateWords(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	const ellipsis = "..."
	runes := []rune(s)
	cut := string(runes[:max-len(ellipsis)])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ") + ellipsis
}
