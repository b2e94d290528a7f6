package notebook

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestContentAnalyzer_PlainText(t *testing.T) {
	a := NewContentAnalyzer()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{name: "empty", markdown: "  \n", want: ""},
		{name: "inline markup", markdown: "Some **bold** and _soft_ `code`", want: "Some bold and soft code"},
		{name: "heading and list", markdown: "# Title\n\n- one\n- two", want: "Title\none\ntwo"},
		{name: "link keeps label", markdown: "see [the docs](https://example.com)", want: "see the docs"},
		{name: "fenced code kept", markdown: "```go\nfmt.Println(1)\n```", want: "fmt.Println(1)"},
		{name: "inline html stripped", markdown: "a <span class=\"x\">b</span> c", want: "a b c"},
		{name: "html block stripped", markdown: "<div>\n<script>alert(1)</script>kept &amp; text\n</div>", want: "kept & text"},
		{name: "table cells", markdown: "| a | b |\n|---|---|\n| 1 | 2 |", want: "a b\n1 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.PlainText(tt.markdown); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentAnalyzer_Summary(t *testing.T) {
	a := NewContentAnalyzer()

	if got := a.Summary(""); got != nil {
		t.Errorf("Summary(\"\") = %q, want nil", *got)
	}
	if got := a.Summary("# only markup\n\n---"); got == nil || *got != "only markup" {
		t.Errorf("Summary() = %v, want %q", got, "only markup")
	}

	long := strings.Repeat("word ", 100)
	got := a.Summary(long)
	if got == nil {
		t.Fatal("Summary() = nil for long content")
	}
	if n := utf8.RuneCountInString(*got); n > 200 {
		t.Errorf("summary has %d runes, want at most 200", n)
	}
	if !strings.HasSuffix(*got, "word...") {
		t.Errorf("summary %q should end on a whole word plus ellipsis", *got)
	}
}

func TestContentAnalyzer_CountWords(t *testing.T) {
	a := NewContentAnalyzer()
	if got := a.CountWords("# Hello\n\nthe **quick** fox"); got != 4 {
		t.Errorf("CountWords() = %d, want 4", got)
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "alpha beta gamma", max: 12, want: "alpha..."},
		{in: "unbrokenlongword", max: 8, want: "unbro..."},
		{in: "日本語のテキストです", max: 6, want: "日本語..."},
	}
	for _, tt := range tests {
		if got := truncateWords(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateWords(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
