package notebook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// noteFrontmatter is the YAML header written on export and read on import
type noteFrontmatter struct {
	ID        string    `yaml:"id,omitempty"`
	Title     string    `yaml:"title,omitempty"`
	FolderID  *string   `yaml:"folderId,omitempty"`
	Tags      []string  `yaml:"tags,omitempty"`
	CreatedAt time.Time `yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `yaml:"updatedAt,omitempty"`
}

// splitFrontmatter separates an optional YAML header from the markdown body.
// A document without a leading "---" line has no frontmatter.
func splitFrontmatter(content []byte) (*noteFrontmatter, string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return &noteFrontmatter{}, string(content), nil
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	var fm noteFrontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	body := string(bytes.Join(lines[closing+1:], []byte("\n")))
	return &fm, body, nil
}

// takeHeading removes a leading "# Title" line from body and returns the title
func takeHeading(body string) (string, string) {
	trimmed := strings.TrimLeft(body, "\r\n")
	line, rest, _ := strings.Cut(trimmed, "\n")
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, "# ") {
		return "", body
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "# ")), strings.TrimLeft(rest, "\r\n")
}

// renderMarkdown writes frontmatter, a title heading and the content
func renderMarkdown(fm *noteFrontmatter, content string) ([]byte, error) {
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n# ")
	buf.WriteString(fm.Title)
	buf.WriteString("\n")
	if content != "" {
		buf.WriteString("\n")
		buf.WriteString(strings.TrimRight(content, "\n"))
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
