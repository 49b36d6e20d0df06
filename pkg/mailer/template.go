package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelimiter = []byte("---")

// Template is a template file split into front matter metadata and body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits content into YAML front matter and body.
// Content that does not start with "---" has no front matter.
func ParseTemplate(content []byte) (*Template, error) {
	rest, ok := bytes.CutPrefix(content, frontmatterDelimiter)
	if !ok {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest = bytes.TrimLeft(rest, "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	header, body, found := bytes.Cut(rest, frontmatterDelimiter)
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	// Drop the line break that ends the closing delimiter.
	if b, ok := bytes.CutPrefix(body, []byte("\r\n")); ok {
		body = b
	} else {
		body = bytes.TrimPrefix(body, []byte("\n"))
	}

	metadata := map[string]any{}
	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: metadata, Body: string(body)}, nil
}

// stringMeta returns a string metadata field, or "" when missing or not a string.
func (t *Template) stringMeta(key string) string {
	s, _ := t.Metadata[key].(string)
	return s
}
