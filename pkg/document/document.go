// Package document loads markdown source files. A file may open with a YAML
// front matter block carrying page metadata; the rest is the markdown body.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/yaklabco/gomd2notion/pkg/fsutil"
	"github.com/yaklabco/gomd2notion/pkg/parser/goldmark"
)

// ErrEmpty is returned for a document without any body content.
var ErrEmpty = errors.New("document has no content")

// FrontMatter is the metadata a document may declare about its page.
type FrontMatter struct {
	Title         string         `yaml:"title"`
	Cover         string         `yaml:"cover"`
	ParentID      string         `yaml:"parent_id"`
	ParentType    string         `yaml:"parent_type"`
	TitleProperty string         `yaml:"title_property"`
	Properties    map[string]any `yaml:"properties"`
}

// Document is a parsed markdown source.
type Document struct {
	Path string
	Meta FrontMatter
	Body []byte
}

// Load reads and parses the file at path.
func Load(ctx context.Context, path string) (*Document, error) {
	src, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(path, src)
}

// Parse splits src into front matter and body. Sources without front matter
// are all body. path is only recorded, never read.
func Parse(path string, src []byte) (*Document, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter in %s: %w", path, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	meta.Properties = stringKeys(meta.Properties)

	return &Document{Path: path, Meta: meta, Body: body}, nil
}

// Title picks the page title: the front matter title, then, when
// fromHeading is set, the document's first top-level heading, then the file
// name without its extension. A heading used as the title is removed from
// the returned body so it is not published twice.
func (d *Document) Title(ctx context.Context, fromHeading bool) (string, []byte, error) {
	if d.Meta.Title != "" {
		return d.Meta.Title, d.Body, nil
	}

	if fromHeading {
		outline, err := goldmark.New(goldmark.FlavorGFM).Outline(ctx, d.Body)
		if err != nil {
			return "", nil, err
		}
		if h, ok := outline.Title(); ok && h.Text != "" {
			return h.Text, dropLeadingHeading(d.Body, h), nil
		}
	}

	return baseName(d.Path), d.Body, nil
}

// dropLeadingHeading removes the heading when it is the first content of
// body. Setext underlines go with it.
func dropLeadingHeading(body []byte, h goldmark.Heading) []byte {
	lines := strings.SplitAfter(string(body), "\n")
	idx := h.Line - 1
	if idx < 0 || idx >= len(lines) {
		return body
	}
	for _, l := range lines[:idx] {
		if strings.TrimSpace(l) != "" {
			return body
		}
	}

	end := idx + 1
	if !strings.HasPrefix(strings.TrimSpace(lines[idx]), "#") && end < len(lines) {
		end++
	}
	return []byte(strings.Join(lines[end:], ""))
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// stringKeys converts nested YAML maps to map[string]any so properties
// encode as JSON objects.
func stringKeys(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case map[string]any:
		return stringKeys(t)
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}
