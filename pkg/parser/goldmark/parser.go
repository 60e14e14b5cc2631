// Package goldmark reads a document outline with the goldmark CommonMark
// parser. It complements the line-oriented block parser where full
// CommonMark fidelity matters, such as picking a page title from the first
// heading.
package goldmark

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser wraps a configured goldmark instance.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "gfm".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Heading is one heading of a document.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-based
}

// Outline lists the headings of a document in order.
type Outline struct {
	Headings []Heading
}

// Title returns the text of the first level-one heading, or of the first
// heading of any level when there is none.
func (o *Outline) Title() (Heading, bool) {
	if o == nil || len(o.Headings) == 0 {
		return Heading{}, false
	}
	for _, h := range o.Headings {
		if h.Level == 1 {
			return h, true
		}
	}
	return o.Headings[0], true
}

// Outline parses content and collects its headings. Headings inside code
// blocks or HTML are not reported.
func (p *Parser) Outline(ctx context.Context, content []byte) (*Outline, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("outline cancelled: %w", err)
	}

	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	outline := &Outline{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		collectText(h, content, &b)
		outline.Headings = append(outline.Headings, Heading{
			Level: h.Level,
			Text:  strings.TrimSpace(b.String()),
			Line:  headingLine(h, content),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}

	return outline, nil
}

// collectText appends the literal text of inline descendants, dropping markup.
func collectText(n ast.Node, src []byte, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			collectText(c, src, b)
		}
	}
}

func headingLine(h *ast.Heading, src []byte) int {
	if h.Lines().Len() == 0 {
		return 0
	}
	start := h.Lines().At(0).Start
	return bytes.Count(src[:start], []byte("\n")) + 1
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}
