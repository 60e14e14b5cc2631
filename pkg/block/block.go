// Package block defines the structured document blocks produced by the
// markdown parser and consumed by the publisher.
//
// Blocks form a strict forest: list items exclusively own their Children and
// nothing points back up the tree.
package block

import (
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

// Kind identifies the block variant.
type Kind string

// Block kinds. Values match the publishing service's type names, except
// headings, which are stored as KindHeading with a Level.
const (
	KindHeading      Kind = "heading"
	KindParagraph    Kind = "paragraph"
	KindBulletItem   Kind = "bulleted_list_item"
	KindNumberedItem Kind = "numbered_list_item"
	KindQuote        Kind = "quote"
	KindCode         Kind = "code"
	KindEquation     Kind = "equation"
	KindImage        Kind = "image"
	KindDivider      Kind = "divider"
)

// PlainTextLanguage is the code language used when none is known.
const PlainTextLanguage = "plain text"

// Block is one structural unit of the output document.
//
// Field use by kind:
//   - Heading: Level (1-3), Text
//   - Paragraph, Quote: Text
//   - BulletItem, NumberedItem: Text, Children
//   - Code: Language, Text
//   - Equation: Expression
//   - Image: URL, Caption
//   - Divider: none
type Block struct {
	Kind       Kind
	Level      int
	Text       []richtext.Span
	Children   []*Block
	Language   string
	Expression string
	URL        string
	Caption    []richtext.Span
}

// NewHeading returns a heading block. Levels outside 1-3 are clamped.
func NewHeading(level int, text []richtext.Span) *Block {
	level = max(1, min(level, 3))
	return &Block{Kind: KindHeading, Level: level, Text: text}
}

// NewParagraph returns a paragraph block.
func NewParagraph(text []richtext.Span) *Block {
	return &Block{Kind: KindParagraph, Text: text}
}

// NewBulletItem returns an unordered list item with no children.
func NewBulletItem(text []richtext.Span) *Block {
	return &Block{Kind: KindBulletItem, Text: text}
}

// NewNumberedItem returns an ordered list item with no children.
func NewNumberedItem(text []richtext.Span) *Block {
	return &Block{Kind: KindNumberedItem, Text: text}
}

// NewQuote returns a quote block.
func NewQuote(text []richtext.Span) *Block {
	return &Block{Kind: KindQuote, Text: text}
}

// NewCode returns a code block. An empty language becomes PlainTextLanguage.
func NewCode(language string, text []richtext.Span) *Block {
	if language == "" {
		language = PlainTextLanguage
	}
	return &Block{Kind: KindCode, Language: language, Text: text}
}

// NewEquation returns a display equation block.
func NewEquation(expression string) *Block {
	return &Block{Kind: KindEquation, Expression: expression}
}

// NewImage returns an external image block with an optional caption.
func NewImage(url string, caption []richtext.Span) *Block {
	return &Block{Kind: KindImage, URL: url, Caption: caption}
}

// NewDivider returns a horizontal rule block.
func NewDivider() *Block {
	return &Block{Kind: KindDivider}
}

// IsListItem reports whether the block is a bulleted or numbered item.
func (b *Block) IsListItem() bool {
	return b.Kind == KindBulletItem || b.Kind == KindNumberedItem
}

// HasText reports whether the block carries a rich-text body that may need splitting.
func (b *Block) HasText() bool {
	switch b.Kind {
	case KindHeading, KindParagraph, KindBulletItem, KindNumberedItem, KindQuote, KindCode:
		return true
	default:
		return false
	}
}

// TypeName returns the publishing service's type name for the block,
// e.g. "heading_2" for a level-two heading.
func (b *Block) TypeName() string {
	if b.Kind == KindHeading {
		return "heading_" + string(rune('0'+b.Level))
	}
	return string(b.Kind)
}

// VisibleLen returns the visible length of the block's text body.
func (b *Block) VisibleLen() int {
	return richtext.VisibleLen(b.Text)
}

// WithText returns a shallow copy of b carrying text and no children.
func (b *Block) WithText(text []richtext.Span) *Block {
	c := *b
	c.Text = text
	c.Children = nil
	return &c
}

// AppendChild adds child to a list item's children.
func (b *Block) AppendChild(child *Block) {
	b.Children = append(b.Children, child)
}

// Count returns the number of blocks in the forest, including nested children.
func Count(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		n += 1 + Count(b.Children)
	}
	return n
}

// Walk visits every block depth-first in document order. Returning false from
// fn stops the walk.
func Walk(blocks []*Block, fn func(b *Block, depth int) bool) {
	walk(blocks, 0, fn)
}

func walk(blocks []*Block, depth int, fn func(b *Block, depth int) bool) bool {
	for _, b := range blocks {
		if !fn(b, depth) {
			return false
		}
		if !walk(b.Children, depth+1, fn) {
			return false
		}
	}
	return true
}
