// Package richtext models annotated text runs and splits them into
// size-bounded chunks.
//
// A Span is one of three kinds: plain text carrying annotations and an
// optional link, an inline equation, or an opaque atomic reference. Equation
// and opaque spans are atomic: formatting passes never look inside them and
// the chunker only emits them whole.
package richtext

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a Span.
type Kind uint8

const (
	// KindText is a plain text run with annotations and an optional link.
	KindText Kind = iota
	// KindEquation is an inline typeset expression.
	KindEquation
	// KindOpaque is an atomic reference rendered by its plain text.
	KindOpaque
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEquation:
		return "equation"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Color is a text or background color name understood by the publishing service.
type Color string

// ColorDefault is the color every span starts with.
const ColorDefault Color = "default"

// Annotations holds the formatting flags of a text span.
type Annotations struct {
	Bold          bool  `json:"bold" yaml:"bold"`
	Italic        bool  `json:"italic" yaml:"italic"`
	Strikethrough bool  `json:"strikethrough" yaml:"strikethrough"`
	Underline     bool  `json:"underline" yaml:"underline"`
	Code          bool  `json:"code" yaml:"code"`
	Color         Color `json:"color" yaml:"color"`
}

// DefaultAnnotations returns annotations with every flag off and the default color.
func DefaultAnnotations() Annotations {
	return Annotations{Color: ColorDefault}
}

// IsDefault reports whether no formatting is applied.
func (a Annotations) IsDefault() bool {
	return !a.Bold && !a.Italic && !a.Strikethrough && !a.Underline && !a.Code &&
		(a.Color == "" || a.Color == ColorDefault)
}

// Span is one atomically styled run of text or one atomic embedded object.
//
// Only the fields relevant to Kind are meaningful: Content, Annotations and
// Link for KindText, Expression for KindEquation, PlainText for KindOpaque.
type Span struct {
	Kind        Kind
	Content     string
	Annotations Annotations
	Link        string
	Expression  string
	PlainText   string
}

// Text returns a plain text span with default annotations.
func Text(content string) Span {
	return Span{Kind: KindText, Content: content, Annotations: DefaultAnnotations()}
}

// Styled returns a text span with the given annotations.
func Styled(content string, annotations Annotations) Span {
	if annotations.Color == "" {
		annotations.Color = ColorDefault
	}
	return Span{Kind: KindText, Content: content, Annotations: annotations}
}

// Linked returns a default-annotated text span pointing at url.
func Linked(content, url string) Span {
	s := Text(content)
	s.Link = url
	return s
}

// Equation returns an inline equation span.
func Equation(expression string) Span {
	return Span{Kind: KindEquation, Expression: expression}
}

// Opaque returns an atomic span displayed as plainText.
func Opaque(plainText string) Span {
	return Span{Kind: KindOpaque, PlainText: plainText}
}

// IsAtomic reports whether the span must never be subdivided.
func (s Span) IsAtomic() bool {
	return s.Kind == KindEquation || s.Kind == KindOpaque
}

// Visible returns the displayable text of the span.
func (s Span) Visible() string {
	switch s.Kind {
	case KindEquation:
		return s.Expression
	case KindOpaque:
		return s.PlainText
	default:
		return s.Content
	}
}

// Len returns the visible length of the span in code points.
func (s Span) Len() int {
	return utf8.RuneCountInString(s.Visible())
}

// withContent returns a copy of a text span carrying different content.
// Annotations and link are preserved.
func (s Span) withContent(content string) Span {
	s.Content = content
	return s
}

// VisibleText concatenates the visible text of spans.
func VisibleText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Visible())
	}
	return b.String()
}

// VisibleLen returns the total visible length of spans in code points.
func VisibleLen(spans []Span) int {
	n := 0
	for _, s := range spans {
		n += s.Len()
	}
	return n
}

// Clone returns a copy of spans that shares no backing array with the input.
func Clone(spans []Span) []Span {
	if spans == nil {
		return nil
	}
	out := make([]Span, len(spans))
	copy(out, spans)
	return out
}
