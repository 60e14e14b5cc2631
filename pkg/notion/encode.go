package notion

import (
	"encoding/json"

	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

// RichText is one rich-text object in wire form.
type RichText struct {
	Type        string                `json:"type" yaml:"type"`
	Text        *TextContent          `json:"text,omitempty" yaml:"text,omitempty"`
	Equation    *Equation             `json:"equation,omitempty" yaml:"equation,omitempty"`
	Annotations *richtext.Annotations `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// TextContent is the payload of a text rich-text object.
type TextContent struct {
	Content string `json:"content" yaml:"content"`
	Link    *Link  `json:"link,omitempty" yaml:"link,omitempty"`
}

// Link is a hyperlink target.
type Link struct {
	URL string `json:"url" yaml:"url"`
}

// Equation is the payload of an equation rich-text object or block.
type Equation struct {
	Expression string `json:"expression" yaml:"expression"`
}

// TextBody is the payload of headings, paragraphs, list items and quotes.
type TextBody struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Children []Block    `json:"children,omitempty" yaml:"children,omitempty"`
}

// CodeBody is the payload of a code block.
type CodeBody struct {
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
	Language string     `json:"language" yaml:"language"`
}

// ImageBody is the payload of an external image block.
type ImageBody struct {
	Type     string       `json:"type" yaml:"type"`
	External ExternalFile `json:"external" yaml:"external"`
	Caption  []RichText   `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// ExternalFile references a file by URL.
type ExternalFile struct {
	URL string `json:"url" yaml:"url"`
}

// Block is one block in wire form: {"object": "block", "type": T, T: body}.
type Block struct {
	Type string
	Body any
}

func (b Block) wire() map[string]any {
	return map[string]any{
		"object": "block",
		"type":   b.Type,
		b.Type:   b.Body,
	}
}

// MarshalJSON implements json.Marshaler.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (b Block) MarshalYAML() (any, error) {
	return b.wire(), nil
}

// EncodeBlocks converts blocks and their children into wire form.
func EncodeBlocks(blocks []*block.Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = EncodeBlock(b)
	}
	return out
}

// EncodeBlock converts one block into wire form.
func EncodeBlock(b *block.Block) Block {
	var body any
	switch b.Kind {
	case block.KindCode:
		body = CodeBody{RichText: EncodeSpans(b.Text), Language: b.Language}
	case block.KindEquation:
		body = Equation{Expression: b.Expression}
	case block.KindImage:
		body = ImageBody{Type: "external", External: ExternalFile{URL: b.URL}, Caption: EncodeSpans(b.Caption)}
	case block.KindDivider:
		body = struct{}{}
	default:
		body = TextBody{RichText: EncodeSpans(b.Text), Children: EncodeBlocks(b.Children)}
	}
	return Block{Type: b.TypeName(), Body: body}
}

// EncodeSpans converts spans into rich-text objects. The result is never
// nil so that an empty body encodes as [].
func EncodeSpans(spans []richtext.Span) []RichText {
	out := make([]RichText, 0, len(spans))
	for _, s := range spans {
		out = append(out, EncodeSpan(s))
	}
	return out
}

// EncodeSpan converts one span. Opaque spans are sent as plain text since
// the service only creates mentions from its own identifiers.
func EncodeSpan(s richtext.Span) RichText {
	switch s.Kind {
	case richtext.KindEquation:
		return RichText{Type: "equation", Equation: &Equation{Expression: s.Expression}}
	case richtext.KindOpaque:
		ann := richtext.DefaultAnnotations()
		return RichText{Type: "text", Text: &TextContent{Content: s.PlainText}, Annotations: &ann}
	default:
		ann := s.Annotations
		if ann.Color == "" {
			ann.Color = richtext.ColorDefault
		}
		rt := RichText{Type: "text", Text: &TextContent{Content: s.Content}, Annotations: &ann}
		if s.Link != "" {
			rt.Text.Link = &Link{URL: s.Link}
		}
		return rt
	}
}
