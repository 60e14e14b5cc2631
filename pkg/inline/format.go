// Package inline resolves inline markdown markers on a single line into
// annotated rich-text spans.
//
// Formatting runs as an ordered cascade of passes. Each pass scans only the
// fragments that no earlier pass has claimed, so spans produced early are
// never re-read by later, looser patterns:
//
//  1. bold-italic (__*x*__, **_x_**, ***x***, ___x___)
//  2. inline math ($x$)
//  3. bold (**x**, __x__)
//  4. italic (*x*, _x_)
//  5. strikethrough (~~x~~, ~x~)
//  6. inline code (`x`)
//  7. links ([text](url))
//
// Unterminated markers stay in the output as literal text. Links come last,
// so emphasis markers inside a URL are consumed first: [l](http://x_y_z.com)
// yields the text "[l](http://x", an italic "y" and "z.com)", not a link.
package inline

import (
	"regexp"

	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

// fragment is one element of the working sequence. Unresolved fragments are
// plain text still open to later passes.
type fragment struct {
	span     richtext.Span
	resolved bool
}

// pass is a single formatting rule.
type pass struct {
	name    string
	pattern *regexp.Regexp
	build   func(groups []string) richtext.Span
}

//nolint:gochecknoglobals // Read-only pass table.
var passes = []pass{
	{
		name:    "bold-italic",
		pattern: regexp.MustCompile(`__\*(.+?)\*__|\*\*_(.+?)_\*\*|\*\*\*(.+?)\*\*\*|___(.+?)___`),
		build: func(g []string) richtext.Span {
			return richtext.Styled(firstGroup(g), richtext.Annotations{Bold: true, Italic: true})
		},
	},
	{
		name:    "math",
		pattern: regexp.MustCompile(`\$(.+?)\$`),
		build: func(g []string) richtext.Span {
			return richtext.Equation(firstGroup(g))
		},
	},
	{
		name:    "bold",
		pattern: regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`),
		build: func(g []string) richtext.Span {
			return richtext.Styled(firstGroup(g), richtext.Annotations{Bold: true})
		},
	},
	{
		name:    "italic",
		pattern: regexp.MustCompile(`\*(.+?)\*|_(.+?)_`),
		build: func(g []string) richtext.Span {
			return richtext.Styled(firstGroup(g), richtext.Annotations{Italic: true})
		},
	},
	{
		name:    "strikethrough",
		pattern: regexp.MustCompile(`~~(.+?)~~|~(.+?)~`),
		build: func(g []string) richtext.Span {
			return richtext.Styled(firstGroup(g), richtext.Annotations{Strikethrough: true})
		},
	},
	{
		name:    "code",
		pattern: regexp.MustCompile("`(.+?)`"),
		build: func(g []string) richtext.Span {
			return richtext.Styled(firstGroup(g), richtext.Annotations{Code: true})
		},
	},
	{
		name:    "link",
		pattern: regexp.MustCompile(`\[([^\]]+?)\]\(([^)\s]+?)\)`),
		build: func(g []string) richtext.Span {
			return richtext.Linked(g[1], g[2])
		},
	},
}

// Format converts one line of markdown into spans. The concatenated visible
// text of the result is the line with recognized markers removed. Spans with
// empty visible text are dropped; a line without markers yields a single
// default-annotated text span.
func Format(line string) []richtext.Span {
	frags := []fragment{{span: richtext.Text(line)}}
	for _, p := range passes {
		frags = p.apply(frags)
	}

	spans := make([]richtext.Span, 0, len(frags))
	for _, f := range frags {
		if f.span.Visible() == "" {
			continue
		}
		spans = append(spans, f.span)
	}
	return spans
}

// Plain returns a single unformatted span, or nil for empty text. Used for
// content that must not be interpreted, such as code.
func Plain(text string) []richtext.Span {
	if text == "" {
		return nil
	}
	return []richtext.Span{richtext.Text(text)}
}

// apply runs the pass over every unresolved fragment and returns a new
// sequence. Matches are non-overlapping and non-greedy.
func (p pass) apply(frags []fragment) []fragment {
	out := make([]fragment, 0, len(frags))
	for _, f := range frags {
		if f.resolved {
			out = append(out, f)
			continue
		}

		text := f.span.Content
		matches := p.pattern.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			out = append(out, f)
			continue
		}

		prev := 0
		for _, loc := range matches {
			if loc[0] > prev {
				out = append(out, fragment{span: richtext.Text(text[prev:loc[0]])})
			}
			out = append(out, fragment{span: p.build(groups(text, loc)), resolved: true})
			prev = loc[1]
		}
		if prev < len(text) {
			out = append(out, fragment{span: richtext.Text(text[prev:])})
		}
	}
	return out
}

// groups converts a submatch index slice into strings; unmatched groups are empty.
func groups(text string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			out[i] = text[start:end]
		}
	}
	return out
}

// firstGroup returns the first non-empty capture group of an alternation.
func firstGroup(g []string) string {
	for _, s := range g[1:] {
		if s != "" {
			return s
		}
	}
	return ""
}
