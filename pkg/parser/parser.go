// Package parser converts markdown text into a forest of blocks.
//
// Parsing is line oriented. Fenced code and display math are first lifted
// out of the document and replaced by placeholder lines, then every line is
// classified by a fixed rule order (first match wins):
//
//  1. table row or delimiter (accumulated until the table ends)
//  2. ordered or unordered list item, nested by indentation
//  3. indented code (four spaces, accumulated until a non-code line)
//  4. heading (#, ##, ###)
//  5. horizontal rule
//  6. blockquote
//  7. fenced code placeholder
//  8. display math placeholder
//  9. image
//  10. paragraph
//
// Blank lines are skipped. Parsing never fails on malformed markup; the only
// error is a malformed nesting condition in strict mode.
package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/inline"
)

const tabWidth = 4

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	numberedPattern = regexp.MustCompile(`^( *)\d+\.\s+(.*)$`)
	bulletPattern   = regexp.MustCompile(`^( *)[-*+]\s+(.*)$`)
	headingPattern  = regexp.MustCompile(`^(#{1,3}) (.*)$`)
	dividerPattern  = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})\s*$`)
	quotePattern    = regexp.MustCompile(`^> ?(.*)$`)
	imagePattern    = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)\)\s*$`)
)

// LanguageFunc resolves the language of a fenced code block from its fence
// label and content.
type LanguageFunc func(fence, content string) string

// Options configures a Parser.
type Options struct {
	// StrictNesting makes a list item with no possible parent an error
	// instead of a warning.
	StrictNesting bool

	// Language resolves fenced code languages. When nil the fence label is
	// used as written.
	Language LanguageFunc
}

// Result is the output of Parse.
type Result struct {
	Blocks   []*block.Block
	Warnings []Warning
}

// Parser converts markdown into blocks. A Parser holds no per-document state
// and is safe for concurrent use.
type Parser struct {
	opts Options
}

// New returns a Parser with the given options.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse converts src into blocks.
func Parse(src string) []*block.Block {
	res, _ := New(Options{}).Parse(src)
	return res.Blocks
}

// Parse converts src into a block forest. In strict mode a malformed nesting
// condition returns a *NestingError; otherwise it is reported as a warning.
func (p *Parser) Parse(src string) (*Result, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	text, ex := extract(src)

	st := &state{opts: p.opts, ex: ex, res: &Result{}}
	st.stack = newNestingStack(&st.res.Blocks)

	for i, raw := range strings.Split(text, "\n") {
		if err := st.line(i+1, expandIndent(raw)); err != nil {
			return nil, err
		}
	}
	st.flushTable()
	st.flushCode()

	return st.res, nil
}

// state is the scanner state for one document.
type state struct {
	opts  Options
	ex    *extraction
	res   *Result
	stack *nestingStack

	table []string
	code  []string
}

func (s *state) line(n int, line string) error {
	if len(s.table) > 0 && !isTableLine(line) {
		s.flushTable()
	}
	if isTableLine(line) {
		s.flushCode()
		s.table = append(s.table, line)
		return nil
	}

	// Spaced dividers such as "* * *" would otherwise read as list items.
	if isDivider(line) {
		s.flushCode()
		s.emit(block.NewDivider())
		return nil
	}

	if item, indent, ok := listItem(line); ok {
		s.flushCode()
		return s.placeItem(n, item, indent)
	}

	if strings.HasPrefix(line, "    ") && strings.TrimSpace(line) != "" {
		s.code = append(s.code, line[4:])
		return nil
	}
	s.flushCode()

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if b := s.classify(trimmed); b != nil {
		s.emit(b)
	}
	return nil
}

// classify handles every single-line block form after lists and code.
func (s *state) classify(line string) *block.Block {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return block.NewHeading(len(m[1]), inline.Format(m[2]))
	}
	if m := quotePattern.FindStringSubmatch(line); m != nil {
		return block.NewQuote(inline.Format(m[1]))
	}
	if kind, index, ok := lookupToken(line); ok {
		if b := s.resolveToken(kind, index); b != nil {
			return b
		}
	}
	if m := imagePattern.FindStringSubmatch(line); m != nil {
		return block.NewImage(m[2], inline.Plain(m[1]))
	}
	return block.NewParagraph(inline.Format(line))
}

func (s *state) resolveToken(kind string, index int) *block.Block {
	switch kind {
	case tokenCode:
		if index < len(s.ex.code) {
			fc := s.ex.code[index]
			return block.NewCode(s.language(fc.language, fc.content), inline.Plain(fc.content))
		}
	case tokenMath:
		if index < len(s.ex.math) {
			return block.NewEquation(s.ex.math[index])
		}
	}
	return nil
}

func (s *state) language(fence, content string) string {
	if s.opts.Language != nil {
		return s.opts.Language(fence, content)
	}
	return fence
}

func (s *state) placeItem(n int, item *block.Block, indent int) error {
	if s.stack.place(item, indent) {
		return nil
	}
	if s.opts.StrictNesting {
		return &NestingError{Line: n, Indent: indent}
	}
	s.res.Warnings = append(s.res.Warnings, Warning{
		Line:    n,
		Message: "list item is indented but has no parent item; kept at the enclosing level",
	})
	return nil
}

// emit appends a non-list block at the root and closes any open list.
func (s *state) emit(b *block.Block) {
	s.stack.reset()
	s.res.Blocks = append(s.res.Blocks, b)
}

func (s *state) flushTable() {
	if len(s.table) == 0 {
		return
	}
	s.emit(block.NewEquation(TableExpression(s.table)))
	s.table = nil
}

func (s *state) flushCode() {
	if len(s.code) == 0 {
		return
	}
	s.emit(block.NewCode(block.PlainTextLanguage, inline.Plain(strings.Join(s.code, "\n"))))
	s.code = nil
}

// isDivider reports whether line is a thematic break: three or more of the
// same marker, optionally separated by spaces, indented less than a code line.
func isDivider(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) >= tabWidth {
		return false
	}
	return dividerPattern.MatchString(strings.ReplaceAll(trimmed, " ", ""))
}

// listItem recognizes a list line and returns the new item and its indent.
func listItem(line string) (*block.Block, int, bool) {
	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		return block.NewNumberedItem(inline.Format(m[2])), len(m[1]), true
	}
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return block.NewBulletItem(inline.Format(m[2])), len(m[1]), true
	}
	return nil, 0, false
}

// expandIndent replaces tabs in the leading whitespace of a line with spaces.
func expandIndent(line string) string {
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	if !strings.Contains(line[:end], "\t") {
		return line
	}

	var b strings.Builder
	col := 0
	for _, c := range line[:end] {
		if c == '\t' {
			pad := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteByte(' ')
		col++
	}
	b.WriteString(line[end:])
	return b.String()
}
