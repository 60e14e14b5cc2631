package richtext

import (
	"unicode"
	"unicode/utf8"
)

// Chunk is an ordered run of spans whose visible length respects a budget.
type Chunk []Span

// Len returns the visible length of the chunk.
func (c Chunk) Len() int {
	return VisibleLen(c)
}

// Split partitions spans into chunks of at most budget visible code points.
//
// Text spans that do not fit are broken at whitespace boundaries into
// "word plus trailing spaces" tokens and packed greedily; a token longer than
// the budget is hard-sliced and each slice becomes its own chunk. Atomic spans
// are never broken: one longer than the budget is emitted alone, over budget.
// Every fragment keeps the annotations and link of its source span, and the
// concatenated visible text of the result equals that of the input.
//
// A non-positive budget disables splitting.
func Split(spans []Span, budget int) []Chunk {
	if len(spans) == 0 {
		return nil
	}
	if budget <= 0 {
		return []Chunk{Chunk(Clone(spans))}
	}

	s := &splitter{budget: budget, lastFrom: -1}
	for i, span := range spans {
		s.index = i
		s.add(span)
	}
	s.flush()

	return s.chunks
}

// splitter accumulates the chunk currently being filled.
type splitter struct {
	budget int
	chunks []Chunk

	current Chunk
	size    int

	// index is the ordinal of the span being processed; lastFrom is the
	// ordinal that produced the final element of current.
	index    int
	lastFrom int
}

func (s *splitter) add(span Span) {
	n := span.Len()

	if span.IsAtomic() {
		if n > s.budget {
			s.flush()
			s.emit(Chunk{span})
			return
		}
		if s.size+n > s.budget {
			s.flush()
		}
		s.push(span, n)
		return
	}

	if n == 0 {
		return
	}
	if s.size+n <= s.budget {
		s.push(span, n)
		return
	}

	for _, token := range tokenize(span.Content) {
		s.addToken(span, token)
	}
}

func (s *splitter) addToken(src Span, token string) {
	n := utf8.RuneCountInString(token)
	if s.size+n <= s.budget {
		s.pushText(src, token, n)
		return
	}

	s.flush()
	if n <= s.budget {
		s.pushText(src, token, n)
		return
	}

	for _, piece := range sliceRunes(token, s.budget) {
		s.emit(Chunk{src.withContent(piece)})
	}
}

func (s *splitter) push(span Span, n int) {
	s.current = append(s.current, span)
	s.size += n
	s.lastFrom = s.index
}

// pushText appends a fragment of src, extending the previous fragment when it
// came from the same span so packed tokens do not multiply spans.
func (s *splitter) pushText(src Span, text string, n int) {
	if last := len(s.current) - 1; last >= 0 && s.lastFrom == s.index {
		s.current[last].Content += text
		s.size += n
		return
	}
	s.push(src.withContent(text), n)
}

func (s *splitter) flush() {
	if len(s.current) == 0 {
		return
	}
	s.chunks = append(s.chunks, s.current)
	s.current = nil
	s.size = 0
	s.lastFrom = -1
}

func (s *splitter) emit(c Chunk) {
	s.chunks = append(s.chunks, c)
}

// tokenize breaks text into maximal runs of non-space characters followed by
// their trailing whitespace. Leading whitespace belongs to the first token.
func tokenize(text string) []string {
	var tokens []string
	start := 0
	prevSpace := false
	seenWord := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if !space && prevSpace && seenWord {
			tokens = append(tokens, text[start:i])
			start = i
		}
		if !space {
			seenWord = true
		}
		prevSpace = space
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// sliceRunes cuts text into pieces of at most size code points.
func sliceRunes(text string, size int) []string {
	pieces := make([]string, 0, utf8.RuneCountInString(text)/size+1)
	count := 0
	start := 0
	for i := range text {
		if count == size {
			pieces = append(pieces, text[start:i])
			start = i
			count = 0
		}
		count++
	}
	if start < len(text) {
		pieces = append(pieces, text[start:])
	}
	return pieces
}
