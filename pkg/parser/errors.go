package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedNesting is returned in strict mode when a list item is indented
// deeper than the current level but there is no earlier item to nest under.
var ErrMalformedNesting = errors.New("malformed list nesting")

// NestingError describes a malformed nesting condition.
type NestingError struct {
	Line   int // 1-based
	Indent int
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("line %d: list item indented %d spaces has no parent item", e.Line, e.Indent)
}

func (e *NestingError) Unwrap() error {
	return ErrMalformedNesting
}

// Warning is a non-fatal condition noticed while parsing.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}
