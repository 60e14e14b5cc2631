package publish

import (
	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/parser"
)

// Conversion is the result of converting one markdown document.
type Conversion struct {
	// Tree is the parser output.
	Tree []*block.Block
	// Blocks is Tree flattened to the service limits.
	Blocks   []*block.Block
	Warnings []parser.Warning
}

// Converter parses markdown and flattens the result for publishing.
type Converter struct {
	Parser *parser.Parser
	Limits Limits
}

// NewConverter returns a Converter with default parser options and limits.
func NewConverter() *Converter {
	return &Converter{Parser: parser.New(parser.Options{}), Limits: DefaultLimits()}
}

// Convert parses src and flattens the resulting tree.
func (c *Converter) Convert(src string) (*Conversion, error) {
	res, err := c.Parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return &Conversion{
		Tree:     res.Blocks,
		Blocks:   Flatten(res.Blocks, c.Limits),
		Warnings: res.Warnings,
	}, nil
}
