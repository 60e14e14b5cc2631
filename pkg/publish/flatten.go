package publish

import (
	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

// Service limits.
const (
	// DefaultTextLimit is the maximum visible length of one rich-text body.
	DefaultTextLimit = 2000
	// DefaultMaxSpans is the maximum number of spans in one rich-text body.
	DefaultMaxSpans = 100
	// MaxBatchSize is the maximum number of blocks in one append call.
	MaxBatchSize = 100
)

// Limits bounds the rich-text body of a single block.
type Limits struct {
	TextLimit int
	MaxSpans  int
}

// DefaultLimits returns the service's documented limits.
func DefaultLimits() Limits {
	return Limits{TextLimit: DefaultTextLimit, MaxSpans: DefaultMaxSpans}
}

// Flatten returns a copy of blocks in which every block whose text exceeds
// the limits is replaced, in place, by sibling blocks of the same kind, one
// per chunk. A split list item's children move to its last piece. Children
// are flattened recursively. The input tree is not modified.
func Flatten(blocks []*block.Block, limits Limits) []*block.Block {
	if blocks == nil {
		return nil
	}

	out := make([]*block.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, flattenOne(b, limits)...)
	}
	return out
}

func flattenOne(b *block.Block, limits Limits) []*block.Block {
	children := Flatten(b.Children, limits)

	pieces := textPieces(b, limits)
	if len(pieces) <= 1 {
		c := *b
		c.Children = children
		return []*block.Block{&c}
	}

	out := make([]*block.Block, len(pieces))
	for i, text := range pieces {
		out[i] = b.WithText(text)
	}
	out[len(out)-1].Children = children
	return out
}

// textPieces splits a block's text by length and then by span count.
func textPieces(b *block.Block, limits Limits) [][]richtext.Span {
	if !b.HasText() || len(b.Text) == 0 {
		return nil
	}

	var pieces [][]richtext.Span
	for _, chunk := range richtext.Split(b.Text, limits.TextLimit) {
		pieces = append(pieces, bySpanCount(chunk, limits.MaxSpans)...)
	}
	return pieces
}

func bySpanCount(spans []richtext.Span, n int) [][]richtext.Span {
	if n <= 0 || len(spans) <= n {
		return [][]richtext.Span{spans}
	}

	out := make([][]richtext.Span, 0, (len(spans)+n-1)/n)
	for start := 0; start < len(spans); start += n {
		end := min(start+n, len(spans))
		out = append(out, spans[start:end:end])
	}
	return out
}

// Partition groups blocks into consecutive batches of at most size blocks,
// preserving order. A size outside 1..MaxBatchSize uses MaxBatchSize.
func Partition(blocks []*block.Block, size int) [][]*block.Block {
	size = batchSize(size)
	if len(blocks) == 0 {
		return nil
	}

	batches := make([][]*block.Block, 0, (len(blocks)+size-1)/size)
	for start := 0; start < len(blocks); start += size {
		end := min(start+size, len(blocks))
		batches = append(batches, blocks[start:end:end])
	}
	return batches
}

func batchSize(size int) int {
	if size <= 0 || size > MaxBatchSize {
		return MaxBatchSize
	}
	return size
}

// oversized reports whether blocks, or the children of any block below
// them, hold more than size blocks.
func oversized(blocks []*block.Block, size int) bool {
	if len(blocks) > size {
		return true
	}
	for _, b := range blocks {
		if oversized(b.Children, size) {
			return true
		}
	}
	return false
}

// detachOversized returns batch with the children removed from every block
// whose subtree holds a child list longer than size, and the indexes of
// those blocks. The input blocks are not modified.
func detachOversized(batch []*block.Block, size int) ([]*block.Block, []int) {
	var deferred []int
	send := batch
	for i, b := range batch {
		if !oversized(b.Children, size) {
			continue
		}
		if deferred == nil {
			send = append([]*block.Block(nil), batch...)
		}
		c := *b
		c.Children = nil
		send[i] = &c
		deferred = append(deferred, i)
	}
	return send, deferred
}
