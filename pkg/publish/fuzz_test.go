package publish_test

import (
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/publish"
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

// FuzzConvert checks that any input converts without panicking and that
// the flattened blocks respect the limits.
func FuzzConvert(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading\n\nParagraph with *emphasis* and **strong**.\n\n- item 1\n  - nested\n- item 2\n",
		"1. one\n   1. two\n      - three\n",
		"  - orphan\n",
		"> quote with `code` and $x^2$\n",
		"```go\nfunc main() {}\n```\n",
		"```\nunterminated",
		"$$\n\\int_0^1 x\\,dx\n$$\n",
		"| a | b |\n|---|---|\n| 1 | 2 |\n",
		"![alt](https://example.com/i.png)\n",
		"[link](https://example.com) ~~gone~~ ~also~\n",
		"---\n***\n___\n",
		"\t- tabbed\n",
		"line1\r\nline2",
		"****\n**\n*\n",
	}
	for _, seed := range seeds {
		f.Add(seed, 16)
	}

	f.Fuzz(func(t *testing.T, src string, limit int) {
		if !utf8.ValidString(src) {
			t.Skip("not UTF-8")
		}
		if limit < 1 || limit > 4096 {
			limit = 16
		}
		conv := publish.NewConverter()
		conv.Limits = publish.Limits{TextLimit: limit, MaxSpans: 4}

		res, err := conv.Convert(src)
		if err != nil {
			t.Fatalf("lenient conversion failed: %v", err)
		}

		if got, want := visibleText(res.Blocks), visibleText(res.Tree); got != want {
			t.Errorf("flattening changed the text: %q != %q", got, want)
		}

		block.Walk(res.Blocks, func(b *block.Block, _ int) bool {
			if len(b.Text) > 4 {
				t.Errorf("%s block has %d spans", b.TypeName(), len(b.Text))
			}
			if b.VisibleLen() > limit && !(len(b.Text) == 1 && b.Text[0].IsAtomic()) {
				t.Errorf("%s block has %d visible characters, limit %d", b.TypeName(), b.VisibleLen(), limit)
			}
			return true
		})

		total := 0
		for _, batch := range publish.Partition(res.Blocks, 3) {
			if len(batch) == 0 || len(batch) > 3 {
				t.Errorf("batch of %d blocks", len(batch))
			}
			total += len(batch)
		}
		if total != len(res.Blocks) {
			t.Errorf("partition lost blocks: %d != %d", total, len(res.Blocks))
		}
	})
}

func visibleText(forest []*block.Block) string {
	var text string
	block.Walk(forest, func(b *block.Block, _ int) bool {
		text += richtext.VisibleText(b.Text)
		return true
	})
	return text
}
