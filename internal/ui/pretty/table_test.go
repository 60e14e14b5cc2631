package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomd2notion/internal/ui/pretty"
	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

func sampleForest() []*block.Block {
	item := block.NewBulletItem([]richtext.Span{richtext.Text("abc")})
	item.AppendChild(block.NewBulletItem([]richtext.Span{richtext.Text("de")}))

	return []*block.Block{
		block.NewHeading(1, []richtext.Span{richtext.Text("Title")}),
		block.NewParagraph([]richtext.Span{richtext.Text("hello")}),
		item,
		block.NewDivider(),
		block.NewParagraph([]richtext.Span{richtext.Text("x")}),
	}
}

func TestCountBlocks(t *testing.T) {
	rows := pretty.CountBlocks(sampleForest())

	assert.Equal(t, []pretty.TableRow{
		{Type: "heading_1", Count: 1, Chars: 5},
		{Type: "paragraph", Count: 2, Chars: 6},
		{Type: "bulleted_list_item", Count: 2, Chars: 5, MaxDepth: 1},
		{Type: "divider", Count: 1},
	}, rows)

	pretty.SortRows(rows)
	assert.Equal(t, "bulleted_list_item", rows[0].Type)
	assert.Equal(t, "paragraph", rows[1].Type)
}

func TestFormatTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false))

	assert.Empty(t, formatter.FormatTable(nil))

	out := formatter.FormatTable(pretty.CountBlocks(sampleForest()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Contains(t, lines[0], "TYPE")
	assert.Contains(t, lines[0], "DEPTH")
	assert.True(t, strings.HasPrefix(lines[1], "===="))
	assert.Contains(t, lines[2], "heading_1")
	assert.True(t, strings.HasPrefix(lines[6], "----"))
	assert.Regexp(t, `total\s+6\s+16$`, lines[7])
}
