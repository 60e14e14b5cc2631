package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomd2notion/internal/ui/pretty"
)

func TestFormatFileLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.md  \"A\"  1 block\n", styles.FormatFileLine("a.md", "A", 1, 0))
	assert.Equal(t, "b.md  \"B\"  3 blocks (2 warnings)\n", styles.FormatFileLine("b.md", "B", 3, 2))
}

func TestFormatRunSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats pretty.RunStats
		want  string
	}{
		{
			name:  "all converted",
			stats: pretty.RunStats{Files: 2, Converted: 2, Blocks: 7},
			want:  "Converted 2 of 2 documents into 7 blocks\n",
		},
		{
			name:  "failures and warnings",
			stats: pretty.RunStats{Files: 3, Converted: 1, Errored: 2, Blocks: 1, Warnings: 1},
			want:  "Converted 1 of 3 documents into 1 block, 2 failed (1 warning)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatRunSummary(tt.stats))
		})
	}
}
