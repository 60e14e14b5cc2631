package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "header row is bold",
			lines: []string{"| Name | Age |", "|------|-----|", "| Ann | 31 |"},
			want: `\begin{array}{|c|c|} \hline \textbf{\text{Name}} & \textbf{\text{Age}} \\ \hline ` +
				`\text{Ann} & \text{31} \\ \hline \end{array}`,
		},
		{
			name:  "no delimiter means no header",
			lines: []string{"| a | b | c |", "| 1 | 2 | 3 |"},
			want: `\begin{array}{|c|c|c|} \hline \text{a} & \text{b} & \text{c} \\ \hline ` +
				`\text{1} & \text{2} & \text{3} \\ \hline \end{array}`,
		},
		{
			name:  "alignment colons in delimiter",
			lines: []string{"| x |", "|:---:|", "| y |"},
			want:  `\begin{array}{|c|} \hline \textbf{\text{x}} \\ \hline \text{y} \\ \hline \end{array}`,
		},
		{
			name:  "special characters escaped",
			lines: []string{"| 50% & $5 | a_b |"},
			want:  `\begin{array}{|c|c|} \hline \text{50\% \& \$5} & \text{a\_b} \\ \hline \end{array}`,
		},
		{
			name:  "empty cell",
			lines: []string{"| a |  |"},
			want:  `\begin{array}{|c|c|} \hline \text{a} & \text{} \\ \hline \end{array}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TableExpression(tc.lines))
		})
	}
}

func TestTableCells(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, tableCells("  | a |b|  "))
	assert.Equal(t, []string{""}, tableCells("||"))
}

func TestIsTableLine(t *testing.T) {
	t.Parallel()

	assert.True(t, isTableLine("| a | b |"))
	assert.True(t, isTableLine("|---|---|"))
	assert.True(t, isTableLine("  | :-- | --: |  "))
	assert.False(t, isTableLine("a | b"))
	assert.False(t, isTableLine("| open"))
}

func TestLatexEscaper(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `\textbackslash{}n \{x\} \#1 \textasciitilde{} \textasciicircum{}`,
		latexEscaper.Replace(`\n {x} #1 ~ ^`))
}
