package parser

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	tableRowPattern   = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	tableDelimPattern = regexp.MustCompile(`^\s*\|(\s*:?-+:?\s*\|)+\s*$`)

	latexEscaper = strings.NewReplacer(
		`\`, `\textbackslash{}`,
		`{`, `\{`,
		`}`, `\}`,
		`&`, `\&`,
		`%`, `\%`,
		`$`, `\$`,
		`#`, `\#`,
		`_`, `\_`,
		`~`, `\textasciitilde{}`,
		`^`, `\textasciicircum{}`,
	)
)

func isTableLine(line string) bool {
	return tableRowPattern.MatchString(line) || tableDelimPattern.MatchString(line)
}

// TableExpression renders markdown table lines as a bordered array
// expression with one centered column per cell of the first row. When the
// second line is a delimiter row it is dropped and the first row's cells are
// set in bold.
func TableExpression(lines []string) string {
	rows := lines
	header := false
	if len(rows) > 1 && tableDelimPattern.MatchString(rows[1]) {
		header = true
		rows = append([]string{rows[0]}, rows[2:]...)
	}

	columns := 0
	rendered := make([]string, 0, len(rows))
	for i, row := range rows {
		cells := tableCells(row)
		if i == 0 {
			columns = len(cells)
		}
		for j, c := range cells {
			c = `\text{` + latexEscaper.Replace(c) + `}`
			if header && i == 0 {
				c = `\textbf{` + c + `}`
			}
			cells[j] = c
		}
		rendered = append(rendered, strings.Join(cells, " & ")+` \\ \hline`)
	}

	var b strings.Builder
	b.WriteString(`\begin{array}{|`)
	b.WriteString(strings.Repeat("c|", columns))
	b.WriteString(`} \hline `)
	b.WriteString(strings.Join(rendered, " "))
	b.WriteString(` \end{array}`)
	return b.String()
}

// tableCells returns the trimmed text between consecutive pipes.
func tableCells(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")

	cells := strings.Split(row, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
