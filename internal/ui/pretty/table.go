package pretty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/gomd2notion/pkg/block"
)

// Table formatting constants.
const (
	minTypeWidth   = 12
	countWidth     = 7
	charsWidth     = 9
	depthWidth     = 6
	heavySeparator = "="
	lightSeparator = "-"
)

// TableRow aggregates the blocks of one type.
type TableRow struct {
	Type     string
	Count    int
	Chars    int // visible characters of text bodies
	MaxDepth int
}

// CountBlocks aggregates a block forest by type, in order of first appearance.
func CountBlocks(forest []*block.Block) []TableRow {
	index := map[string]int{}
	var rows []TableRow

	block.Walk(forest, func(b *block.Block, depth int) bool {
		name := b.TypeName()
		i, ok := index[name]
		if !ok {
			i = len(rows)
			index[name] = i
			rows = append(rows, TableRow{Type: name})
		}
		rows[i].Count++
		rows[i].Chars += b.VisibleLen()
		rows[i].MaxDepth = max(rows[i].MaxDepth, depth)
		return true
	})

	return rows
}

// SortRows orders rows by descending count, then type name.
func SortRows(rows []TableRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Type < rows[j].Type
	})
}

// TableFormatter formats block statistics as a styled table.
type TableFormatter struct {
	styles *Styles
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles) *TableFormatter {
	return &TableFormatter{styles: styles}
}

// FormatTable renders rows with a totals footer. Empty input renders nothing.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	typeWidth := minTypeWidth
	for _, row := range rows {
		typeWidth = max(typeWidth, len(row.Type))
	}
	total := typeWidth + countWidth + charsWidth + depthWidth + 5

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s %*s %*s %*s ",
		typeWidth, "TYPE", countWidth, "COUNT", charsWidth, "CHARS", depthWidth, "DEPTH")))
	builder.WriteString("\n")
	builder.WriteString(t.separator(total, heavySeparator))

	var count, chars int
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf(" %-*s %*d %*d %*d \n",
			typeWidth, row.Type, countWidth, row.Count, charsWidth, row.Chars, depthWidth, row.MaxDepth))
		count += row.Count
		chars += row.Chars
	}

	builder.WriteString(t.separator(total, lightSeparator))
	builder.WriteString(t.styles.Bold.Render(fmt.Sprintf(" %-*s %*d %*d",
		typeWidth, "total", countWidth, count, charsWidth, chars)))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) separator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width)) + "\n"
}
