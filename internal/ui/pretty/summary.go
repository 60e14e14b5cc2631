package pretty

import (
	"fmt"
	"strconv"
	"strings"
)

const summaryDividerWidth = 40

// PublishStats describes one conversion or publish run.
type PublishStats struct {
	Source   string
	Title    string
	PageID   string
	PageURL  string
	Blocks   int // top-level blocks after splitting
	Total    int // including nested children
	Batches  int
	Warnings int
	DryRun   bool
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Published "Guide" with 120 blocks in 2 batches: https://...".
func (s *Styles) FormatSummaryOneLine(stats PublishStats) string {
	blockWord := plural(stats.Blocks, "block", "blocks")
	batchWord := plural(stats.Batches, "batch", "batches")

	var msg string
	if stats.DryRun {
		msg = s.Info.Render("Dry run") + fmt.Sprintf(": %q would be published with %d %s in %d %s",
			stats.Title, stats.Blocks, blockWord, stats.Batches, batchWord)
	} else {
		msg = s.Success.Render("Published") + fmt.Sprintf(" %q with %d %s in %d %s",
			stats.Title, stats.Blocks, blockWord, stats.Batches, batchWord)
		if stats.PageURL != "" {
			msg += ": " + s.Link.Render(stats.PageURL)
		}
	}

	if stats.Warnings > 0 {
		msg += s.Warning.Render(fmt.Sprintf(" (%d %s)", stats.Warnings, plural(stats.Warnings, "warning", "warnings")))
	}
	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats PublishStats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	if stats.Source != "" {
		row("Source", s.FilePath.Render(stats.Source))
	}
	row("Title", s.SummaryValue.Render(stats.Title))
	row("Blocks", s.SummaryValue.Render(strconv.Itoa(stats.Blocks)))
	if stats.Total > stats.Blocks {
		row("Including nested", s.SummaryValue.Render(strconv.Itoa(stats.Total)))
	}
	row("Batches", s.SummaryValue.Render(strconv.Itoa(stats.Batches)))
	if stats.Warnings > 0 {
		row("Warnings", s.Warning.Render(strconv.Itoa(stats.Warnings)))
	}
	if stats.PageID != "" {
		row("Page ID", s.SummaryValue.Render(stats.PageID))
	}
	if stats.PageURL != "" {
		row("Page URL", s.Link.Render(stats.PageURL))
	}

	builder.WriteString("\n")
	switch {
	case stats.DryRun:
		builder.WriteString(s.Info.Render("Dry run, nothing was published"))
	case stats.PageID != "":
		builder.WriteString(s.Success.Render("Publish succeeded"))
	default:
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
