package pretty

import "fmt"

// RunStats describes a conversion over several documents.
type RunStats struct {
	Files     int
	Converted int
	Errored   int
	Blocks    int
	Warnings  int
}

// FormatFileLine formats one converted document.
// Example: "docs/guide.md  "Guide"  12 blocks".
func (s *Styles) FormatFileLine(path, title string, blocks, warnings int) string {
	msg := s.FilePath.Render(path) + fmt.Sprintf("  %q  %d %s", title, blocks, plural(blocks, "block", "blocks"))
	if warnings > 0 {
		msg += s.Warning.Render(fmt.Sprintf(" (%d %s)", warnings, plural(warnings, "warning", "warnings")))
	}
	return msg + "\n"
}

// FormatRunSummary formats the totals of a multi-document run.
func (s *Styles) FormatRunSummary(stats RunStats) string {
	docWord := plural(stats.Files, "document", "documents")
	body := fmt.Sprintf(" %d of %d %s into %d %s",
		stats.Converted, stats.Files, docWord, stats.Blocks, plural(stats.Blocks, "block", "blocks"))

	var msg string
	if stats.Errored > 0 {
		msg = s.Error.Render("Converted") + body + s.Error.Render(fmt.Sprintf(", %d failed", stats.Errored))
	} else {
		msg = s.Success.Render("Converted") + body
	}
	if stats.Warnings > 0 {
		msg += s.Warning.Render(fmt.Sprintf(" (%d %s)", stats.Warnings, plural(stats.Warnings, "warning", "warnings")))
	}
	return msg + "\n"
}
