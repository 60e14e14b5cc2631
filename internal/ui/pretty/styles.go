// Package pretty renders terminal output for the CLI with lipgloss: warnings,
// remote-error hints, publish summaries and block tables.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI 256 palette indices.
const (
	ansiRed    = "9"
	ansiGreen  = "10"
	ansiYellow = "11"
	ansiBlue   = "12"
	ansiCyan   = "14"
	ansiGray   = "8"
	ansiWhite  = "7"
)

// Styles holds one renderer per kind of output element. With color off every
// renderer passes text through unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// conversion warnings and remote-error hints
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Message    lipgloss.Style
	HintTitle  lipgloss.Style
	Suggestion lipgloss.Style

	// publish summary
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Link         lipgloss.Style
	Success      lipgloss.Style

	// block table
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colored is false.
func NewStyles(colored bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(color string) lipgloss.Style {
		if !colored {
			return plain
		}
		return plain.Foreground(lipgloss.Color(color))
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colored {
			return s
		}
		return s.Bold(true)
	}

	return &Styles{
		Error:   bold(fg(ansiRed)),
		Warning: bold(fg(ansiYellow)),
		Info:    bold(fg(ansiBlue)),

		FilePath:   bold(plain),
		Location:   fg(ansiGray),
		Message:    plain,
		HintTitle:  bold(fg(ansiCyan)),
		Suggestion: italic(fg(ansiGreen), colored),

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Link:         underline(fg(ansiBlue), colored),
		Success:      bold(fg(ansiGreen)),

		TableHeader:    bold(fg(ansiWhite)),
		TableSeparator: fg(ansiGray),

		Dim:  fg(ansiGray),
		Bold: bold(plain),
	}
}

func italic(s lipgloss.Style, on bool) lipgloss.Style {
	if !on {
		return s
	}
	return s.Italic(true)
}

func underline(s lipgloss.Style, on bool) lipgloss.Style {
	if !on {
		return s
	}
	return s.Underline(true)
}

// IsColorEnabled resolves a --color mode for writer. Auto, the default for
// unknown values, means color only on a terminal and only without NO_COLOR
// (https://no-color.org/).
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
