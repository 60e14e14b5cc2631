package pretty

import (
	"fmt"
	"strings"
)

// FormatWarning formats a conversion warning as "path:line  warning  message".
// A zero line omits the line number.
func (s *Styles) FormatWarning(path string, line int, message string) string {
	location := s.FilePath.Render(path)
	if line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d", line))
	}
	return fmt.Sprintf("  %s  %s  %s\n", location, s.Warning.Render("warning"), s.Message.Render(message))
}

// FormatError formats a fatal error line.
func (s *Styles) FormatError(err error) string {
	return s.Error.Render("error") + " " + s.Message.Render(err.Error()) + "\n"
}

// FormatHint renders a titled block of guidance lines below an error.
func (s *Styles) FormatHint(title string, lines []string) string {
	if title == "" && len(lines) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("\n")
	builder.WriteString(s.HintTitle.Render("Hint: " + title))
	builder.WriteString("\n")
	for _, line := range lines {
		builder.WriteString("  " + s.Suggestion.Render(line) + "\n")
	}
	return builder.String()
}
