// Package langdetect resolves the language of code blocks into the
// vocabulary understood by the publishing service.
//
// A fence label is normalized first (aliases such as "py", "golang" or
// "node" map onto canonical names). When a block has no label its content
// can be classified with go-enry plus a handful of cheap pattern checks.
// Anything unrecognized becomes PlainText.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// PlainText is the language of code whose language is unknown.
const PlainText = "plain text"

// Languages produced by the pattern detectors.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDocker     = "docker"
)

// classifierCandidates restricts the enry classifier to common languages.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// detector inspects content and returns a language or "".
type detector func(content []byte, text string) string

// detectors run in order of specificity.
//
//nolint:gochecknoglobals // Read-only detector chain.
var detectors = []detector{
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDocker,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

// Detect classifies code content. It returns PlainText when nothing matches
// with confidence.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return PlainText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fromEnry(lang)
	}

	text := string(content)
	for _, detect := range detectors {
		if lang := detect(content, text); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fromEnry(lang)
	}

	return PlainText
}

func detectGo(content []byte, _ string) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(_ []byte, text string) string {
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return langPython
	}
	if strings.Contains(text, "import ") && !strings.Contains(text, "import (") &&
		(strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import ")) {
		return langPython
	}
	if strings.Contains(text, "__name__") || strings.Contains(text, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(content []byte, _ string) string {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(content []byte, _ string) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDocker(content []byte, _ string) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDocker
	}
	return ""
}

func detectSQL(_ []byte, text string) string {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return langSQL
		}
	}
	return ""
}

func detectRust(_ []byte, text string) string {
	if strings.Contains(text, "fn main()") ||
		strings.Contains(text, "println!") ||
		strings.Contains(text, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(_ []byte, text string) string {
	if strings.Contains(text, "=>") ||
		strings.Contains(text, "const ") ||
		strings.Contains(text, "let ") ||
		strings.Contains(text, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectYAML needs at least two key/value or list lines.
func detectYAML(content []byte, _ string) string {
	score := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			score++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			score++
		}
	}
	if score >= 2 {
		return langYAML
	}
	return ""
}
