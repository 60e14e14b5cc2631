package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder tokens are delimited by private-use runes.
const (
	tokenOpen  = "\uE000"
	tokenClose = "\uE001"

	tokenCode = "code"
	tokenMath = "math"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	fencePattern       = regexp.MustCompile("(?s)```([^\n`]*)\n(.*?)```")
	displayMathPattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	tokenPattern       = regexp.MustCompile(`^\x{E000}(code|math):(\d+)\x{E001}$`)
)

// fencedCode is one extracted fenced code block.
type fencedCode struct {
	language string
	content  string
}

// extraction holds the multi-line constructs lifted out of a document,
// indexed by occurrence order.
type extraction struct {
	code []fencedCode
	math []string
}

// extract replaces every fenced code block and then every display-math block
// with a placeholder token on a line of its own. Code is lifted first so that
// dollar signs inside code are left alone. The rewritten text keeps the line
// count of src, so line numbers still point into the source.
func extract(src string) (string, *extraction) {
	ex := &extraction{}

	src = replaceBlocks(src, fencePattern, func(g []string) string {
		ex.code = append(ex.code, fencedCode{
			language: strings.TrimSpace(g[1]),
			content:  strings.TrimRight(g[2], " \t\n"),
		})
		return placeholder(tokenCode, len(ex.code)-1)
	})

	src = replaceBlocks(src, displayMathPattern, func(g []string) string {
		ex.math = append(ex.math, strings.TrimSpace(g[1]))
		return placeholder(tokenMath, len(ex.math)-1)
	})

	return src, ex
}

// replaceBlocks substitutes each match of re with the token returned by fn,
// moved onto its own line. The newlines the match spanned are written back
// after the token as blank lines. Only a match that shares its first and
// last line with other text and spans fewer than two newlines shifts the
// lines after it.
func replaceBlocks(src string, re *regexp.Regexp, fn func(groups []string) string) string {
	locs := re.FindAllStringSubmatchIndex(src, -1)
	if locs == nil {
		return src
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		b.WriteString(src[last:start])

		newlines := strings.Count(src[start:end], "\n")
		if start > 0 && src[start-1] != '\n' {
			b.WriteByte('\n')
			newlines--
		}
		b.WriteString(fn(submatches(src, loc)))
		if end < len(src) && src[end] != '\n' {
			b.WriteByte('\n')
			newlines--
		}
		b.WriteString(strings.Repeat("\n", max(newlines, 0)))

		last = end
	}
	b.WriteString(src[last:])
	return b.String()
}

func submatches(src string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = src[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups
}

func placeholder(kind string, index int) string {
	return tokenOpen + kind + ":" + strconv.Itoa(index) + tokenClose
}

// lookupToken reports the kind and index of a placeholder line.
func lookupToken(line string) (string, int, bool) {
	m := tokenPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", 0, false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], index, true
}
