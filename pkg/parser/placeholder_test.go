package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	src := "a\n```go\nfmt.Println(\"$$x$$\")\n```\n$$\ny = 2\n$$\n```\nplain\n```"
	out, ex := extract(src)

	require.Len(t, ex.code, 2)
	assert.Equal(t, fencedCode{language: "go", content: `fmt.Println("$$x$$")`}, ex.code[0])
	assert.Equal(t, fencedCode{language: "", content: "plain"}, ex.code[1])
	assert.Equal(t, []string{"y = 2"}, ex.math)

	assert.NotContains(t, out, "```")
	assert.NotContains(t, out, "$$")

	var tokens []string
	for _, line := range strings.Split(out, "\n") {
		if kind, index, ok := lookupToken(line); ok {
			tokens = append(tokens, kind+string(rune('0'+index)))
		}
	}
	assert.Equal(t, []string{"code0", "math0", "code1"}, tokens)
}

func TestExtract_KeepsLineNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		tokenLine int
		afterLine int
	}{
		{name: "fence", src: "```\na\nb\nc\n```\npara\n", tokenLine: 1, afterLine: 6},
		{name: "math", src: "intro\n$$\na\nb\n$$\npara", tokenLine: 2, afterLine: 6},
		{name: "text on both sides", src: "x ```go\ncode\n``` y\npara", tokenLine: 2, afterLine: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _ := extract(tt.src)
			lines := strings.Split(out, "\n")
			require.Len(t, lines, strings.Count(tt.src, "\n")+1)

			_, _, ok := lookupToken(lines[tt.tokenLine-1])
			assert.True(t, ok, "token on line %d of %q", tt.tokenLine, out)
			assert.Equal(t, "para", lines[tt.afterLine-1])
		})
	}
}

func TestLookupToken(t *testing.T) {
	t.Parallel()

	kind, index, ok := lookupToken(placeholder(tokenMath, 12))
	require.True(t, ok)
	assert.Equal(t, tokenMath, kind)
	assert.Equal(t, 12, index)

	_, _, ok = lookupToken("code:1")
	assert.False(t, ok)
}

func TestExpandIndent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "    - a", expandIndent("\t- a"))
	assert.Equal(t, "    - a", expandIndent("  \t- a"))
	assert.Equal(t, "        x\ty", expandIndent("\t\tx\ty"))
	assert.Equal(t, "  plain", expandIndent("  plain"))
}
