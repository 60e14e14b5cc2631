package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

func passNamed(t *testing.T, name string) pass {
	t.Helper()
	for _, p := range passes {
		if p.name == name {
			return p
		}
	}
	t.Fatalf("no pass named %q", name)
	return pass{}
}

func TestPassOrder(t *testing.T) {
	t.Parallel()

	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	assert.Equal(t, []string{"bold-italic", "math", "bold", "italic", "strikethrough", "code", "link"}, names)
}

func TestPassSkipsResolvedFragments(t *testing.T) {
	t.Parallel()

	in := []fragment{
		{span: richtext.Styled("*kept*", richtext.Annotations{Code: true}), resolved: true},
		{span: richtext.Text(" *x* ")},
	}

	out := passNamed(t, "italic").apply(in)

	require.Len(t, out, 4)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, richtext.Text(" "), out[1].span)
	assert.True(t, out[2].resolved)
	assert.Equal(t, "x", out[2].span.Content)
	assert.Equal(t, richtext.Text(" "), out[3].span)
}

func TestPassDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []fragment{{span: richtext.Text("**a**")}}
	_ = passNamed(t, "bold").apply(in)

	assert.False(t, in[0].resolved)
	assert.Equal(t, "**a**", in[0].span.Content)
}

func TestBoldItalicRunsBeforeBold(t *testing.T) {
	t.Parallel()

	frags := []fragment{{span: richtext.Text("**_x_**")}}
	frags = passNamed(t, "bold-italic").apply(frags)

	require.Len(t, frags, 1)
	assert.True(t, frags[0].span.Annotations.Bold)
	assert.True(t, frags[0].span.Annotations.Italic)
}

func TestFirstGroup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b", firstGroup([]string{"whole", "", "b"}))
	assert.Empty(t, firstGroup([]string{"whole", "", ""}))
}
