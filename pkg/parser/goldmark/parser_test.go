package goldmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to gfm", "invalid", FlavorGFM},
		{"empty defaults to gfm", "", FlavorGFM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantFlavor, New(tt.flavor).Flavor())
		})
	}
}

func TestParser_Outline(t *testing.T) {
	t.Parallel()

	content := []byte("Intro\n\n# Getting *Started*\n\nText\n\n## Install `tool`\n\n```\n# not a heading\n```\n\nSetext\n======\n")

	outline, err := New(FlavorGFM).Outline(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, []Heading{
		{Level: 1, Text: "Getting Started", Line: 3},
		{Level: 2, Text: "Install tool", Line: 7},
		{Level: 1, Text: "Setext", Line: 13},
	}, outline.Headings)
}

func TestParser_Outline_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(FlavorCommonMark).Outline(ctx, []byte("# Hi"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestOutline_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headings []Heading
		want     string
		wantOK   bool
	}{
		{name: "none"},
		{
			name:     "first level one wins",
			headings: []Heading{{Level: 2, Text: "Sub"}, {Level: 1, Text: "Main"}},
			want:     "Main",
			wantOK:   true,
		},
		{
			name:     "falls back to first heading",
			headings: []Heading{{Level: 3, Text: "Deep"}, {Level: 2, Text: "Sub"}},
			want:     "Deep",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := (&Outline{Headings: tt.headings}).Title()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestOutline_TitleNil(t *testing.T) {
	t.Parallel()

	var o *Outline
	_, ok := o.Title()
	assert.False(t, ok)
}
