package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

func item(name string) *block.Block {
	return block.NewBulletItem([]richtext.Span{richtext.Text(name)})
}

func TestNestingStack_SiblingsAtSameIndent(t *testing.T) {
	t.Parallel()

	var root []*block.Block
	s := newNestingStack(&root)

	assert.True(t, s.place(item("a"), 0))
	assert.True(t, s.place(item("b"), 0))

	assert.Len(t, root, 2)
	assert.Equal(t, 1, s.depth())
}

func TestNestingStack_DeeperIndentNestsUnderLast(t *testing.T) {
	t.Parallel()

	var root []*block.Block
	s := newNestingStack(&root)

	a := item("a")
	s.place(a, 0)
	child := item("child")
	assert.True(t, s.place(child, 2))

	assert.Len(t, root, 1)
	require.Len(t, a.Children, 1)
	assert.Same(t, child, a.Children[0])
	assert.Equal(t, 2, s.depth())
	assert.Equal(t, 2, s.top().indent)
}

func TestNestingStack_PopsToMatchingLevel(t *testing.T) {
	t.Parallel()

	var root []*block.Block
	s := newNestingStack(&root)

	a := item("a")
	s.place(a, 0)
	b := item("b")
	s.place(b, 2)
	s.place(item("c"), 4)
	s.place(item("b2"), 2)

	require.Len(t, a.Children, 2)
	assert.Len(t, b.Children, 1)
	assert.Equal(t, 2, s.depth())
}

func TestNestingStack_IntermediateIndentNestsUnderRootItem(t *testing.T) {
	t.Parallel()

	var root []*block.Block
	s := newNestingStack(&root)

	a := item("a")
	s.place(a, 0)
	s.place(item("deep"), 4)
	s.place(item("mid"), 2)

	require.Len(t, a.Children, 2)
	assert.Equal(t, "mid", richtext.VisibleText(a.Children[1].Text))
}

func TestNestingStack_IndentsStrictlyIncrease(t *testing.T) {
	t.Parallel()

	var root []*block.Block
	s := newNestingStack(&root)
	for _, indent := range []int{0, 2, 4, 2, 6, 1, 3, 0, 8} {
		s.place(item("x"), indent)
		for i := 1; i < len(s.frames); i++ {
			assert.Greater(t, s.frames[i].indent, s.frames[i-1].indent)
		}
	}
}

func TestNestingStack_MissingParent(t *testing.T) {
	t.Parallel()

	var root []*block.Block
	s := newNestingStack(&root)

	orphan := item("orphan")
	assert.False(t, s.place(orphan, 3))
	assert.Equal(t, []*block.Block{orphan}, root)

	// Later items at the same indent are siblings of the orphan.
	assert.True(t, s.place(item("next"), 3))
	assert.Len(t, root, 2)
	assert.Empty(t, orphan.Children)
}

func TestNestingStack_Reset(t *testing.T) {
	t.Parallel()

	var root []*block.Block
	s := newNestingStack(&root)
	s.place(item("a"), 0)
	s.place(item("b"), 2)

	s.reset()

	assert.Equal(t, 1, s.depth())
	assert.Nil(t, s.top().last)
	assert.False(t, s.place(item("c"), 2))
}
