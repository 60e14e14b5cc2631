package parser

import (
	"github.com/yaklabco/gomd2notion/pkg/block"
)

// frame is one level of list nesting: items indented by indent spaces are
// appended to container, and last is the most recent item appended there.
type frame struct {
	indent    int
	container *[]*block.Block
	last      *block.Block
}

// nestingStack tracks open list levels. Indents strictly increase from the
// bottom frame to the top, and the bottom frame always targets the root.
type nestingStack struct {
	frames []frame
}

func newNestingStack(root *[]*block.Block) *nestingStack {
	return &nestingStack{frames: []frame{{indent: 0, container: root}}}
}

func (s *nestingStack) top() *frame {
	return &s.frames[len(s.frames)-1]
}

func (s *nestingStack) depth() int {
	return len(s.frames)
}

// reset closes every open list so the next item starts a new list at the root.
func (s *nestingStack) reset() {
	s.frames = s.frames[:1]
	s.frames[0].last = nil
}

// place attaches item at the given indent. It reports false when the item
// is indented past the current level but no item exists there to own it;
// the item is then kept in the current container under a new frame.
func (s *nestingStack) place(item *block.Block, indent int) bool {
	for len(s.frames) > 1 && indent < s.top().indent {
		s.frames = s.frames[:len(s.frames)-1]
	}

	top := s.top()
	if indent <= top.indent {
		*top.container = append(*top.container, item)
		top.last = item
		return true
	}

	parent := top.last
	if parent == nil {
		*top.container = append(*top.container, item)
		s.frames = append(s.frames, frame{indent: indent, container: top.container, last: item})
		return false
	}

	parent.AppendChild(item)
	s.frames = append(s.frames, frame{indent: indent, container: &parent.Children, last: item})
	return true
}
