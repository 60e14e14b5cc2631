package publish_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/parser"
	"github.com/yaklabco/gomd2notion/pkg/publish"
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

const parentID = "0123456789abcdef0123456789abcdef"

// recorder is a PageService that records every call.
type recorder struct {
	calls      []string
	parent     publish.Parent
	initial    publish.Properties
	properties publish.Properties
	cover      *publish.Cover
	batches    [][]*block.Block

	failCreate error
	failAppend map[int]error
}

func (r *recorder) CreatePage(_ context.Context, parent publish.Parent, props publish.Properties) (publish.Page, error) {
	r.calls = append(r.calls, "create")
	if r.failCreate != nil {
		return publish.Page{}, r.failCreate
	}
	r.parent = parent
	r.initial = props
	return publish.Page{ID: "page-1", URL: "https://www.notion.so/page-1"}, nil
}

func (r *recorder) UpdatePage(_ context.Context, id string, props publish.Properties, cover *publish.Cover) error {
	r.calls = append(r.calls, "update:"+id)
	r.properties = props
	r.cover = cover
	return nil
}

func (r *recorder) AppendChildren(_ context.Context, id string, blocks []*block.Block) error {
	r.calls = append(r.calls, fmt.Sprintf("append:%s:%d", id, len(blocks)))
	if err := r.failAppend[len(r.batches)]; err != nil {
		return err
	}
	r.batches = append(r.batches, blocks)
	return nil
}

// schemaRecorder also reports database properties.
type schemaRecorder struct {
	recorder
	schema map[string]string
}

func (s *schemaRecorder) DatabaseProperties(_ context.Context, _ string) (map[string]string, error) {
	s.calls = append(s.calls, "schema")
	return s.schema, nil
}

// nestingRecorder also returns ids for appended blocks.
type nestingRecorder struct {
	recorder
	appended map[string][]*block.Block
	next     int
}

func (n *nestingRecorder) AppendBlocks(_ context.Context, id string, blocks []*block.Block) ([]string, error) {
	n.calls = append(n.calls, fmt.Sprintf("append-ids:%s:%d", id, len(blocks)))
	if n.appended == nil {
		n.appended = map[string][]*block.Block{}
	}
	n.appended[id] = append(n.appended[id], blocks...)

	ids := make([]string, len(blocks))
	for i := range blocks {
		n.next++
		ids[i] = fmt.Sprintf("blk-%d", n.next)
	}
	return ids, nil
}

// listWithChildren returns one bullet item holding n child items.
func listWithChildren(n int) *block.Block {
	parent := block.NewBulletItem([]richtext.Span{richtext.Text("parent")})
	for i := range n {
		parent.AppendChild(block.NewBulletItem([]richtext.Span{richtext.Text(fmt.Sprintf("child %d", i))}))
	}
	return parent
}

func pageRequest(blocks []*block.Block) publish.Request {
	return publish.Request{
		Title:  "Notes",
		Parent: publish.Parent{Type: publish.ParentPage, ID: parentID},
		Blocks: blocks,
	}
}

func TestPublish_BatchesInOrder(t *testing.T) {
	t.Parallel()

	var src strings.Builder
	for i := range 250 {
		fmt.Fprintf(&src, "line %d\n", i)
	}
	blocks := parser.Parse(src.String())
	require.Len(t, blocks, 250)

	svc := &recorder{}
	page, err := publish.NewPublisher(svc).Publish(context.Background(), pageRequest(blocks))
	require.NoError(t, err)

	assert.Equal(t, &publish.Page{ID: "page-1", URL: "https://www.notion.so/page-1"}, page)
	assert.Equal(t, []string{
		"create",
		"update:page-1",
		"append:page-1:100",
		"append:page-1:100",
		"append:page-1:50",
	}, svc.calls)

	n := 0
	for _, batch := range svc.batches {
		for _, b := range batch {
			assert.Equal(t, fmt.Sprintf("line %d", n), richtext.VisibleText(b.Text))
			n++
		}
	}
	assert.Equal(t, 250, n)
}

func TestPublish_SetsTitleAndCover(t *testing.T) {
	t.Parallel()

	svc := &recorder{}
	req := pageRequest(nil)
	req.CoverURL = "https://images.example.com/cover.jpg"

	_, err := publish.NewPublisher(svc).Publish(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, publish.Parent{Type: publish.ParentPage, ID: "01234567-89ab-cdef-0123-456789abcdef"}, svc.parent)
	assert.Empty(t, svc.initial)
	assert.Equal(t, publish.TitleProperties("title", "Notes"), svc.properties)
	assert.Equal(t, &publish.Cover{URL: "https://images.example.com/cover.jpg"}, svc.cover)
	assert.Equal(t, []string{"create", "update:page-1"}, svc.calls)
}

func TestPublish_DatabaseTitleProperty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		property string
		want     string
	}{
		{"default name", "", publish.DefaultTitleProperty},
		{"custom name", "Task", "Task"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &recorder{}
			req := pageRequest(nil)
			req.Parent.Type = publish.ParentDatabase
			req.TitleProperty = tc.property

			_, err := publish.NewPublisher(svc).Publish(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, publish.TitleProperties(tc.want, "Notes"), svc.properties)
			assert.Nil(t, svc.cover)
		})
	}
}

func TestPublish_CustomPropertiesReplaceTitle(t *testing.T) {
	t.Parallel()

	custom := publish.Properties{"Status": map[string]any{"select": map[string]any{"name": "Draft"}}}
	svc := &recorder{}
	req := pageRequest(nil)
	req.Parent.Type = publish.ParentDatabase
	req.Properties = custom

	_, err := publish.NewPublisher(svc).Publish(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, custom, svc.properties)
}

func TestPublish_InvalidConfigMakesNoCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   publish.Request
		field string
	}{
		{
			name:  "unknown parent type",
			req:   publish.Request{Title: "x", Parent: publish.Parent{Type: "workspace", ID: parentID}},
			field: "parent_type",
		},
		{
			name:  "missing parent id",
			req:   publish.Request{Title: "x", Parent: publish.Parent{Type: publish.ParentPage}},
			field: "parent_id",
		},
		{
			name: "relative cover",
			req: publish.Request{
				Title: "x", Parent: publish.Parent{Type: publish.ParentPage, ID: parentID}, CoverURL: "cover.png",
			},
			field: "cover_url",
		},
		{
			name: "title too long",
			req: publish.Request{
				Title: strings.Repeat("t", 2001), Parent: publish.Parent{Type: publish.ParentPage, ID: parentID},
			},
			field: "title",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &recorder{}
			page, err := publish.NewPublisher(svc).Publish(context.Background(), tc.req)

			require.Error(t, err)
			assert.Nil(t, page)
			assert.ErrorIs(t, err, publish.ErrInvalidConfig)

			var cerr *publish.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.field, cerr.Field)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestPublish_TitlePropertyCheckedAgainstSchema(t *testing.T) {
	t.Parallel()

	svc := &schemaRecorder{schema: map[string]string{"Task": "title", "Due": "date"}}
	req := pageRequest(nil)
	req.Parent.Type = publish.ParentDatabase

	_, err := publish.NewPublisher(svc).Publish(context.Background(), req)

	require.ErrorIs(t, err, publish.ErrInvalidConfig)
	var cerr *publish.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "title_property", cerr.Field)
	assert.Equal(t, "Name", cerr.Value)
	assert.Contains(t, cerr.Message, `"Task"`)
	assert.Equal(t, []string{"schema"}, svc.calls)
}

func TestPublish_TitlePropertyMatchesSchema(t *testing.T) {
	t.Parallel()

	svc := &schemaRecorder{schema: map[string]string{"Task": "title"}}
	req := pageRequest([]*block.Block{block.NewDivider()})
	req.Parent.Type = publish.ParentDatabase
	req.TitleProperty = "Task"

	_, err := publish.NewPublisher(svc).Publish(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"schema", "create", "update:page-1", "append:page-1:1"}, svc.calls)
}

func TestPublish_ServiceErrorsPropagate(t *testing.T) {
	t.Parallel()

	remote := errors.New("unauthorized")

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		svc := &recorder{failCreate: remote}
		_, err := publish.NewPublisher(svc).Publish(context.Background(), pageRequest(nil))
		require.ErrorIs(t, err, remote)
		assert.NotErrorIs(t, err, publish.ErrInvalidConfig)
	})

	t.Run("append stops at first failure", func(t *testing.T) {
		t.Parallel()

		blocks := make([]*block.Block, 300)
		for i := range blocks {
			blocks[i] = block.NewDivider()
		}
		svc := &recorder{failAppend: map[int]error{1: remote}}

		_, err := publish.NewPublisher(svc).Publish(context.Background(), pageRequest(blocks))
		require.ErrorIs(t, err, remote)
		assert.Contains(t, err.Error(), "batch 2 of 3")
		assert.Equal(t, []string{"create", "update:page-1", "append:page-1:100", "append:page-1:100"}, svc.calls)
	})
}

func TestPublish_BatchSizeOption(t *testing.T) {
	t.Parallel()

	blocks := make([]*block.Block, 10)
	for i := range blocks {
		blocks[i] = block.NewDivider()
	}

	svc := &recorder{}
	_, err := publish.NewPublisher(svc, publish.WithBatchSize(4)).Publish(context.Background(), pageRequest(blocks))
	require.NoError(t, err)
	assert.Len(t, svc.batches, 3)
}

func TestPlan_FlattensBeforePartitioning(t *testing.T) {
	t.Parallel()

	long := block.NewParagraph([]richtext.Span{richtext.Text(strings.Repeat("z", 100))})
	p := publish.NewPublisher(&recorder{}, publish.WithLimits(publish.Limits{TextLimit: 10}), publish.WithBatchSize(3))

	batches := p.Plan([]*block.Block{long})

	require.Len(t, batches, 4)
	assert.Len(t, batches[3], 1)
}

func TestPublish_AppendsOversizedChildrenSeparately(t *testing.T) {
	t.Parallel()

	intro := block.NewParagraph([]richtext.Span{richtext.Text("intro")})
	parent := listWithChildren(250)
	svc := &nestingRecorder{}

	_, err := publish.NewPublisher(svc).Publish(context.Background(), pageRequest([]*block.Block{intro, parent}))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"create",
		"update:page-1",
		"append-ids:page-1:2",
		"append:blk-2:100",
		"append:blk-2:100",
		"append:blk-2:50",
	}, svc.calls)

	sent := svc.appended["page-1"]
	require.Len(t, sent, 2)
	assert.Empty(t, sent[1].Children)
	assert.Len(t, parent.Children, 250, "request blocks are not modified")

	var got []string
	for _, batch := range svc.batches {
		for _, b := range batch {
			got = append(got, richtext.VisibleText(b.Text))
		}
	}
	require.Len(t, got, 250)
	assert.Equal(t, "child 0", got[0])
	assert.Equal(t, "child 249", got[249])
}

func TestPublish_SmallChildListsStayInline(t *testing.T) {
	t.Parallel()

	svc := &nestingRecorder{}
	_, err := publish.NewPublisher(svc).Publish(context.Background(), pageRequest([]*block.Block{listWithChildren(100)}))
	require.NoError(t, err)

	assert.Equal(t, []string{"create", "update:page-1", "append:page-1:1"}, svc.calls)
	assert.Len(t, svc.batches[0][0].Children, 100)
}

func TestPublish_OversizedChildrenNeedNestedAppends(t *testing.T) {
	t.Parallel()

	svc := &recorder{}
	_, err := publish.NewPublisher(svc).Publish(context.Background(), pageRequest([]*block.Block{listWithChildren(101)}))

	require.ErrorIs(t, err, publish.ErrInvalidConfig)
	assert.Empty(t, svc.calls)
}
