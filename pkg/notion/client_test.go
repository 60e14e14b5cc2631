package notion_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/notion"
	"github.com/yaklabco/gomd2notion/pkg/publish"
	"github.com/yaklabco/gomd2notion/pkg/richtext"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   map[string]any
}

// fakeAPI records requests and replies with canned responses per path.
type fakeAPI struct {
	mu        sync.Mutex
	requests  []captured
	responses map[string]func(w http.ResponseWriter)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, captured{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: body})
	respond := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if respond == nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
		return
	}
	respond(w)
}

func (f *fakeAPI) reqs() []captured {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]captured(nil), f.requests...)
}

func newClient(t *testing.T, api *fakeAPI) *notion.Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return notion.NewClient("secret-token", notion.WithBaseURL(srv.URL+"/v1/"))
}

func jsonResponse(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestCreatePage(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{responses: map[string]func(http.ResponseWriter){
		"POST /v1/pages": jsonResponse(http.StatusOK, `{"object":"page","id":"p1","url":"https://www.notion.so/p1"}`),
	}}
	client := newClient(t, api)

	page, err := client.CreatePage(context.Background(), publish.Parent{Type: publish.ParentPage, ID: "parent"}, nil)
	require.NoError(t, err)
	assert.Equal(t, publish.Page{ID: "p1", URL: "https://www.notion.so/p1"}, page)

	require.Len(t, api.reqs(), 1)
	req := api.reqs()[0]
	assert.Equal(t, "Bearer secret-token", req.header.Get("Authorization"))
	assert.Equal(t, notion.DefaultVersion, req.header.Get("Notion-Version"))
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	assert.Equal(t, map[string]any{"type": "page_id", "page_id": "parent"}, req.body["parent"])
	assert.Equal(t, map[string]any{}, req.body["properties"])
}

func TestCreatePage_Database(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	client := newClient(t, api)

	_, err := client.CreatePage(context.Background(), publish.Parent{Type: publish.ParentDatabase, ID: "db"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "database_id", "database_id": "db"}, api.reqs()[0].body["parent"])
}

func TestUpdatePage(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	client := newClient(t, api)

	err := client.UpdatePage(context.Background(), "p1",
		publish.TitleProperties("title", "Hello"),
		&publish.Cover{URL: "https://img.example.com/c.jpg"})
	require.NoError(t, err)

	req := api.reqs()[0]
	assert.Equal(t, http.MethodPatch, req.method)
	assert.Equal(t, "/v1/pages/p1", req.path)
	assert.Equal(t, map[string]any{
		"type":     "external",
		"external": map[string]any{"url": "https://img.example.com/c.jpg"},
	}, req.body["cover"])

	title := req.body["properties"].(map[string]any)["title"].(map[string]any)["title"].([]any)
	require.Len(t, title, 1)
	assert.Equal(t, "Hello", title[0].(map[string]any)["text"].(map[string]any)["content"])
}

func TestUpdatePage_NoCover(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	client := newClient(t, api)

	require.NoError(t, client.UpdatePage(context.Background(), "p1", publish.Properties{}, nil))
	assert.NotContains(t, api.reqs()[0].body, "cover")
}

func TestAppendChildren(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	client := newClient(t, api)

	blocks := []*block.Block{
		block.NewHeading(2, []richtext.Span{richtext.Text("Intro")}),
		block.NewDivider(),
	}
	require.NoError(t, client.AppendChildren(context.Background(), "p1", blocks))

	req := api.reqs()[0]
	assert.Equal(t, http.MethodPatch, req.method)
	assert.Equal(t, "/v1/blocks/p1/children", req.path)

	children := req.body["children"].([]any)
	require.Len(t, children, 2)
	assert.Equal(t, "heading_2", children[0].(map[string]any)["type"])
	assert.Equal(t, map[string]any{"object": "block", "type": "divider", "divider": map[string]any{}}, children[1])
}

func TestDatabaseProperties(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{responses: map[string]func(http.ResponseWriter){
		"GET /v1/databases/db": jsonResponse(http.StatusOK,
			`{"object":"database","properties":{"Task":{"id":"title","type":"title"},"Due":{"id":"x","type":"date"}}}`),
	}}
	client := newClient(t, api)

	props, err := client.DatabaseProperties(context.Background(), "db")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Task": "title", "Due": "date"}, props)
	assert.Empty(t, api.reqs()[0].header.Get("Content-Type"))
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{responses: map[string]func(http.ResponseWriter){
		"POST /v1/pages": jsonResponse(http.StatusUnauthorized,
			`{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`),
	}}
	client := newClient(t, api)

	_, err := client.CreatePage(context.Background(), publish.Parent{Type: publish.ParentPage, ID: "x"}, nil)
	require.Error(t, err)

	var apiErr *notion.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, notion.CodeUnauthorized, apiErr.Code)
	assert.Equal(t, "API token is invalid.", apiErr.Message)
	assert.True(t, notion.HasCode(err, notion.CodeUnauthorized))
	assert.Equal(t, "notion: status 401 unauthorized: API token is invalid.", err.Error())
}

func TestAppendBlocks_ReturnsIDs(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{responses: map[string]func(http.ResponseWriter){
		"PATCH /v1/blocks/b7/children": jsonResponse(http.StatusOK,
			`{"object":"list","results":[{"object":"block","id":"c1"},{"object":"block","id":"c2"}]}`),
	}}
	client := newClient(t, api)

	blocks := []*block.Block{
		block.NewBulletItem([]richtext.Span{richtext.Text("one")}),
		block.NewBulletItem([]richtext.Span{richtext.Text("two")}),
	}
	ids, err := client.AppendBlocks(context.Background(), "b7", blocks)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, ids)
	assert.Equal(t, "/v1/blocks/b7/children", api.reqs()[0].path)
}

func TestAPIError_NonJSONBody(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{responses: map[string]func(http.ResponseWriter){
		"PATCH /v1/blocks/p1/children": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down\n"))
		},
	}}
	client := newClient(t, api)

	err := client.AppendChildren(context.Background(), "p1", nil)

	var apiErr *notion.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestRateLimitRetry(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"p2","url":"u"}`))
	}))
	t.Cleanup(srv.Close)

	client := notion.NewClient("t", notion.WithBaseURL(srv.URL))
	page, err := client.CreatePage(context.Background(), publish.Parent{Type: publish.ParentPage, ID: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "p2", page.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestRateLimitGivesUp(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"object":"error","status":429,"code":"rate_limited","message":"slow down"}`))
	}))
	t.Cleanup(srv.Close)

	client := notion.NewClient("t", notion.WithBaseURL(srv.URL), notion.WithMaxRetries(1))
	err := client.UpdatePage(context.Background(), "p", publish.Properties{}, nil)
	assert.True(t, notion.HasCode(err, notion.CodeRateLimited))
}

func TestWithVersion(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := notion.NewClient("t", notion.WithBaseURL(srv.URL), notion.WithVersion("2025-09-03"))
	require.NoError(t, client.UpdatePage(context.Background(), "p", nil, nil))
	assert.Equal(t, "2025-09-03", api.reqs()[0].header.Get("Notion-Version"))
}
