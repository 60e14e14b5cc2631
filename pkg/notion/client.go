// Package notion implements publish.PageService against the Notion REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

// Defaults for a new Client.
const (
	DefaultBaseURL    = "https://api.notion.com/v1"
	DefaultVersion    = "2022-06-28"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2

	maxErrorBody  = 4096
	maxRetryDelay = 30 * time.Second
)

// Client talks to the API with a single integration token.
type Client struct {
	baseURL    string
	token      string
	version    string
	maxRetries int
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithVersion sets the Notion-Version header.
func WithVersion(v string) Option {
	return func(c *Client) {
		c.version = v
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMaxRetries sets how often a rate-limited request is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = max(0, n)
	}
}

// NewClient returns a Client authenticating with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		version:    DefaultVersion,
		maxRetries: DefaultMaxRetries,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ publish.PageService    = (*Client)(nil)
	_ publish.SchemaReader   = (*Client)(nil)
	_ publish.NestedAppender = (*Client)(nil)
)

type pageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreatePage implements publish.PageService.
func (c *Client) CreatePage(ctx context.Context, parent publish.Parent, props publish.Properties) (publish.Page, error) {
	key := "page_id"
	if parent.Type == publish.ParentDatabase {
		key = "database_id"
	}
	if props == nil {
		props = publish.Properties{}
	}
	body := map[string]any{
		"parent":     map[string]any{"type": key, key: parent.ID},
		"properties": props,
	}

	var resp pageResponse
	if err := c.do(ctx, http.MethodPost, "/pages", body, &resp); err != nil {
		return publish.Page{}, err
	}
	return publish.Page{ID: resp.ID, URL: resp.URL}, nil
}

// UpdatePage implements publish.PageService.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props publish.Properties, cover *publish.Cover) error {
	body := map[string]any{}
	if props != nil {
		body["properties"] = props
	}
	if cover != nil {
		body["cover"] = map[string]any{
			"type":     "external",
			"external": ExternalFile{URL: cover.URL},
		}
	}
	return c.do(ctx, http.MethodPatch, "/pages/"+pageID, body, nil)
}

// AppendChildren implements publish.PageService.
func (c *Client) AppendChildren(ctx context.Context, pageID string, blocks []*block.Block) error {
	_, err := c.AppendBlocks(ctx, pageID, blocks)
	return err
}

// AppendBlocks implements publish.NestedAppender. parentID may be a page or
// a block.
func (c *Client) AppendBlocks(ctx context.Context, parentID string, blocks []*block.Block) ([]string, error) {
	body := map[string]any{"children": EncodeBlocks(blocks)}

	var resp struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := c.do(ctx, http.MethodPatch, "/blocks/"+parentID+"/children", body, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, len(resp.Results))
	for i, r := range resp.Results {
		ids[i] = r.ID
	}
	return ids, nil
}

// DatabaseProperties implements publish.SchemaReader.
func (c *Client) DatabaseProperties(ctx context.Context, databaseID string) (map[string]string, error) {
	var resp struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	if err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil, &resp); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(resp.Properties))
	for name, prop := range resp.Properties {
		out[name] = prop.Type
	}
	return out, nil
}

// do sends one request, retrying while rate limited, and decodes a
// successful response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
	}

	logger := logging.FromContext(ctx)
	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			delay := retryDelay(resp.Header.Get("Retry-After"), attempt)
			_ = resp.Body.Close()
			logger.Warn("rate limited, retrying", logging.FieldRoute, path, logging.FieldDuration, delay)
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			continue
		}

		return c.finish(resp, method, path, out)
	}
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func (c *Client) finish(resp *http.Response, method, path string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return decodeError(resp.StatusCode, body)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// retryDelay honors a Retry-After header in seconds and otherwise backs off
// exponentially from one second.
func retryDelay(header string, attempt int) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, maxRetryDelay)
	}
	return min(time.Second<<attempt, maxRetryDelay)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
