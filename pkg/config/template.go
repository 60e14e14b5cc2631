package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string

	// ParentID prefills notion.parent_id.
	ParentID string

	// ParentType prefills notion.parent_type.
	ParentType ParentType
}

//nolint:gochecknoglobals // Parsed once.
var yamlTemplate = template.Must(template.New("config").Parse(`{{.Header}}

notion:
  # Page or database that new pages are created under.
  # The integration token is read from NOTION_SECRET, never from this file.
  {{if .ParentID}}parent_id: "{{.ParentID}}"{{else}}# parent_id: "0123456789abcdef0123456789abcdef"{{end}}

  # Placement mode: page or database
  parent_type: {{.ParentType}}

  # Title property name when publishing into a database
  title_property: {{.Defaults.Notion.TitleProperty}}

  # api_url: {{.Defaults.Notion.APIURL}}
  # api_version: "{{.Defaults.Notion.APIVersion}}"
  # timeout: {{.Defaults.Notion.Timeout}}

convert:
  # Maximum visible characters per text block before it is split
  text_limit: {{.Defaults.Convert.TextLimit}}

  # Blocks per append request (1-100)
  batch_size: {{.Defaults.Convert.BatchSize}}

  # Maximum rich-text spans per block
  # max_spans: {{.Defaults.Convert.MaxSpans}}

  # Guess the language of code fences that do not name one
  detect_language: true

  # Use the first heading as the page title when none is given
  # title_from_heading: false

  # Fail on list items indented deeper than any open parent
  # strict_nesting: false

server:
  addr: "{{.Defaults.Server.Addr}}"
`))

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	parentType := opts.ParentType
	if parentType == "" {
		parentType = ParentPage
	}

	if opts.Format == "json" {
		return templateToJSON(opts, parentType)
	}

	var buf bytes.Buffer
	err := yamlTemplate.Execute(&buf, struct {
		Header     string
		ParentID   string
		ParentType ParentType
		Defaults   *Config
	}{
		Header:     DefaultTemplateHeader(),
		ParentID:   strings.TrimSpace(opts.ParentID),
		ParentType: parentType,
		Defaults:   NewConfig(),
	})
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return buf.Bytes(), nil
}

// templateToJSON renders the defaults as JSON. JSON has no comments, so
// only values are written.
func templateToJSON(opts TemplateOptions, parentType ParentType) ([]byte, error) {
	defaults := NewConfig()
	cfg := map[string]any{
		"notion": map[string]any{
			"parent_id":      strings.TrimSpace(opts.ParentID),
			"parent_type":    parentType,
			"title_property": defaults.Notion.TitleProperty,
		},
		"convert": map[string]any{
			"text_limit":      defaults.Convert.TextLimit,
			"batch_size":      defaults.Convert.BatchSize,
			"detect_language": true,
		},
		"server": map[string]any{
			"addr": defaults.Server.Addr,
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomd2notion configuration
# See: https://github.com/yaklabco/gomd2notion`
}
