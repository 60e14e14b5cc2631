package publish

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/yaklabco/gomd2notion/pkg/block"
)

// maxTitleLength bounds a page title, which is a single rich-text body.
const maxTitleLength = DefaultTextLimit

//nolint:gochecknoglobals // Compiled once, read-only.
var compactIDPattern = regexp.MustCompile(`[0-9a-fA-F]{32}`)

// Request describes one page to publish.
type Request struct {
	Title  string `json:"title"`
	Parent Parent `json:"parent"`

	// TitleProperty names the title column when Parent is a database.
	// Empty means DefaultTitleProperty.
	TitleProperty string `json:"title_property,omitempty"`

	// Properties, when set, replace the generated title property entirely.
	Properties Properties `json:"properties,omitempty"`

	CoverURL string         `json:"cover_url,omitempty"`
	Blocks   []*block.Block `json:"-"`
}

// Validate checks the request without contacting the service.
func (r Request) Validate() error {
	errs := validation.Errors{}

	if strings.TrimSpace(r.Parent.ID) == "" {
		errs["parent_id"] = validation.NewError("publish.parent_id_required", "parent id is required")
	}

	switch r.Parent.Type {
	case ParentPage, ParentDatabase:
	default:
		errs["parent_type"] = validation.NewError("publish.parent_type_invalid",
			fmt.Sprintf("must be %q or %q", ParentPage, ParentDatabase))
	}

	if err := validation.Validate(r.Title, validation.RuneLength(0, maxTitleLength)); err != nil {
		errs["title"] = err
	}

	if err := validation.Validate(r.CoverURL, validation.By(externalURL)); err != nil {
		errs["cover_url"] = err
	}

	if len(errs) == 0 {
		return nil
	}
	return configErrors(errs, map[string]string{
		"parent_type": string(r.Parent.Type),
		"cover_url":   r.CoverURL,
	})
}

// titleProperty returns the property that carries the page title.
func (r Request) titleProperty() string {
	if r.Parent.Type == ParentPage {
		return pageTitleProperty
	}
	if name := strings.TrimSpace(r.TitleProperty); name != "" {
		return name
	}
	return DefaultTitleProperty
}

// properties returns the properties set on the new page.
func (r Request) properties() Properties {
	if r.Properties != nil {
		return r.Properties
	}
	return TitleProperties(r.titleProperty(), r.Title)
}

// cover returns the cover to set, or nil.
func (r Request) cover() *Cover {
	if r.CoverURL == "" {
		return nil
	}
	return &Cover{URL: r.CoverURL}
}

// NormalizeID returns the canonical dashed form of an identifier given
// dashed, compact or embedded at the end of a page link. Anything else is
// returned trimmed but otherwise unchanged so the service can report it.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}

	candidate := id
	if u, err := url.Parse(id); err == nil && u.Host != "" {
		candidate = u.Path
	}
	if matches := compactIDPattern.FindAllString(candidate, -1); len(matches) > 0 {
		if parsed, err := uuid.Parse(matches[len(matches)-1]); err == nil {
			return parsed.String()
		}
	}
	return id
}

func externalURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("publish.cover_url_invalid", "must be an absolute http(s) URL")
	}
	return nil
}
