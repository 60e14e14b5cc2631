// Package publish turns a parsed block tree into calls against a page
// publishing service.
//
// Publishing is strictly sequential: the page is created, its title and
// cover are set, and the flattened blocks are appended one batch at a time,
// each batch waiting for the previous one. The first failing call aborts the
// run and its error is returned as-is; a page that was already created stays
// partially populated.
package publish

import (
	"context"

	"github.com/yaklabco/gomd2notion/pkg/block"
)

// ParentType selects where a new page is placed.
type ParentType string

// Placement modes.
const (
	ParentPage     ParentType = "page"
	ParentDatabase ParentType = "database"
)

// DefaultTitleProperty is the title column of a database created with the
// service's defaults.
const DefaultTitleProperty = "Name"

// pageTitleProperty is the title property of a page placed under a page.
const pageTitleProperty = "title"

// Parent references the container of a new page.
type Parent struct {
	Type ParentType `json:"type" yaml:"type"`
	ID   string     `json:"id" yaml:"id"`
}

// Properties are page properties in the service's JSON shape.
type Properties map[string]any

// Cover is an external cover image.
type Cover struct {
	URL string `json:"url"`
}

// Page identifies a created page.
type Page struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PageService is the remote service a Publisher drives.
type PageService interface {
	CreatePage(ctx context.Context, parent Parent, properties Properties) (Page, error)
	UpdatePage(ctx context.Context, pageID string, properties Properties, cover *Cover) error
	AppendChildren(ctx context.Context, pageID string, blocks []*block.Block) error
}

// NestedAppender is implemented by services that report the ids of the
// blocks they append. A Publisher needs it only when a block has more
// children than one append call carries: such a block is sent without its
// children, which are then appended to the new block's id.
type NestedAppender interface {
	// AppendBlocks appends blocks under parentID and returns the ids of the
	// created top-level blocks in order.
	AppendBlocks(ctx context.Context, parentID string, blocks []*block.Block) ([]string, error)
}

// SchemaReader is implemented by services that can describe a database.
// When available the Publisher checks the title property before creating
// anything.
type SchemaReader interface {
	// DatabaseProperties returns property types keyed by property name.
	DatabaseProperties(ctx context.Context, databaseID string) (map[string]string, error)
}

// TitleProperties returns properties that set a title under the named
// property.
func TitleProperties(property, title string) Properties {
	return Properties{
		property: map[string]any{
			"title": []any{
				map[string]any{
					"type": "text",
					"text": map[string]any{"content": title},
				},
			},
		},
	}
}
