package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yaklabco/gomd2notion/internal/ui/pretty"
	"github.com/yaklabco/gomd2notion/pkg/notion"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

//nolint:gochecknoglobals // Read-only text.
var missingParentHint = []string{
	"Pass PARENT_ID, set parent_id in the front matter, or set NOTION_PARENT_PAGE_ID.",
	"After creating the integration, open the parent page in Notion,",
	"choose '...' then 'Add connections', and select the integration.",
}

// hint is guidance for one class of failure.
type hint struct {
	title string
	lines []string
}

// hintFor returns guidance for a publish failure, or false when there is
// nothing useful to add to the error itself.
func hintFor(err error, req publish.Request) (hint, bool) {
	var apiErr *notion.APIError
	if !errors.As(err, &apiErr) {
		return hint{}, false
	}

	msg := strings.ToLower(apiErr.Message)
	switch {
	case apiErr.Code == notion.CodeUnauthorized || strings.Contains(msg, "api token is invalid"):
		return hint{
			title: "the integration token was rejected",
			lines: []string{
				"Check NOTION_SECRET in the environment or in .env.",
				"Create an integration at https://www.notion.so/my-integrations if needed.",
				"Make sure the parent page is shared with the integration.",
			},
		}, true

	case apiErr.Code == notion.CodeValidation && strings.Contains(msg, "should be a valid uuid"):
		return hint{
			title: fmt.Sprintf("%q is not a valid page id", req.Parent.ID),
			lines: []string{
				"Open the page in Notion and use 'Share' then 'Copy link'.",
				"The id is the 32-character code at the end of the link.",
				"The whole link is also accepted as PARENT_ID.",
			},
		}, true

	case apiErr.Code == notion.CodeObjectNotFound:
		return hint{
			title: fmt.Sprintf("parent %q was not found", req.Parent.ID),
			lines: []string{
				"Verify the id and that the page has not been deleted.",
				"Make sure the page is shared with the integration.",
			},
		}, true

	case apiErr.Code == notion.CodeRestrictedResource || apiErr.Status == http.StatusForbidden:
		return hint{
			title: "the integration cannot access this page",
			lines: []string{
				"Open the parent page in Notion.",
				"Choose '...' then 'Add connections' and select the integration.",
			},
		}, true

	case strings.Contains(msg, "cover"):
		return hint{
			title: "the cover image URL was rejected",
			lines: []string{
				"Use a public http or https URL to an image file.",
				"Omit --cover-url to publish without a cover.",
			},
		}, true
	}

	return hint{}, false
}

// printHint writes guidance for err to w when there is any.
func printHint(w io.Writer, styles *pretty.Styles, err error, req publish.Request) {
	if h, ok := hintFor(err, req); ok {
		fmt.Fprint(w, styles.FormatHint(h.title, h.lines))
	}
}
