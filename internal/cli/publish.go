package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/internal/ui/pretty"
	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/config"
	"github.com/yaklabco/gomd2notion/pkg/document"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

type publishFlags struct {
	title             string
	coverURL          string
	printPageInfo     bool
	printDatabaseInfo bool
}

func newPublishCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &publishFlags{}

	cmd := &cobra.Command{
		Use:   "publish FILE [PARENT_ID]",
		Short: "Publish a Markdown file as a new page",
		Long:  publishLongDescription,
		Args:  usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, args, cfg, flags)
		},
	}

	addPublishFlags(cmd, cfg, flags)

	return cmd
}

const publishLongDescription = `Convert a Markdown file and publish it as a new page.

The page is created under PARENT_ID, which may be a dashed or compact id or a
page link. Without PARENT_ID the document's front matter is used, then
NOTION_PARENT_PAGE_ID. The integration token is read from NOTION_SECRET.

The title comes from --title, then the front matter, then (with
--title-from-heading) the first heading, then the file name.

Examples:
  gomd2notion publish notes.md 0123456789abcdef0123456789abcdef
  gomd2notion publish notes.md --title "Weekly notes" --cover-url https://example.com/c.png
  gomd2notion publish row.md DB_ID --parent-type database --title-property Task
  gomd2notion publish notes.md --dry-run --print-page-info`

func addPublishFlags(cmd *cobra.Command, cfg *config.Config, flags *publishFlags) {
	cmd.Flags().StringVar(&flags.title, "title", "", "page title (default: front matter, heading or file name)")
	cmd.Flags().StringVar(&flags.coverURL, "cover-url", "", "external image URL used as the page cover")
	cmd.Flags().Var(newParentTypeValue(&cfg.Notion.ParentType), "parent-type", "place the page under a page or a database")
	cmd.Flags().StringVar(&cfg.Notion.TitleProperty, "title-property", "", "title property name for database parents")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "convert and plan batches without calling the API")
	cmd.Flags().BoolVar(&flags.printPageInfo, "print-page-info", false, "print a detailed summary of the page")
	cmd.Flags().BoolVar(&flags.printDatabaseInfo, "print-database-info", false,
		"print the parent database's properties (database parents only)")
	cmd.Flags().Bool("title-from-heading", false, "use the first heading as the title and drop it from the body")
	cmd.Flags().Bool("strict-nesting", false, "fail on list items indented past any parent item")
	cmd.Flags().Bool("detect-language", true, "guess the language of unlabeled code fences")
	cmd.Flags().IntVar(&cfg.Convert.BatchSize, "batch-size", 0, "blocks per append request (1-100)")
	cmd.Flags().IntVar(&cfg.Convert.TextLimit, "text-limit", 0, "maximum characters per text block")
}

func runPublish(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *publishFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	path := args[0]
	doc, err := document.Load(ctx, path)
	if err != nil {
		return err
	}

	optionalBool(cmd.Flags(), "title-from-heading", &cliCfg.Convert.TitleFromHeading)
	optionalBool(cmd.Flags(), "strict-nesting", &cliCfg.Convert.StrictNesting)
	optionalBool(cmd.Flags(), "detect-language", &cliCfg.Convert.DetectLanguage)
	applyDocument(cliCfg, doc, args)

	cfg, err := loadSettings(cmd, cliCfg)
	if err != nil {
		return err
	}

	title, body, err := doc.Title(ctx, config.Enabled(cfg.Convert.TitleFromHeading))
	if err != nil {
		return err
	}
	if flags.title != "" {
		title = flags.title
	}

	conv, err := newConverter(cfg).Convert(string(body))
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}

	styles := pretty.NewStyles(colorEnabled(cmd, cmd.ErrOrStderr()))
	for _, w := range conv.Warnings {
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatWarning(path, w.Line, w.Message))
	}

	req := publish.Request{
		Title:         title,
		Parent:        publish.Parent{Type: publish.ParentType(cfg.Notion.ParentType), ID: cfg.Notion.ParentID},
		TitleProperty: cfg.Notion.TitleProperty,
		CoverURL:      coverURL(flags, doc),
		Blocks:        conv.Tree,
	}
	if doc.Meta.Properties != nil {
		req.Properties = publish.Properties(doc.Meta.Properties)
	}

	stats := pretty.PublishStats{
		Source:   path,
		Title:    title,
		Blocks:   len(conv.Blocks),
		Total:    block.Count(conv.Blocks),
		Warnings: len(conv.Warnings),
		DryRun:   cfg.DryRun,
	}

	out := cmd.OutOrStdout()
	outStyles := pretty.NewStyles(colorEnabled(cmd, out))

	if cfg.DryRun {
		stats.Batches = len(newPublisher(cfg, nil).Plan(conv.Tree))
		if req.Parent.ID != "" {
			if err := req.Validate(); err != nil {
				return err
			}
		}
		writeStats(out, outStyles, stats, flags.printPageInfo)
		return nil
	}

	if req.Parent.ID == "" {
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatHint("no parent page", missingParentHint))
		return ErrMissingParent
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if flags.printDatabaseInfo && req.Parent.Type == publish.ParentDatabase {
		schema, err := client.DatabaseProperties(ctx, publish.NormalizeID(req.Parent.ID))
		if err != nil {
			printHint(cmd.ErrOrStderr(), styles, err, req)
			return fmt.Errorf("read database: %w", err)
		}
		writeSchema(out, outStyles, schema)
	}

	publisher := newPublisher(cfg, client)
	stats.Batches = len(publisher.Plan(conv.Tree))

	page, err := publisher.Publish(ctx, req)
	if err != nil {
		printHint(cmd.ErrOrStderr(), styles, err, req)
		return err
	}

	stats.PageID = page.ID
	stats.PageURL = page.URL
	writeStats(out, outStyles, stats, flags.printPageInfo)
	return nil
}

// applyDocument fills placement settings from the command line arguments,
// then from the document's front matter, without overriding flags.
func applyDocument(cliCfg *config.Config, doc *document.Document, args []string) {
	if len(args) > 1 {
		cliCfg.Notion.ParentID = args[1]
	}
	if cliCfg.Notion.ParentID == "" {
		cliCfg.Notion.ParentID = doc.Meta.ParentID
	}
	if cliCfg.Notion.ParentType == "" && doc.Meta.ParentType != "" {
		if p, err := config.ParseParentType(doc.Meta.ParentType); err == nil {
			cliCfg.Notion.ParentType = p
		} else {
			// Passed through so validation reports it.
			cliCfg.Notion.ParentType = config.ParentType(doc.Meta.ParentType)
		}
	}
	if cliCfg.Notion.TitleProperty == "" {
		cliCfg.Notion.TitleProperty = doc.Meta.TitleProperty
	}
}

func coverURL(flags *publishFlags, doc *document.Document) string {
	if flags.coverURL != "" {
		return flags.coverURL
	}
	return doc.Meta.Cover
}

func writeStats(w io.Writer, styles *pretty.Styles, stats pretty.PublishStats, detailed bool) {
	if detailed {
		fmt.Fprint(w, styles.FormatSummary(stats))
		return
	}
	fmt.Fprint(w, styles.FormatSummaryOneLine(stats))
}

func writeSchema(w io.Writer, styles *pretty.Styles, schema map[string]string) {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, styles.SummaryTitle.Render("Database properties"))
	for _, name := range names {
		fmt.Fprintf(w, "  %-24s %s\n", name, styles.Dim.Render(schema[name]))
	}
}
