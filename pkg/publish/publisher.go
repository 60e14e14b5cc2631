package publish

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/gomd2notion/internal/logging"
	"github.com/yaklabco/gomd2notion/pkg/block"
)

const titlePropertyType = "title"

// Publisher drives a PageService to create one page per request.
type Publisher struct {
	service   PageService
	limits    Limits
	batchSize int
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLimits sets the per-block text limits used when flattening.
func WithLimits(limits Limits) Option {
	return func(p *Publisher) {
		p.limits = limits
	}
}

// WithBatchSize sets the number of blocks per append call.
func WithBatchSize(size int) Option {
	return func(p *Publisher) {
		p.batchSize = size
	}
}

// NewPublisher returns a Publisher using the service's default limits.
func NewPublisher(service PageService, opts ...Option) *Publisher {
	p := &Publisher{
		service:   service,
		limits:    DefaultLimits(),
		batchSize: MaxBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns the append batches Publish would send for blocks.
func (p *Publisher) Plan(blocks []*block.Block) [][]*block.Block {
	return Partition(Flatten(blocks, p.limits), p.batchSize)
}

// Publish creates a page under req.Parent, sets its title and cover, and
// appends req.Blocks in order. Configuration problems are reported as
// ErrInvalidConfig before any remote call; service errors are returned
// wrapped but otherwise untouched.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Parent.ID = NormalizeID(req.Parent.ID)

	if err := p.checkTitleProperty(ctx, req); err != nil {
		return nil, err
	}

	batches := p.Plan(req.Blocks)
	if _, ok := p.service.(NestedAppender); !ok {
		for _, batch := range batches {
			if oversized(batch, batchSize(p.batchSize)) {
				return nil, &ConfigError{
					Field:   "blocks",
					Value:   strconv.Itoa(batchSize(p.batchSize)),
					Message: "a block has more children than one append carries and the service cannot append to nested blocks",
				}
			}
		}
	}

	page, err := p.service.CreatePage(ctx, req.Parent, Properties{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	ctx, logger := logging.WithFields(ctx, logging.FieldPage, page.ID)
	logger.Debug("page created", logging.FieldParent, req.Parent.ID)

	if err := p.service.UpdatePage(ctx, page.ID, req.properties(), req.cover()); err != nil {
		return nil, fmt.Errorf("update page %s: %w", page.ID, err)
	}

	for i, batch := range batches {
		logger.Debug("appending batch",
			logging.FieldBatch, i+1,
			logging.FieldBatches, len(batches),
			logging.FieldBlocks, len(batch),
		)
		if err := p.appendBatch(ctx, page.ID, batch); err != nil {
			return nil, fmt.Errorf("append batch %d of %d to page %s: %w", i+1, len(batches), page.ID, err)
		}
	}

	logger.Info("page published",
		logging.FieldURL, page.URL,
		logging.FieldBatches, len(batches),
	)
	return &page, nil
}

// appendBatch appends batch under parentID. Blocks with oversized child
// lists go out bare, and their children follow in batches of their own once
// the service has returned the new block ids.
func (p *Publisher) appendBatch(ctx context.Context, parentID string, batch []*block.Block) error {
	size := batchSize(p.batchSize)
	send, deferred := detachOversized(batch, size)
	if len(deferred) == 0 {
		return p.service.AppendChildren(ctx, parentID, send)
	}

	appender, ok := p.service.(NestedAppender)
	if !ok {
		return fmt.Errorf("append to %s: service cannot append nested blocks", parentID)
	}
	ids, err := appender.AppendBlocks(ctx, parentID, send)
	if err != nil {
		return err
	}
	if len(ids) != len(send) {
		return fmt.Errorf("append to %s: service returned %d ids for %d blocks", parentID, len(ids), len(send))
	}

	logger := logging.FromContext(ctx)
	for _, i := range deferred {
		children := Partition(batch[i].Children, size)
		logger.Debug("appending nested children",
			logging.FieldParent, ids[i],
			logging.FieldBlocks, len(batch[i].Children),
			logging.FieldBatches, len(children),
		)
		for _, nested := range children {
			if err := p.appendBatch(ctx, ids[i], nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkTitleProperty verifies that a database parent has the title column
// the request writes to. It only runs when the service can read schemas and
// the request does not supply its own properties.
func (p *Publisher) checkTitleProperty(ctx context.Context, req Request) error {
	reader, ok := p.service.(SchemaReader)
	if !ok || req.Parent.Type != ParentDatabase || req.Properties != nil {
		return nil
	}

	schema, err := reader.DatabaseProperties(ctx, req.Parent.ID)
	if err != nil {
		return fmt.Errorf("read database %s: %w", req.Parent.ID, err)
	}

	name := req.titleProperty()
	if schema[name] == titlePropertyType {
		return nil
	}

	msg := "database has no title property with this name"
	for prop, typ := range schema {
		if typ == titlePropertyType {
			msg = fmt.Sprintf("%s; its title property is %q", msg, prop)
			break
		}
	}
	return &ConfigError{Field: "title_property", Value: name, Message: msg}
}
