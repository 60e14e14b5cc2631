// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldAddr   = "addr"
	FieldLine   = "line"

	// Configuration fields.
	FieldConfig     = "config"
	FieldParentType = "parent_type"
	FieldParent     = "parent"
	FieldDryRun     = "dry_run"

	// Publishing fields.
	FieldPage    = "page"
	FieldURL     = "url"
	FieldTitle   = "title"
	FieldBatch   = "batch"
	FieldBatches = "batches"
	FieldBlocks  = "blocks"
	FieldStatus  = "status"
	FieldCode    = "code"

	// Batch conversion fields.
	FieldFiles   = "files"
	FieldErrored = "errored"
	FieldChanged = "changed"

	// HTTP fields.
	FieldMethod    = "method"
	FieldRoute     = "route"
	FieldDuration  = "duration"
	FieldRequestID = "request_id"

	// Version fields.
	FieldVersion    = "version"
	FieldCommit     = "commit"
	FieldBuilt      = "built"
	FieldAPIVersion = "api_version"
)
