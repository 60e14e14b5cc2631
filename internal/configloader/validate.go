package configloader

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yaklabco/gomd2notion/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "convert.batch_size").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Zero values are
// treated as unset so partial file configs validate too.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	n := cfg.Notion
	if n.ParentType != "" && !n.ParentType.IsValid() {
		result.fail("notion.parent_type", n.ParentType,
			"invalid parent type %q; must be one of: page, database", n.ParentType)
	}
	if n.APIURL != "" {
		if u, err := url.Parse(n.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
			result.fail("notion.api_url", n.APIURL, "invalid URL %q", n.APIURL)
		}
	}
	if n.Timeout < 0 {
		result.fail("notion.timeout", n.Timeout, "timeout must be positive")
	} else if n.Timeout > 0 && n.Timeout < time.Second {
		result.warn("notion.timeout", n.Timeout, "timeout %s is unusually short", n.Timeout)
	}
	if n.ParentType == config.ParentPage && n.TitleProperty != "" && n.TitleProperty != config.DefaultTitleProperty {
		result.warn("notion.title_property", n.TitleProperty,
			"title_property only applies when parent_type is database")
	}

	c := cfg.Convert
	if c.TextLimit < 0 {
		result.fail("convert.text_limit", c.TextLimit, "text_limit must be positive")
	}
	if c.BatchSize < 0 || c.BatchSize > config.MaxBatchSize {
		result.fail("convert.batch_size", c.BatchSize, "batch_size must be between 1 and %d", config.MaxBatchSize)
	}
	if c.MaxSpans < 0 {
		result.fail("convert.max_spans", c.MaxSpans, "max_spans must be positive")
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: json, yaml, summary", cfg.Format)
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
