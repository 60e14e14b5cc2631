package cli

import (
	"errors"

	"github.com/yaklabco/gomd2notion/internal/configloader"
	"github.com/yaklabco/gomd2notion/pkg/document"
	"github.com/yaklabco/gomd2notion/pkg/fsutil"
	"github.com/yaklabco/gomd2notion/pkg/notion"
	"github.com/yaklabco/gomd2notion/pkg/parser"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

// Exit codes for gomd2notion.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRemoteError indicates the service rejected a request.
	ExitRemoteError = 1

	// ExitConversionError indicates the document could not be converted
	// (strict nesting).
	ExitConversionError = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates invalid configuration or publish settings.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError
	var apiErr *notion.APIError

	switch {
	case errors.As(err, &apiErr):
		return ExitRemoteError
	case errors.Is(err, parser.ErrMalformedNesting):
		return ExitConversionError
	case errors.Is(err, publish.ErrInvalidConfig),
		errors.As(err, &validationErr),
		errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrMissingParent):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, document.ErrEmpty):
		return ExitIOError
	case isUsageError(err):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
