package runner

import (
	"github.com/yaklabco/gomd2notion/pkg/block"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

// FileOutcome is the conversion of one discovered document.
type FileOutcome struct {
	// Path is the absolute path of the source.
	Path string

	// Title is the page title the document would be published under.
	Title string

	// Conversion is nil when Error is set.
	Conversion *publish.Conversion

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesConverted  int
	FilesErrored    int

	// Blocks counts top-level blocks after splitting; TotalBlocks includes
	// nested children.
	Blocks      int
	TotalBlocks int
	Warnings    int
}

// Result holds outcomes in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any document failed to convert.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Conversion == nil {
		return
	}

	r.Stats.FilesConverted++
	r.Stats.Blocks += len(outcome.Conversion.Blocks)
	r.Stats.TotalBlocks += block.Count(outcome.Conversion.Blocks)
	r.Stats.Warnings += len(outcome.Conversion.Warnings)
}
