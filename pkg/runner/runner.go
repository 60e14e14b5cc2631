package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/gomd2notion/pkg/document"
	"github.com/yaklabco/gomd2notion/pkg/publish"
)

// Runner converts discovered documents with a shared Converter. Converter
// holds no per-call state, so workers use it concurrently.
type Runner struct {
	Converter *publish.Converter
}

// New returns a Runner. A nil converter means publish.NewConverter().
func New(converter *publish.Converter) *Runner {
	if converter == nil {
		converter = publish.NewConverter()
	}
	return &Runner{Converter: converter}
}

// Run discovers documents and converts them on a worker pool. Per-file
// failures are recorded in the outcome; the returned error is reserved for
// discovery failures and cancellation. Outcomes are ordered by path no
// matter which worker finished first.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.TitleFromHeading)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, fromHeading bool) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.convert(ctx, path, fromHeading)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// convert loads and converts one document.
func (r *Runner) convert(ctx context.Context, path string, fromHeading bool) FileOutcome {
	outcome := FileOutcome{Path: path}

	doc, err := document.Load(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	title, body, err := doc.Title(ctx, fromHeading)
	if err != nil {
		outcome.Error = fmt.Errorf("title %s: %w", path, err)
		return outcome
	}
	outcome.Title = title

	conv, err := r.Converter.Convert(string(body))
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}
	outcome.Conversion = conv
	return outcome
}
