package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover resolves opts.Paths to the Markdown documents they name. Files
// given explicitly are kept if their extension matches; directories are
// walked, skipping hidden entries and excluded paths. The result holds
// absolute paths, sorted and without duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:     ctx,
		workDir: workDir,
		opts:    opts,
		exts:    opts.extensions(),
		seen:    make(map[string]struct{}),
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if w.hasExtension(abs) {
				w.add(abs)
			}
			continue
		}
		if err := w.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

type walker struct {
	ctx     context.Context
	workDir string
	opts    Options
	exts    []string
	seen    map[string]struct{}
	files   []string
}

func (w *walker) add(p string) {
	if _, ok := w.seen[p]; ok {
		return
	}
	w.seen[p] = struct{}{}
	w.files = append(w.files, p)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || w.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // broken links are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// WalkDir does not follow links, so walking the target cannot loop
				// back through this entry.
				return w.walk(target)
			}
		}

		if w.hasExtension(p) && !w.excluded(p) {
			w.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (w *walker) hasExtension(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return slices.ContainsFunc(w.exts, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

func (w *walker) excluded(p string) bool {
	rel, err := filepath.Rel(w.workDir, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)
	return slices.ContainsFunc(w.opts.ExcludeGlobs, func(pattern string) bool {
		return matchGlob(rel, filepath.ToSlash(pattern))
	})
}

// matchGlob reports whether rel matches pattern. A pattern without a slash
// also matches the base name alone, so "*.draft.md" excludes drafts in any
// directory. "**" matches zero or more whole segments.
func matchGlob(rel, pattern string) bool {
	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(rel, "/"), strings.Split(pattern, "/"))
}

func matchSegments(parts, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(parts); i++ {
				if matchSegments(parts[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], parts[0]); err != nil || !ok {
			return false
		}
		parts, pattern = parts[1:], pattern[1:]
	}
	return len(parts) == 0
}
