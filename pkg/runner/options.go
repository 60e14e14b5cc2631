// Package runner converts many Markdown documents concurrently.
package runner

// Options controls which documents a run picks up and how it converts them.
type Options struct {
	// Paths are files or directories to convert. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and exclude globs. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions lists the file extensions, with leading dot, treated as
	// Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to
	// WorkingDir. "**" matches any number of path segments.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs caps the number of concurrent conversions. 0 or negative means
	// GOMAXPROCS.
	Jobs int

	// TitleFromHeading takes each page title from the document's first
	// heading and drops that heading from the converted body.
	TitleFromHeading bool
}

// DefaultExtensions returns the extensions recognized when none are set.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
