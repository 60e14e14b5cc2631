package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// vocabulary is the set of code languages accepted by the publishing service.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vocabulary = map[string]struct{}{
	"abap": {}, "arduino": {}, "bash": {}, "basic": {}, "c": {}, "clojure": {},
	"coffeescript": {}, "c++": {}, "c#": {}, "css": {}, "dart": {}, "diff": {},
	"docker": {}, "elixir": {}, "elm": {}, "erlang": {}, "flow": {}, "fortran": {},
	"f#": {}, "gherkin": {}, "glsl": {}, "go": {}, "graphql": {}, "groovy": {},
	"haskell": {}, "html": {}, "java": {}, "javascript": {}, "json": {}, "julia": {},
	"kotlin": {}, "latex": {}, "less": {}, "lisp": {}, "livescript": {}, "lua": {},
	"makefile": {}, "markdown": {}, "markup": {}, "matlab": {}, "mermaid": {},
	"nix": {}, "objective-c": {}, "ocaml": {}, "pascal": {}, "perl": {}, "php": {},
	"plain text": {}, "powershell": {}, "prolog": {}, "protobuf": {}, "python": {},
	"r": {}, "reason": {}, "ruby": {}, "rust": {}, "sass": {}, "scala": {},
	"scheme": {}, "scss": {}, "shell": {}, "sql": {}, "swift": {}, "typescript": {},
	"vb.net": {}, "verilog": {}, "vhdl": {}, "visual basic": {}, "webassembly": {},
	"xml": {}, "yaml": {},
}

// shorthands covers common fence labels that are file extensions rather
// than language aliases.
//
//nolint:gochecknoglobals // Read-only lookup table.
var shorthands = map[string]string{
	"py":        "python",
	"sh":        "bash",
	"zsh":       "bash",
	"js":        "javascript",
	"ts":        "typescript",
	"yml":       "yaml",
	"cpp":       "c++",
	"cs":        "c#",
	"md":        "markdown",
	"tex":       "latex",
	"txt":       PlainText,
	"text":      PlainText,
	"plaintext": PlainText,
	"objc":      "objective-c",
}

// enryNames maps go-enry language names whose lowercase form is not in the
// vocabulary.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]string{
	"Shell":             "bash",
	"Dockerfile":        "docker",
	"TeX":               "latex",
	"Protocol Buffer":   "protobuf",
	"Visual Basic .NET": "vb.net",
	"Common Lisp":       "lisp",
	"Emacs Lisp":        "lisp",
	"Text":              PlainText,
}

// Normalize maps a fence label onto the service vocabulary. It returns ""
// for an empty label and PlainText for a label it cannot place. Attributes
// after the first word ("python {linenos}") are ignored.
func Normalize(fence string) string {
	fields := strings.Fields(strings.ToLower(fence))
	if len(fields) == 0 {
		return ""
	}
	label := fields[0]

	if _, ok := vocabulary[label]; ok {
		return label
	}
	if lang, ok := shorthands[label]; ok {
		return lang
	}
	if name, ok := enry.GetLanguageByAlias(label); ok {
		return fromEnry(name)
	}
	for _, name := range enry.GetLanguagesByExtension("file."+label, nil, nil) {
		if lang := fromEnry(name); lang != PlainText {
			return lang
		}
	}
	return PlainText
}

// fromEnry converts a go-enry language name into the service vocabulary.
func fromEnry(name string) string {
	if lang, ok := enryNames[name]; ok {
		return lang
	}
	lower := strings.ToLower(name)
	if _, ok := vocabulary[lower]; ok {
		return lower
	}
	return PlainText
}

// Resolver picks a code block language from its fence label and, when
// DetectContent is set, from its content.
type Resolver struct {
	DetectContent bool
}

// Language resolves one block. Its signature matches parser.LanguageFunc.
func (r Resolver) Language(fence, content string) string {
	if lang := Normalize(fence); lang != "" {
		return lang
	}
	if r.DetectContent {
		return Detect([]byte(content))
	}
	return PlainText
}
