// Package config defines core configuration types for gomd2notion.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "time"

// Defaults used by NewConfig.
const (
	DefaultTitleProperty = "Name"
	DefaultAPIURL        = "https://api.notion.com/v1"
	DefaultAPIVersion    = "2022-06-28"
	DefaultTimeout       = 30 * time.Second
	DefaultTextLimit     = 2000
	DefaultBatchSize     = 100
	DefaultMaxSpans      = 100
	DefaultServerAddr    = ":8080"

	// MaxBatchSize is the most blocks one append call accepts.
	MaxBatchSize = 100
)

// ParentType says where a new page is placed.
type ParentType string

const (
	ParentPage     ParentType = "page"
	ParentDatabase ParentType = "database"
)

// IsValid returns true if the parent type is known.
func (p ParentType) IsValid() bool {
	switch p {
	case ParentPage, ParentDatabase:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how the blocks command renders its result.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatSummary:
		return true
	default:
		return false
	}
}

// NotionConfig holds the publishing target and API settings.
type NotionConfig struct {
	ParentID      string        `yaml:"parent_id,omitempty"`
	ParentType    ParentType    `yaml:"parent_type,omitempty"`
	TitleProperty string        `yaml:"title_property,omitempty"`
	APIURL        string        `yaml:"api_url,omitempty"`
	APIVersion    string        `yaml:"api_version,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
}

// ConvertConfig controls markdown conversion. Booleans are pointers so a
// config file can turn a default off.
type ConvertConfig struct {
	TextLimit        int   `yaml:"text_limit,omitempty"`
	BatchSize        int   `yaml:"batch_size,omitempty"`
	MaxSpans         int   `yaml:"max_spans,omitempty"`
	DetectLanguage   *bool `yaml:"detect_language,omitempty"`
	TitleFromHeading *bool `yaml:"title_from_heading,omitempty"`
	StrictNesting    *bool `yaml:"strict_nesting,omitempty"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Notion  NotionConfig  `yaml:"notion"`
	Convert ConvertConfig `yaml:"convert"`
	Server  ServerConfig  `yaml:"server"`

	// CLI-level options (not persisted to config files).

	// Token is the integration secret. It is only read from the environment.
	Token string `yaml:"-"`

	// Format is the output format of the blocks command.
	Format OutputFormat `yaml:"-"`

	// DryRun converts without calling the API.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Notion: NotionConfig{
			ParentType:    ParentPage,
			TitleProperty: DefaultTitleProperty,
			APIURL:        DefaultAPIURL,
			APIVersion:    DefaultAPIVersion,
			Timeout:       DefaultTimeout,
		},
		Convert: ConvertConfig{
			TextLimit:        DefaultTextLimit,
			BatchSize:        DefaultBatchSize,
			MaxSpans:         DefaultMaxSpans,
			DetectLanguage:   Bool(true),
			TitleFromHeading: Bool(false),
			StrictNesting:    Bool(false),
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Format: FormatJSON,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Enabled dereferences an optional flag; nil means off.
func Enabled(b *bool) bool {
	return b != nil && *b
}
