package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yaklabco/gomd2notion/pkg/config"
)

// envVarPrefix is the prefix for gomd2notion-specific environment variables.
const envVarPrefix = "GOMD2NOTION_"

// Variables shared with other Notion tooling, read without the prefix.
const (
	EnvToken        = "NOTION_SECRET"
	EnvParentPageID = "NOTION_PARENT_PAGE_ID"
)

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names to config fields. Unprefixed
// names are applied first so GOMD2NOTION_PARENT_ID wins over
// NOTION_PARENT_PAGE_ID.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	EnvToken:                            {field: "token", typ: envTypeString, help: "Integration token"},
	EnvParentPageID:                     {field: "notion.parent_id", typ: envTypeString, help: "Default parent page id"},
	envVarPrefix + "PARENT_ID":          {field: "notion.parent_id", typ: envTypeString, help: "Parent page or database id"},
	envVarPrefix + "PARENT_TYPE":        {field: "notion.parent_type", typ: envTypeString, help: "Placement mode: page or database"},
	envVarPrefix + "TITLE_PROPERTY":     {field: "notion.title_property", typ: envTypeString, help: "Database title property name"},
	envVarPrefix + "API_URL":            {field: "notion.api_url", typ: envTypeString, help: "API base URL"},
	envVarPrefix + "API_VERSION":        {field: "notion.api_version", typ: envTypeString, help: "Notion-Version header"},
	envVarPrefix + "TIMEOUT":            {field: "notion.timeout", typ: envTypeDuration, help: "Per-request timeout, e.g. 30s"},
	envVarPrefix + "TEXT_LIMIT":         {field: "convert.text_limit", typ: envTypeInt, help: "Visible characters per block"},
	envVarPrefix + "BATCH_SIZE":         {field: "convert.batch_size", typ: envTypeInt, help: "Blocks per append request (1-100)"},
	envVarPrefix + "MAX_SPANS":          {field: "convert.max_spans", typ: envTypeInt, help: "Rich-text spans per block"},
	envVarPrefix + "DETECT_LANGUAGE":    {field: "convert.detect_language", typ: envTypeBool, help: "Classify unlabeled code fences"},
	envVarPrefix + "TITLE_FROM_HEADING": {field: "convert.title_from_heading", typ: envTypeBool, help: "Use the first heading as title"},
	envVarPrefix + "STRICT_NESTING":     {field: "convert.strict_nesting", typ: envTypeBool, help: "Fail on malformed list nesting"},
	envVarPrefix + "SERVER_ADDR":        {field: "server.addr", typ: envTypeString, help: "HTTP API listen address"},
	envVarPrefix + "FORMAT":             {field: "format", typ: envTypeString, help: "blocks output: json, yaml, or summary"},
	envVarPrefix + "DRY_RUN":            {field: "dry_run", typ: envTypeBool, help: "Convert without calling the API"},
}

// envLookup resolves one variable, like os.LookupEnv.
type envLookup func(key string) (string, bool)

// LoadFromEnv applies environment variable overrides to the configuration.
func LoadFromEnv(cfg *config.Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

// ReadDotEnv parses a dotenv file without touching the process environment.
func ReadDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return vars, nil
}

// withDotEnv falls back to vars for keys the real environment leaves unset
// or empty.
func withDotEnv(vars map[string]string) envLookup {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}

func applyEnv(cfg *config.Config, lookup envLookup) error {
	if cfg == nil {
		return nil
	}

	for _, envVar := range sortedEnvVars() {
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[envVar], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		cfg.Notion.Timeout = d
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "token":
		cfg.Token = value
	case "notion.parent_id":
		cfg.Notion.ParentID = value
	case "notion.parent_type":
		cfg.Notion.ParentType = config.ParentType(value)
	case "notion.title_property":
		cfg.Notion.TitleProperty = value
	case "notion.api_url":
		cfg.Notion.APIURL = value
	case "notion.api_version":
		cfg.Notion.APIVersion = value
	case "server.addr":
		cfg.Server.Addr = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "convert.detect_language":
		cfg.Convert.DetectLanguage = config.Bool(value)
	case "convert.title_from_heading":
		cfg.Convert.TitleFromHeading = config.Bool(value)
	case "convert.strict_nesting":
		cfg.Convert.StrictNesting = config.Bool(value)
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "convert.text_limit":
		cfg.Convert.TextLimit = value
	case "convert.batch_size":
		cfg.Convert.BatchSize = value
	case "convert.max_spans":
		cfg.Convert.MaxSpans = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func sortedEnvVars() []string {
	names := make([]string, 0, len(envMappings))
	for name := range envMappings {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := strings.HasPrefix(names[i], envVarPrefix), strings.HasPrefix(names[j], envVarPrefix)
		if pi != pj {
			return !pi
		}
		return names[i] < names[j]
	})
	return names
}

// GetEnvVarName returns the first environment variable that sets a config
// field, or "" when none exists.
func GetEnvVarName(field string) string {
	for _, name := range sortedEnvVars() {
		if envMappings[name].field == field {
			return name
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for name, mapping := range envMappings {
		out[name] = mapping.help
	}
	return out
}
