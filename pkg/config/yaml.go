package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of every YAML document gomd2notion writes.
const yamlIndent = 2

// FromYAML decodes a configuration file. JSON files decode as well. Unset
// fields stay at their zero value so the result can be merged over defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// EncodeYAML writes v to w as a YAML document.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

// Clone returns a deep copy; the optional flags are copied, not shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	for _, p := range []**bool{
		&clone.Convert.DetectLanguage,
		&clone.Convert.TitleFromHeading,
		&clone.Convert.StrictNesting,
	} {
		if *p != nil {
			*p = Bool(**p)
		}
	}
	return &clone
}
