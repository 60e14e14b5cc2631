package config

import (
	"fmt"
	"strings"
)

// ParseParentType reads a placement mode, ignoring case and surrounding space.
func ParseParentType(s string) (ParentType, error) {
	p := ParentType(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid parent type %q; must be one of: page, database", s)
	}
	return p, nil
}

// ParseOutputFormat reads an output format, ignoring case and surrounding space.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid format %q; must be one of: json, yaml, summary", s)
	}
	return f, nil
}
