package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomd2notion/pkg/config"
)

func TestParseParentType(t *testing.T) {
	tests := []struct {
		in      string
		want    config.ParentType
		wantErr bool
	}{
		{"page", config.ParentPage, false},
		{" Database ", config.ParentDatabase, false},
		{"workspace", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseParentType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    config.OutputFormat
		wantErr bool
	}{
		{"json", config.FormatJSON, false},
		{"YAML", config.FormatYAML, false},
		{"summary", config.FormatSummary, false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseOutputFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
