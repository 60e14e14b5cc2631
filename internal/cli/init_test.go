package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomd2notion/pkg/config"
)

func TestInit_WritesLoadableTemplate(t *testing.T) {
	dir := workspace(t, nil)

	_, _, err := execute("init", "--parent-id", parentID, "--parent-type", "database")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gomd2notion.yml"))
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, parentID, cfg.Notion.ParentID)
	assert.Equal(t, config.ParentDatabase, cfg.Notion.ParentType)
}

func TestInit_JSON(t *testing.T) {
	dir := workspace(t, nil)

	_, _, err := execute("init", "--format", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gomd2notion.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"parent_type": "page"`)
}

func TestInit_ExistingFile(t *testing.T) {
	dir := workspace(t, nil)
	path := filepath.Join(dir, ".gomd2notion.yml")
	writeFile(t, path, "notion: {}\n")

	_, _, err := execute("init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute("init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gomd2notion configuration")
}

func TestInit_InvalidFormat(t *testing.T) {
	workspace(t, nil)

	_, _, err := execute("init", "--format", "toml")
	require.Error(t, err)
}
