package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Calibri", cfg.Styles.Body.Font)
	assert.Equal(t, 24.0, cfg.GetHeadingStyle(1).Size)
	assert.Equal(t, 14.0, cfg.GetHeadingStyle(3).Size)
	assert.Equal(t, cfg.Styles.Body, cfg.GetHeadingStyle(7))
	assert.Equal(t, "pad", cfg.Table.ColumnPolicy)
	assert.Equal(t, "scanner", cfg.Parser.Engine)
	assert.True(t, cfg.Scanner.SkipPreamble)
	assert.Equal(t, []string{"*How a focused"}, cfg.Scanner.TaglinePrefixes)
	assert.True(t, cfg.Highlight.Enabled)
	assert.Equal(t, 30, cfg.PDF.Timeout)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte(`
table:
  columnPolicy: reject
scanner:
  taglinePrefixes: ["*How a focused"]
title:
  title: Your Enterprise Data Is Already AI-Ready
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "reject", cfg.Table.ColumnPolicy)
	assert.Equal(t, []string{"*How a focused"}, cfg.Scanner.TaglinePrefixes)
	assert.Equal(t, "Your Enterprise Data Is Already AI-Ready", cfg.Title.Title)
	// 未覆盖的值保持默认
	assert.Equal(t, "1A568E", cfg.Table.HeaderFill)
	assert.Equal(t, "Consolas", cfg.Styles.CodeBlock.Font)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parser:\n  engine: pandoc\n"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "pandoc")

	require.NoError(t, os.WriteFile(path, []byte("table: [unclosed"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateNormalizesEnums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parser.Engine = " Goldmark"
	cfg.Table.ColumnPolicy = "Truncate "
	cfg.Log.Level = "WARNING"
	cfg.Log.Format = "JSON"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "goldmark", cfg.Parser.Engine)
	assert.Equal(t, "truncate", cfg.Table.ColumnPolicy)
	assert.Equal(t, "warning", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	cfg.Table.ColumnPolicy = "squash"
	assert.ErrorContains(t, cfg.Validate(), "squash")
}
