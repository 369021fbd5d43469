package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "posts/hello.docx", defaultOutput("posts/hello.md"))
	assert.Equal(t, "README.docx", defaultOutput("README"))
}

func TestSetup(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("table:\n  columnPolicy: truncate\nlog:\n  level: warn\n"), 0644))

	cfg, log, err := setup(&Globals{Config: cfgPath, LogFormat: "json"})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, "truncate", cfg.Table.ColumnPolicy)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "Calibri", cfg.Styles.Body.Font)

	_, _, err = setup(&Globals{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestConvertCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "post.md")
	require.NoError(t, os.WriteFile(src, []byte("## Hi\n\ntext\n"), 0644))

	cmd := &ConvertCmd{Source: src, Output: filepath.Join(dir, "post.html"), Title: "Post"}
	require.NoError(t, cmd.Run(&Globals{LogLevel: "error"}))
	data, err := os.ReadFile(filepath.Join(dir, "post.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<p class="title">Post</p>`)

	require.NoError(t, (&ConvertCmd{Source: src}).Run(&Globals{LogLevel: "error"}))
	assert.FileExists(t, filepath.Join(dir, "post.docx"))
}

func TestCLIParsesGlobalsAndCommand(t *testing.T) {
	src := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(src, []byte("text\n"), 0644))

	cli := CLI
	p, err := kong.New(&cli, kong.Name("blog2docx"))
	require.NoError(t, err)
	ctx, err := p.Parse([]string{"--log-level", "debug", "convert", src, "--policy", "truncate"})
	require.NoError(t, err)
	assert.Equal(t, "convert <source>", ctx.Command())
	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, "truncate", cli.Convert.Policy)
}
