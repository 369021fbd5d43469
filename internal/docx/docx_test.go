package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog2docx/internal/config"
	"blog2docx/internal/document"
)

var sampleBlocks = document.Document{
	&document.Heading{Level: 3, Text: "Title"},
	&document.Paragraph{Runs: document.Runs{{Text: "bold", Bold: true}, {Text: " and "}, {Text: "italic", Italic: true}}},
	&document.ListItem{Ordered: true, Number: "2", Lead: "Speed", Separator: " — ", Runs: document.Runs{{Text: "fast"}}},
	&document.ListItem{Runs: document.Runs{{Text: "bullet"}}},
	&document.CodeBlock{Language: "go", Text: "x := 1"},
	&document.CodeBlock{Text: "plain <code>"},
	&document.Table{Rows: [][]string{{"A", "B"}, {"1", "2"}}},
	&document.Rule{},
}

// readPart 从DOCX包中读取一个部件
func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func paragraphText(p *Paragraph) string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func TestRenderDocument(t *testing.T) {
	cfg := config.DefaultConfig()
	doc := NewRenderer(cfg, nil).Render(sampleBlocks)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	body := readPart(t, buf.Bytes(), "word/document.xml")

	assert.Contains(t, body, `<w:pStyle w:val="Heading3"/>`)
	assert.Contains(t, body, `<w:t>Title</w:t>`)
	assert.Contains(t, body, `<w:t xml:space="preserve"> and </w:t>`)
	assert.Contains(t, body, `<w:t xml:space="preserve">2. </w:t>`)
	assert.Contains(t, body, `<w:t>Speed</w:t>`)
	assert.Contains(t, body, `<w:t xml:space="preserve">• </w:t>`)
	assert.Contains(t, body, `plain &lt;code&gt;`)
	assert.Contains(t, body, `w:fill="1A568E"`)
	assert.Contains(t, body, `<w:color w:val="FFFFFF"/>`)
	assert.Contains(t, body, `<w:tblHeader/>`)
	assert.Contains(t, body, `<w:bottom w:val="single" w:sz="6"`)
	assert.Contains(t, body, `<w:keepNext/>`)
	assert.Contains(t, body, `<w:vAlign w:val="center"/>`)

	styles := readPart(t, buf.Bytes(), "word/styles.xml")
	assert.Contains(t, styles, `w:styleId="Heading1"`)
	assert.Contains(t, styles, `w:styleId="Code"`)
	assert.NotContains(t, styles, `w:styleId="Heading4"`)
}

func TestRenderTitleBlock(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Title.Title = "Your Data"
	cfg.Title.Tagline = "How it works"
	doc := NewRenderer(cfg, nil).Render(nil)

	elems := doc.Elements()
	require.Len(t, elems, 3)
	assert.Equal(t, "Title", elems[0].(*Paragraph).StyleID)
	assert.Equal(t, "center", elems[0].(*Paragraph).Align)
	assert.Contains(t, elems[1].ToXML(), `<w:jc w:val="center"/>`)
	assert.Equal(t, "Tagline", elems[1].(*Paragraph).StyleID)
	assert.True(t, elems[2].(*Paragraph).HorizontalRule)
}

func TestRenderWithoutTitle(t *testing.T) {
	doc := NewRenderer(config.DefaultConfig(), nil).Render(document.Document{&document.Rule{}})
	assert.Len(t, doc.Elements(), 1)
}

func TestRenderCodeHighlighting(t *testing.T) {
	cfg := config.DefaultConfig()
	r := NewRenderer(cfg, nil)

	highlighted := r.codeBlock(&document.CodeBlock{Language: "go", Text: "package main\nfunc f() {}"})
	cell := highlighted.Rows[0].Cells[0]
	require.Len(t, cell.Paragraphs, 2)
	assert.Equal(t, "package main", paragraphText(cell.Paragraphs[0]))
	assert.Equal(t, "func f() {}", paragraphText(cell.Paragraphs[1]))
	assert.Equal(t, "F6F8FA", cell.Shading)

	cfg.Highlight.Enabled = false
	plain := r.codeBlock(&document.CodeBlock{Language: "go", Text: "a\n\nb"})
	paras := plain.Rows[0].Cells[0].Paragraphs
	require.Len(t, paras, 3)
	assert.Equal(t, "Consolas", paras[0].Runs[0].FontName)
	assert.Empty(t, paras[1].Runs)
}

func TestHighlightUnknownLanguage(t *testing.T) {
	cell := &TableCell{}
	err := HighlightCode(cell, "x", "no-such-language-xyz", "github", config.DefaultConfig().Styles.CodeBlock)
	assert.Error(t, err)
	assert.Empty(t, cell.Paragraphs)
}

func TestColumnWidths(t *testing.T) {
	widths := ColumnWidths([][]string{{"Name", "数据数据"}, {"a", "b", "extra"}}, 1200)
	require.Len(t, widths, 3)
	// 4 + 8 + 5 个字符宽度
	assert.Equal(t, 1200*4/17, widths[0])
	assert.Equal(t, 1200*8/17, widths[1])
	assert.Equal(t, 1200, widths[0]+widths[1]+widths[2])
	assert.Nil(t, ColumnWidths(nil, 1200))

	long := ColumnWidths([][]string{{strings.Repeat("x", 500), "y"}}, 4400)
	assert.Equal(t, 4000, long[0])
}

func TestRunToXML(t *testing.T) {
	xml := (&Run{Text: "a < b  c\nnext", Bold: true, Color: "#FF0000", FontSize: 9}).ToXML()
	assert.Contains(t, xml, `<w:t xml:space="preserve">a &lt; b  c</w:t>`)
	assert.Contains(t, xml, `<w:br/>`)
	assert.Contains(t, xml, `<w:color w:val="FF0000"/>`)
	assert.Contains(t, xml, `<w:sz w:val="18"/>`)
	assert.Less(t, strings.Index(xml, "<w:b/>"), strings.Index(xml, "<w:color"))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path := filepath.Join(dir, "article.docx")
	doc := NewRenderer(config.DefaultConfig(), nil).Render(sampleBlocks)
	require.NoError(t, doc.Save(path))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels",
		"word/styles.xml", "word/document.xml",
	}, names)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".blog2docx-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
