package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"blog2docx/internal/config"
)

// 页面尺寸 (A4) 和边距，单位 twips
const (
	PageWidth    = 11906
	PageHeight   = 16838
	PageMargin   = 1440
	ContentWidth = PageWidth - 2*PageMargin
)

// Element 文档元素接口
type Element interface {
	ToXML() string
}

// Document DOCX文档
type Document struct {
	config   *config.Config
	elements []Element
}

// NewDocument 创建新文档
func NewDocument(cfg *config.Config) *Document {
	return &Document{
		config:   cfg,
		elements: make([]Element, 0),
	}
}

// AddElement 添加段落或表格
func (d *Document) AddElement(e Element) {
	d.elements = append(d.elements, e)
}

// Elements 返回已添加的元素
func (d *Document) Elements() []Element {
	return d.elements
}

// Save 保存为DOCX文件
//
// 先写入同目录下的临时文件再重命名，失败时不会留下不完整的文件。
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".blog2docx-*.docx")
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("创建文件失败: %w", err)
	}
	if err := d.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("保存文件失败: %w", err)
	}
	return nil
}

// Write 将DOCX包写入w
func (d *Document) Write(out io.Writer) error {
	w := zip.NewWriter(out)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", GenerateStyles(d.config)},
		{"word/document.xml", d.documentXML()},
	}
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return fmt.Errorf("写入 %s 失败: %w", part.name, err)
		}
		if _, err := io.WriteString(f, part.content); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", part.name, err)
		}
	}

	return w.Close()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
    <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
    <Default Extension="xml" ContentType="application/xml"/>
    <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
    <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
    <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
    <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// documentXML 生成文档内容
func (d *Document) documentXML() string {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
    <w:body>`)

	for _, elem := range d.elements {
		buf.WriteString(elem.ToXML())
	}

	buf.WriteString(fmt.Sprintf(`
        <w:sectPr>
            <w:pgSz w:w="%d" w:h="%d"/>
            <w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="851" w:footer="992" w:gutter="0"/>
        </w:sectPr>
    </w:body>
</w:document>`, PageWidth, PageHeight, PageMargin, PageMargin, PageMargin, PageMargin))

	return buf.String()
}

// XMLEscape 转义XML特殊字符
func XMLEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
