package docx

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mattn/go-runewidth"

	"blog2docx/internal/config"
	"blog2docx/internal/document"
)

// 表格列宽计算时单列显示宽度的上下限（字符数）
const (
	minColumnChars = 4
	maxColumnChars = 40
)

// Renderer 将文档块渲染为DOCX元素
type Renderer struct {
	config *config.Config
	log    *slog.Logger
}

// NewRenderer 创建渲染器
func NewRenderer(cfg *config.Config, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{config: cfg, log: log}
}

// Render 渲染文档块，返回可保存的DOCX文档
func (r *Renderer) Render(blocks document.Document) *Document {
	doc := NewDocument(r.config)
	r.renderTitle(doc)
	for _, b := range blocks {
		r.renderBlock(doc, b)
	}
	return doc
}

// renderTitle 写入配置的标题块，替代被跳过的前言
func (r *Renderer) renderTitle(doc *Document) {
	t := r.config.Title
	for _, part := range []struct{ style, text string }{
		{"Title", t.Title},
		{"Subtitle", t.Subtitle},
		{"Tagline", t.Tagline},
	} {
		if part.text == "" {
			continue
		}
		p := NewParagraph(part.style)
		p.Align = "center"
		p.AddRun(part.text)
		doc.AddElement(p)
	}
	if t.Title != "" || t.Subtitle != "" || t.Tagline != "" {
		doc.AddElement(r.rule())
	}
}

func (r *Renderer) renderBlock(doc *Document, b document.Block) {
	switch block := b.(type) {
	case *document.Heading:
		p := NewParagraph(fmt.Sprintf("Heading%d", block.Level))
		p.KeepNext = true
		p.AddRun(block.Text)
		doc.AddElement(p)
	case *document.Paragraph:
		p := NewParagraph("")
		addRuns(p, block.Runs)
		doc.AddElement(p)
	case *document.ListItem:
		doc.AddElement(r.listItem(block))
	case *document.CodeBlock:
		doc.AddElement(r.codeBlock(block))
		doc.AddElement(NewParagraph(""))
	case *document.Table:
		if len(block.Rows) == 0 {
			return
		}
		doc.AddElement(r.table(block))
		doc.AddElement(NewParagraph(""))
	case *document.Rule:
		doc.AddElement(r.rule())
	default:
		r.log.Warn("unsupported block", "kind", b.Kind().String())
	}
}

func addRuns(p *Paragraph, runs document.Runs) {
	for _, run := range runs {
		p.AddFormattedRun(run.Text, run.Bold, run.Italic)
	}
}

// listItem 列表项：序号或项目符号、加粗引导词、分隔符和正文
func (r *Renderer) listItem(item *document.ListItem) *Paragraph {
	style := r.config.Styles.List
	p := NewParagraph("")
	p.Indent = style.Indent
	p.LineHeight = style.LineHeight
	if item.Ordered {
		p.AddRun(item.Number + ". ").Bold = true
	} else {
		p.AddRun("• ").Bold = true
	}
	if item.Lead != "" {
		p.AddRun(item.Lead).Bold = true
		if item.Separator != "" {
			p.AddRun(item.Separator)
		}
	}
	addRuns(p, item.Runs)
	return p
}

// codeBlock 代码块放入单格底纹表格中
func (r *Renderer) codeBlock(block *document.CodeBlock) *Table {
	style := r.config.Styles.CodeBlock
	table := NewTable()
	table.HasBorders = false
	table.Indent = style.Indent
	table.ColWidths = []int{ContentWidth - style.Indent}
	cell := table.AddRow(false).AddCell()
	cell.Width = ContentWidth - style.Indent
	cell.Shading = style.Background

	hl := r.config.Highlight
	if hl.Enabled && block.Language != "" {
		err := HighlightCode(cell, block.Text, block.Language, hl.Style, style)
		if err == nil {
			return table
		}
		r.log.Debug("code highlighting skipped", "language", block.Language, "error", err)
		cell.Paragraphs = cell.Paragraphs[:0]
	}
	PlainCode(cell, block.Text, style)
	return table
}

// table 表头行加粗并使用对比底色
func (r *Renderer) table(block *document.Table) *Table {
	cfg := r.config.Table
	widths := ColumnWidths(block.Rows, ContentWidth)

	table := NewTable()
	table.HasBorders = cfg.Borders
	table.ColWidths = widths
	for i, cells := range block.Rows {
		header := i == 0
		row := table.AddRow(header)
		for j, text := range cells {
			cell := row.AddCell()
			cell.VAlign = "center"
			if j < len(widths) {
				cell.Width = widths[j]
			}
			run := cell.SetText(text, header && cfg.HeaderBold)
			run.FontName = cfg.Font
			run.FontSize = cfg.Size
			cell.Paragraphs[0].SpacingA = 40
			cell.Paragraphs[0].SpacingB = 40
			if header {
				cell.Shading = cfg.HeaderFill
				run.Color = cfg.HeaderColor
			}
		}
	}
	return table
}

func (r *Renderer) rule() *Paragraph {
	p := NewParagraph("")
	p.HorizontalRule = true
	p.SpacingA = 120
	p.SpacingB = 240
	return p
}

// ColumnWidths 按各列最大显示宽度（CJK字符计为2）把 total 按比例分配给各列
func ColumnWidths(rows [][]string, total int) []int {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	chars := make([]int, cols)
	for i := range chars {
		chars[i] = minColumnChars
	}
	for _, row := range rows {
		for j, cell := range row {
			w := runewidth.StringWidth(cell)
			if w > maxColumnChars {
				w = maxColumnChars
			}
			if w > chars[j] {
				chars[j] = w
			}
		}
	}

	sum := 0
	for _, c := range chars {
		sum += c
	}
	widths := make([]int, cols)
	used := 0
	for j, c := range chars {
		widths[j] = total * c / sum
		used += widths[j]
	}
	// 整除余数加到最后一列
	widths[cols-1] += total - used
	return widths
}
