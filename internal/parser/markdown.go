package parser

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"blog2docx/internal/document"
)

// MarkdownParser 基于Goldmark的解析器，产出与行扫描器相同的块结构
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser 创建新的解析器
func NewMarkdownParser() *MarkdownParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // 表格、删除线、任务列表、自动链接
		),
	)
	return &MarkdownParser{md: md}
}

// Parse 解析Markdown内容为AST
func (p *MarkdownParser) Parse(content []byte) ast.Node {
	reader := text.NewReader(content)
	return p.md.Parser().Parse(reader)
}

// Blocks 解析Markdown并转换为文档块
//
// 嵌套的强调被展平为粗体/斜体标记，嵌套列表展平为同级列表项，
// 超过3级的标题按3级处理。
func (p *MarkdownParser) Blocks(content []byte) document.Document {
	w := &astWalker{source: content}
	w.walkNode(p.Parse(content))
	return w.doc
}

// astWalker 遍历Goldmark AST
type astWalker struct {
	source []byte
	doc    document.Document
}

// walkNode 遍历子节点
func (w *astWalker) walkNode(n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		w.processNode(child)
	}
}

// processNode 处理单个块节点
func (w *astWalker) processNode(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level > 3 {
			level = 3
		}
		w.doc = append(w.doc, &document.Heading{
			Level: level,
			Text:  strings.TrimSpace(w.inlineRuns(node).Text()),
		})
	case *ast.Paragraph, *ast.TextBlock:
		if runs := w.inlineRuns(node); len(runs) > 0 {
			w.doc = append(w.doc, &document.Paragraph{Runs: runs})
		}
	case *ast.FencedCodeBlock:
		w.doc = append(w.doc, &document.CodeBlock{
			Language: string(node.Language(w.source)),
			Text:     w.lines(node),
		})
	case *ast.CodeBlock:
		w.doc = append(w.doc, &document.CodeBlock{Text: w.lines(node)})
	case *ast.List:
		w.processList(node)
	case *ast.ThematicBreak:
		w.doc = append(w.doc, &document.Rule{})
	case *east.Table:
		w.processTable(node)
	default:
		// 引用块等容器：处理其子节点
		w.walkNode(n)
	}
}

// lines 拼接代码块的原始行
func (w *astWalker) lines(n ast.Node) string {
	var code strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		line := n.Lines().At(i)
		code.Write(line.Value(w.source))
	}
	return strings.TrimSuffix(code.String(), "\n")
}

// processList 处理列表，嵌套列表展平
func (w *astWalker) processList(node *ast.List) {
	number := node.Start
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		li := &document.ListItem{Ordered: node.IsOrdered()}
		if li.Ordered {
			li.Number = strconv.Itoa(number)
			number++
		}
		var nested []*ast.List
		var b runBuilder
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if list, ok := c.(*ast.List); ok {
				nested = append(nested, list)
				continue
			}
			if len(b.runs) > 0 {
				b.plain(" ")
			}
			b.addAll(w.inlineRuns(c))
		}
		li.Runs = b.runs
		w.doc = append(w.doc, li)
		for _, list := range nested {
			w.processList(list)
		}
	}
}

// processTable 处理GFM表格，单元格展平为纯文本
func (w *astWalker) processTable(node *east.Table) {
	tbl := &document.Table{}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(w.inlineRuns(cell).Text()))
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	if len(tbl.Rows) > 0 {
		w.doc = append(w.doc, tbl)
	}
}

// inlineRuns 处理内联节点
func (w *astWalker) inlineRuns(parent ast.Node) document.Runs {
	var b runBuilder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		w.processInlineNode(child, &b, false, false)
	}
	return b.runs
}

// processInlineNode 处理单个内联节点
func (w *astWalker) processInlineNode(n ast.Node, b *runBuilder, bold, italic bool) {
	switch node := n.(type) {
	case *ast.Text:
		b.add(document.TextRun{Text: string(node.Segment.Value(w.source)), Bold: bold, Italic: italic})
		if node.SoftLineBreak() || node.HardLineBreak() {
			b.add(document.TextRun{Text: " ", Bold: bold, Italic: italic})
		}
	case *ast.String:
		b.add(document.TextRun{Text: string(node.Value), Bold: bold, Italic: italic})
	case *ast.Emphasis:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			w.processInlineNode(child, b, bold || node.Level == 2, italic || node.Level == 1)
		}
	case *ast.CodeSpan:
		// 行内代码按惯例渲染为粗体
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			w.processInlineNode(child, b, true, italic)
		}
	case *ast.Link:
		// 丢弃URL，链接文本渲染为斜体
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			w.processInlineNode(child, b, bold, true)
		}
	case *ast.AutoLink:
		b.add(document.TextRun{Text: string(node.Label(w.source)), Bold: bold, Italic: true})
	case *ast.Image, *ast.RawHTML:
		// 不支持图片和内联HTML
	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			w.processInlineNode(child, b, bold, italic)
		}
	}
}
