// Package htmlout 将文档块渲染为独立的HTML页面，也作为PDF输出的中间格式
package htmlout

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"blog2docx/internal/config"
	"blog2docx/internal/document"
)

// Renderer HTML渲染器
type Renderer struct {
	config *config.Config
}

// NewRenderer 创建渲染器
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{config: cfg}
}

// Render 渲染完整的HTML页面并写入w
func (r *Renderer) Render(w io.Writer, blocks document.Document) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	title := r.config.Title.Title
	if title == "" {
		title = firstHeading(blocks)
	}

	head := elem(atom.Head,
		withAttr(elem(atom.Meta), "charset", "utf-8"),
		elem(atom.Title, text(title)),
		elem(atom.Style, text(r.stylesheet())),
	)
	body := elem(atom.Body)
	article := elem(atom.Article)
	r.titleBlock(article)
	r.appendBlocks(article, blocks)
	body.AppendChild(article)

	page := withAttr(elem(atom.Html, head, body), "lang", "en")
	root.AppendChild(page)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("渲染HTML失败: %w", err)
	}
	return nil
}

func (r *Renderer) titleBlock(parent *html.Node) {
	t := r.config.Title
	if t.Title == "" && t.Subtitle == "" && t.Tagline == "" {
		return
	}
	header := elem(atom.Header)
	if t.Title != "" {
		header.AppendChild(withAttr(elem(atom.P, text(t.Title)), "class", "title"))
	}
	if t.Subtitle != "" {
		header.AppendChild(withAttr(elem(atom.P, text(t.Subtitle)), "class", "subtitle"))
	}
	if t.Tagline != "" {
		header.AppendChild(withAttr(elem(atom.P, text(t.Tagline)), "class", "tagline"))
	}
	parent.AppendChild(header)
	parent.AppendChild(elem(atom.Hr))
}

// appendBlocks 连续的同类列表项合并为一个列表
func (r *Renderer) appendBlocks(parent *html.Node, blocks document.Document) {
	var list *html.Node
	listOrdered := false
	for _, b := range blocks {
		item, isItem := b.(*document.ListItem)
		if !isItem || list == nil || item.Ordered != listOrdered {
			list = nil
		}
		if isItem {
			if list == nil {
				list, listOrdered = newList(item), item.Ordered
				parent.AppendChild(list)
			}
			list.AppendChild(listItem(item))
			continue
		}
		parent.AppendChild(blockNode(b))
	}
}

func newList(first *document.ListItem) *html.Node {
	if !first.Ordered {
		return elem(atom.Ul)
	}
	ol := elem(atom.Ol)
	// 序号原文可能有前导零或超出整数范围，start 属性只去掉前导零
	if start := strings.TrimLeft(first.Number, "0"); start != "" && start != "1" {
		withAttr(ol, "start", start)
	}
	return ol
}

func listItem(item *document.ListItem) *html.Node {
	li := elem(atom.Li)
	if item.Lead != "" {
		li.AppendChild(elem(atom.Strong, text(item.Lead)))
		if item.Separator != "" {
			li.AppendChild(text(item.Separator))
		}
	}
	appendRuns(li, item.Runs)
	return li
}

func blockNode(b document.Block) *html.Node {
	switch block := b.(type) {
	case *document.Heading:
		return elem(headingAtom(block.Level), text(block.Text))
	case *document.Paragraph:
		p := elem(atom.P)
		appendRuns(p, block.Runs)
		return p
	case *document.CodeBlock:
		code := elem(atom.Code, text(block.Text))
		if block.Language != "" {
			withAttr(code, "class", "language-"+block.Language)
		}
		return elem(atom.Pre, code)
	case *document.Table:
		return table(block)
	case *document.Rule:
		return elem(atom.Hr)
	default:
		return &html.Node{Type: html.CommentNode, Data: " unsupported block: " + b.Kind().String() + " "}
	}
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	default:
		return atom.H3
	}
}

func table(t *document.Table) *html.Node {
	tbl := elem(atom.Table)
	if len(t.Rows) == 0 {
		return tbl
	}
	headRow := elem(atom.Tr)
	for _, cell := range t.Rows[0] {
		headRow.AppendChild(elem(atom.Th, text(cell)))
	}
	tbl.AppendChild(elem(atom.Thead, headRow))

	if len(t.Rows) > 1 {
		tbody := elem(atom.Tbody)
		for _, row := range t.Rows[1:] {
			tr := elem(atom.Tr)
			for _, cell := range row {
				tr.AppendChild(elem(atom.Td, text(cell)))
			}
			tbody.AppendChild(tr)
		}
		tbl.AppendChild(tbody)
	}
	return tbl
}

// appendRuns 粗体用 strong，斜体用 em，粗斜体嵌套两者
func appendRuns(parent *html.Node, runs document.Runs) {
	for _, run := range runs {
		n := text(run.Text)
		if run.Italic {
			n = elem(atom.Em, n)
		}
		if run.Bold {
			n = elem(atom.Strong, n)
		}
		parent.AppendChild(n)
	}
}

func (r *Renderer) stylesheet() string {
	c := r.config
	color := func(s string) string { return "#" + strings.TrimPrefix(s, "#") }
	var b strings.Builder
	fmt.Fprintf(&b, "body{font-family:%q,sans-serif;font-size:%gpt;color:%s;max-width:48em;margin:2em auto;line-height:1.4}",
		c.Styles.Body.Font, c.Styles.Body.Size, color(c.Styles.Body.Color))
	for level := 1; level <= 3; level++ {
		h := c.GetHeadingStyle(level)
		fmt.Fprintf(&b, "h%d{font-size:%gpt;color:%s}", level, h.Size, color(h.Color))
	}
	fmt.Fprintf(&b, ".title{font-size:%gpt;font-weight:bold;text-align:center;color:%s}",
		c.Styles.Title.Size, color(c.Styles.Title.Color))
	fmt.Fprintf(&b, ".subtitle{font-size:%gpt;font-weight:bold;text-align:center;color:%s}",
		c.Styles.Subtitle.Size, color(c.Styles.Subtitle.Color))
	fmt.Fprintf(&b, ".tagline{font-style:italic;text-align:center;color:%s}", color(c.Styles.Tagline.Color))
	fmt.Fprintf(&b, "pre{font-family:%q,monospace;font-size:%gpt;background:%s;padding:.8em;margin-left:2em;white-space:pre-wrap}",
		c.Styles.CodeBlock.Font, c.Styles.CodeBlock.Size, color(c.Styles.CodeBlock.Background))
	fmt.Fprintf(&b, "table{border-collapse:collapse;font-size:%gpt;margin:1em 0}td,th{border:1px solid #999;padding:2pt 6pt}",
		c.Table.Size)
	fmt.Fprintf(&b, "th{background:%s;color:%s}", color(c.Table.HeaderFill), color(c.Table.HeaderColor))
	b.WriteString("hr{border:0;border-bottom:1px solid #a0a0a0}")
	return b.String()
}

func firstHeading(blocks document.Document) string {
	for _, b := range blocks {
		if h, ok := b.(*document.Heading); ok {
			return h.Text
		}
	}
	return "Document"
}

func elem(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func withAttr(n *html.Node, key, val string) *html.Node {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
