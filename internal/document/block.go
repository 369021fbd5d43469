// Package document 定义扫描器产出、渲染后端消费的块结构
package document

import "strings"

// TextRun 具有相同粗体/斜体样式的一段文本
type TextRun struct {
	Text   string
	Bold   bool
	Italic bool
}

// Plain 是否为无样式文本
func (r TextRun) Plain() bool {
	return !r.Bold && !r.Italic
}

// Runs 文本运行序列
type Runs []TextRun

// Text 拼接所有运行的文本
func (rs Runs) Text() string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Kind 块类型
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindListItem
	KindCodeBlock
	KindTable
	KindRule
)

var kindNames = [...]string{
	KindHeading:   "heading",
	KindParagraph: "paragraph",
	KindListItem:  "list-item",
	KindCodeBlock: "code-block",
	KindTable:     "table",
	KindRule:      "rule",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Block 文档块接口，只有本包中的类型实现它
type Block interface {
	Kind() Kind
	block()
}

// Heading 标题 (1-3级)
type Heading struct {
	Level int
	Text  string
}

// Paragraph 段落
type Paragraph struct {
	Runs Runs
}

// ListItem 列表项
//
// Lead 为加粗的引导词，为空表示没有引导词；Separator 是引导词和正文之间
// 归一化后的分隔符。Number 为有序列表序号的原文（十进制数字串，不做数值转换），
// 无序列表为空。
type ListItem struct {
	Ordered   bool
	Number    string
	Lead      string
	Separator string
	Runs      Runs
}

// CodeBlock 围栏代码块，内容原样保留
type CodeBlock struct {
	Language string
	Text     string
}

// Table 表格，第一行为表头
type Table struct {
	Rows [][]string
}

// Header 返回表头行
func (t *Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// Columns 返回列数（以表头为准）
func (t *Table) Columns() int {
	return len(t.Header())
}

// Rule 分隔线
type Rule struct{}

func (*Heading) Kind() Kind   { return KindHeading }
func (*Paragraph) Kind() Kind { return KindParagraph }
func (*ListItem) Kind() Kind  { return KindListItem }
func (*CodeBlock) Kind() Kind { return KindCodeBlock }
func (*Table) Kind() Kind     { return KindTable }
func (*Rule) Kind() Kind      { return KindRule }

func (*Heading) block()   {}
func (*Paragraph) block() {}
func (*ListItem) block()  {}
func (*CodeBlock) block() {}
func (*Table) block()     {}
func (*Rule) block()      {}

// Document 有序的块序列
type Document []Block

// Count 按类型统计块数量
func (d Document) Count() map[Kind]int {
	counts := make(map[Kind]int)
	for _, b := range d {
		counts[b.Kind()]++
	}
	return counts
}
