package parser

import (
	"strings"
	"unicode/utf8"

	"blog2docx/internal/document"
)

// cursor 行内扫描游标，只向前移动
type cursor struct {
	s   string
	pos int
}

// done 是否已扫描到行尾
func (c *cursor) done() bool {
	return c.pos >= len(c.s)
}

// peek 返回从当前位置开始的n个字节（不足则返回剩余部分）
func (c *cursor) peek(n int) string {
	end := c.pos + n
	if end > len(c.s) {
		end = len(c.s)
	}
	return c.s[c.pos:end]
}

// at 返回绝对位置i处的字节，越界返回0
func (c *cursor) at(i int) byte {
	if i < 0 || i >= len(c.s) {
		return 0
	}
	return c.s[i]
}

// advance 前进一个完整字符，返回被跳过的字符
func (c *cursor) advance() string {
	_, size := utf8.DecodeRuneInString(c.s[c.pos:])
	if size == 0 {
		size = 1
	}
	ch := c.s[c.pos : c.pos+size]
	c.pos += size
	return ch
}

// enclosed 匹配 open...close 包围的文本，返回内容和闭合符之后的位置
func (c *cursor) enclosed(open, close string) (string, int, bool) {
	if c.peek(len(open)) != open {
		return "", 0, false
	}
	start := c.pos + len(open)
	end := strings.Index(c.s[start:], close)
	if end < 0 {
		return "", 0, false
	}
	return c.s[start : start+end], start + end + len(close), true
}

// inlineRule 行内定界符规则；匹配成功时返回运行和新的游标位置
type inlineRule struct {
	name  string
	match func(c *cursor) (document.TextRun, int, bool)
}

// inlineRules 按优先级排列：*** 必须先于 **，** 必须先于 *
var inlineRules = []inlineRule{
	{name: "bold-italic", match: matchBoldItalic},
	{name: "bold", match: matchBold},
	{name: "italic", match: matchItalic},
	{name: "code", match: matchCode},
	{name: "link", match: matchLink},
}

func matchBoldItalic(c *cursor) (document.TextRun, int, bool) {
	text, next, ok := c.enclosed("***", "***")
	return document.TextRun{Text: text, Bold: true, Italic: true}, next, ok
}

func matchBold(c *cursor) (document.TextRun, int, bool) {
	text, next, ok := c.enclosed("**", "**")
	return document.TextRun{Text: text, Bold: true}, next, ok
}

// matchItalic 单星号斜体，紧邻其他星号时不匹配，避免把 ** 误读为两个斜体
func matchItalic(c *cursor) (document.TextRun, int, bool) {
	if c.at(c.pos) != '*' || c.at(c.pos-1) == '*' || c.pos+1 >= len(c.s) || c.at(c.pos+1) == '*' {
		return document.TextRun{}, 0, false
	}
	text, next, ok := c.enclosed("*", "*")
	if !ok || c.at(next) == '*' {
		return document.TextRun{}, 0, false
	}
	return document.TextRun{Text: text, Italic: true}, next, true
}

// matchCode 行内代码，后端没有代码样式，按惯例渲染为粗体
func matchCode(c *cursor) (document.TextRun, int, bool) {
	text, next, ok := c.enclosed("`", "`")
	return document.TextRun{Text: text, Bold: true}, next, ok
}

// matchLink [text](url)，丢弃URL，文本渲染为斜体
func matchLink(c *cursor) (document.TextRun, int, bool) {
	if c.at(c.pos) != '[' {
		return document.TextRun{}, 0, false
	}
	closeBracket := strings.IndexByte(c.s[c.pos+1:], ']')
	if closeBracket < 0 {
		return document.TextRun{}, 0, false
	}
	closeBracket += c.pos + 1
	if c.at(closeBracket+1) != '(' {
		return document.TextRun{}, 0, false
	}
	closeParen := strings.IndexByte(c.s[closeBracket+2:], ')')
	if closeParen < 0 {
		return document.TextRun{}, 0, false
	}
	text := c.s[c.pos+1 : closeBracket]
	return document.TextRun{Text: text, Italic: true}, closeBracket + 2 + closeParen + 1, true
}

// runBuilder 构建运行序列，合并相邻的同样式文本
type runBuilder struct {
	runs document.Runs
}

// plain 追加无样式文本
func (b *runBuilder) plain(text string) {
	b.add(document.TextRun{Text: text})
}

// add 追加运行，空文本被忽略
func (b *runBuilder) add(r document.TextRun) {
	if r.Text == "" {
		return
	}
	if n := len(b.runs); n > 0 && b.runs[n-1].Bold == r.Bold && b.runs[n-1].Italic == r.Italic {
		b.runs[n-1].Text += r.Text
		return
	}
	b.runs = append(b.runs, r)
}

// addAll 追加多个运行
func (b *runBuilder) addAll(runs document.Runs) {
	for _, r := range runs {
		b.add(r)
	}
}

// ParseInline 将一行Markdown文本解析为带样式的文本运行序列
//
// 解析永不失败：找不到闭合符的定界符按普通字符处理。
func ParseInline(line string) document.Runs {
	var b runBuilder
	c := &cursor{s: line}
	for !c.done() {
		matched := false
		for _, rule := range inlineRules {
			run, next, ok := rule.match(c)
			if !ok {
				continue
			}
			b.add(run)
			c.pos = next
			matched = true
			break
		}
		if !matched {
			b.plain(c.advance())
		}
	}
	return b.runs
}
