package document

import (
	"fmt"
	"io"
	"strings"
)

// String 以Markdown记号显示样式
func (r TextRun) String() string {
	switch {
	case r.Bold && r.Italic:
		return "***" + r.Text + "***"
	case r.Bold:
		return "**" + r.Text + "**"
	case r.Italic:
		return "*" + r.Text + "*"
	}
	return r.Text
}

func (rs Runs) String() string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.String())
	}
	return b.String()
}

func (h *Heading) String() string {
	return fmt.Sprintf("heading(%d) %q", h.Level, h.Text)
}

func (p *Paragraph) String() string {
	return fmt.Sprintf("paragraph %q", p.Runs.String())
}

func (li *ListItem) String() string {
	marker := "•"
	if li.Ordered {
		marker = li.Number + "."
	}
	body := li.Runs.String()
	if li.Lead != "" {
		body = "**" + li.Lead + "**" + li.Separator + body
	}
	return fmt.Sprintf("list-item %s %q", marker, body)
}

func (c *CodeBlock) String() string {
	lines := 0
	if c.Text != "" {
		lines = strings.Count(c.Text, "\n") + 1
	}
	lang := c.Language
	if lang == "" {
		lang = "-"
	}
	return fmt.Sprintf("code-block[%s] %d lines", lang, lines)
}

func (t *Table) String() string {
	return fmt.Sprintf("table %dx%d %q", len(t.Rows), t.Columns(), t.Header())
}

func (*Rule) String() string {
	return "rule"
}

// Dump 每行输出一个块，用于检查扫描结果
func (d Document) Dump(w io.Writer) error {
	for i, b := range d {
		if _, err := fmt.Fprintf(w, "%4d  %s\n", i+1, b); err != nil {
			return err
		}
	}
	return nil
}
