package docx

import (
	"bytes"
	"fmt"
	"strings"
)

// Paragraph 段落
type Paragraph struct {
	StyleID string
	Runs    []*Run

	Align          string // left, center, right, justify
	Indent         int    // 左缩进(twips)
	SpacingA       int    // 段前间距
	SpacingB       int    // 段后间距
	LineHeight     int    // 行高 (twips)
	HorizontalRule bool   // 是否是分隔线
	KeepNext       bool   // 与下段同页
}

// Run 文本运行
type Run struct {
	Text     string
	Bold     bool
	Italic   bool
	FontName string
	FontSize float64
	Color    string
}

// NewParagraph 创建新段落
func NewParagraph(styleID string) *Paragraph {
	return &Paragraph{
		StyleID: styleID,
		Runs:    make([]*Run, 0),
	}
}

// AddRun 添加文本运行
func (p *Paragraph) AddRun(text string) *Run {
	run := &Run{Text: text}
	p.Runs = append(p.Runs, run)
	return run
}

// AddFormattedRun 添加格式化文本运行
func (p *Paragraph) AddFormattedRun(text string, bold, italic bool) *Run {
	run := &Run{
		Text:   text,
		Bold:   bold,
		Italic: italic,
	}
	p.Runs = append(p.Runs, run)
	return run
}

func (p *Paragraph) hasProperties() bool {
	return p.StyleID != "" || p.Align != "" || p.Indent > 0 || p.SpacingB > 0 || p.SpacingA > 0 ||
		p.HorizontalRule || p.LineHeight > 0 || p.KeepNext
}

// ToXML 转换为XML
func (p *Paragraph) ToXML() string {
	var buf bytes.Buffer

	buf.WriteString(`
        <w:p>`)

	// 段落属性，元素顺序遵循 CT_PPr
	if p.hasProperties() {
		buf.WriteString(`
            <w:pPr>`)
		if p.StyleID != "" {
			buf.WriteString(`
                <w:pStyle w:val="` + p.StyleID + `"/>`)
		}
		if p.KeepNext {
			buf.WriteString(`
                <w:keepNext/>`)
		}
		if p.HorizontalRule {
			buf.WriteString(`
                <w:pBdr>
                    <w:bottom w:val="single" w:sz="6" w:space="1" w:color="A0A0A0"/>
                </w:pBdr>`)
		}
		if p.SpacingB > 0 || p.SpacingA > 0 || p.LineHeight > 0 {
			line := 276
			if p.LineHeight > 0 {
				line = p.LineHeight
			}
			buf.WriteString(fmt.Sprintf(`
                <w:spacing w:before="%d" w:after="%d" w:line="%d" w:lineRule="auto"/>`, p.SpacingA, p.SpacingB, line))
		}
		if p.Indent > 0 {
			buf.WriteString(fmt.Sprintf(`
                <w:ind w:left="%d"/>`, p.Indent))
		}
		if p.Align != "" {
			jc := p.Align
			if jc == "left" {
				jc = "start"
			} else if jc == "right" {
				jc = "end"
			}
			buf.WriteString(`
                <w:jc w:val="` + jc + `"/>`)
		}
		buf.WriteString(`
            </w:pPr>`)
	}

	for _, run := range p.Runs {
		buf.WriteString(run.ToXML())
	}

	buf.WriteString(`
        </w:p>`)

	return buf.String()
}

// ToXML 运行转换为XML
func (r *Run) ToXML() string {
	var buf bytes.Buffer

	buf.WriteString(`
            <w:r>`)

	// 运行属性，元素顺序遵循 CT_RPr
	if r.Bold || r.Italic || r.FontName != "" || r.FontSize > 0 || r.Color != "" {
		buf.WriteString(`
                <w:rPr>`)
		if r.FontName != "" {
			buf.WriteString(`
                    <w:rFonts w:ascii="` + r.FontName + `" w:eastAsia="` + r.FontName + `" w:hAnsi="` + r.FontName + `"/>`)
		}
		if r.Bold {
			buf.WriteString(`
                    <w:b/>`)
		}
		if r.Italic {
			buf.WriteString(`
                    <w:i/>`)
		}
		if r.Color != "" {
			buf.WriteString(`
                    <w:color w:val="` + strings.TrimPrefix(r.Color, "#") + `"/>`)
		}
		if r.FontSize > 0 {
			sz := FontSizeToHalfPoints(r.FontSize)
			buf.WriteString(fmt.Sprintf(`
                    <w:sz w:val="%d"/>
                    <w:szCs w:val="%d"/>`, sz, sz))
		}
		buf.WriteString(`
                </w:rPr>`)
	}

	if r.Text != "" {
		// 换行转为 <w:br/>
		lines := strings.Split(r.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				buf.WriteString(`
                <w:br/>`)
			}
			if line == "" {
				continue
			}
			escaped := XMLEscape(line)
			if strings.HasPrefix(line, " ") || strings.HasSuffix(line, " ") || strings.Contains(line, "  ") || strings.Contains(line, "\t") {
				buf.WriteString(`
                <w:t xml:space="preserve">` + escaped + `</w:t>`)
			} else {
				buf.WriteString(`
                <w:t>` + escaped + `</w:t>`)
			}
		}
	}

	buf.WriteString(`
            </w:r>`)

	return buf.String()
}
