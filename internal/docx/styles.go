package docx

import (
	"bytes"
	"fmt"
	"strings"

	"blog2docx/internal/config"
)

// GenerateStyles 生成样式XML
func GenerateStyles(cfg *config.Config) string {
	var buf bytes.Buffer
	body := cfg.Styles.Body

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
    <w:docDefaults>
        <w:rPrDefault>
            <w:rPr>` + fontXML(body.Font) + sizeXML(body.Size) + `
            </w:rPr>
        </w:rPrDefault>
        <w:pPrDefault>
            <w:pPr>
                <w:spacing w:after="0" w:line="276" w:lineRule="auto"/>
            </w:pPr>
        </w:pPrDefault>
    </w:docDefaults>`)

	// Normal样式
	buf.WriteString(`
    <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
        <w:name w:val="Normal"/>
        <w:pPr>` + spacingXML(body) + `
        </w:pPr>
        <w:rPr>` + fontXML(body.Font) + colorXML(body.Color) + sizeXML(body.Size) + `
        </w:rPr>
    </w:style>`)

	// 各级标题样式
	for level := 1; level <= 3; level++ {
		style := cfg.GetHeadingStyle(level)
		writeParagraphStyle(&buf, fmt.Sprintf("Heading%d", level), fmt.Sprintf("heading %d", level), style, level-1)
	}

	// 标题块样式
	writeParagraphStyle(&buf, "Title", "Title", cfg.Styles.Title, -1)
	writeParagraphStyle(&buf, "Subtitle", "Subtitle", cfg.Styles.Subtitle, -1)
	writeParagraphStyle(&buf, "Tagline", "Tagline", cfg.Styles.Tagline, -1)

	// 代码样式
	code := cfg.Styles.CodeBlock
	buf.WriteString(`
    <w:style w:type="paragraph" w:styleId="Code">
        <w:name w:val="Code"/>
        <w:basedOn w:val="Normal"/>
        <w:pPr>
            <w:spacing w:before="0" w:after="0" w:line="` + fmt.Sprintf("%d", lineOr(code.LineHeight, 240)) + `" w:lineRule="auto"/>
        </w:pPr>
        <w:rPr>` + fontXML(code.Font) + colorXML(code.Color) + sizeXML(code.Size) + `
        </w:rPr>
    </w:style>`)

	// 表格样式
	buf.WriteString(`
    <w:style w:type="table" w:styleId="TableGrid">
        <w:name w:val="Table Grid"/>
        <w:tblPr>
            <w:tblBorders>
                <w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>
                <w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>
                <w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>
                <w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>
                <w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>
                <w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>
            </w:tblBorders>
        </w:tblPr>
    </w:style>`)

	buf.WriteString(`
</w:styles>`)

	return buf.String()
}

// writeParagraphStyle 写入段落样式；outline<0 表示不加大纲级别
func writeParagraphStyle(buf *bytes.Buffer, styleID, name string, style config.StyleConfig, outline int) {
	buf.WriteString(`
    <w:style w:type="paragraph" w:styleId="` + styleID + `">
        <w:name w:val="` + name + `"/>
        <w:basedOn w:val="Normal"/>
        <w:next w:val="Normal"/>
        <w:pPr>`)
	if outline >= 0 {
		buf.WriteString(`
            <w:keepNext/>
            <w:keepLines/>`)
	}
	buf.WriteString(spacingXML(style))
	if outline < 0 {
		buf.WriteString(`
            <w:jc w:val="center"/>`)
	} else {
		buf.WriteString(fmt.Sprintf(`
            <w:outlineLvl w:val="%d"/>`, outline))
	}
	buf.WriteString(`
        </w:pPr>
        <w:rPr>` + fontXML(style.Font))
	if style.Bold {
		buf.WriteString(`
            <w:b/>
            <w:bCs/>`)
	}
	if style.Italic {
		buf.WriteString(`
            <w:i/>
            <w:iCs/>`)
	}
	buf.WriteString(colorXML(style.Color) + sizeXML(style.Size) + `
        </w:rPr>
    </w:style>`)
}

func fontXML(font string) string {
	if font == "" {
		return ""
	}
	return `
            <w:rFonts w:ascii="` + font + `" w:eastAsia="` + font + `" w:hAnsi="` + font + `" w:cs="` + font + `"/>`
}

func colorXML(color string) string {
	if color == "" {
		return ""
	}
	return `
            <w:color w:val="` + strings.TrimPrefix(color, "#") + `"/>`
}

func sizeXML(pt float64) string {
	if pt <= 0 {
		return ""
	}
	sz := FontSizeToHalfPoints(pt)
	return fmt.Sprintf(`
            <w:sz w:val="%d"/>
            <w:szCs w:val="%d"/>`, sz, sz)
}

func spacingXML(style config.StyleConfig) string {
	return fmt.Sprintf(`
            <w:spacing w:before="%d" w:after="%d" w:line="%d" w:lineRule="auto"/>`,
		style.SpaceBefore, style.SpaceAfter, lineOr(style.LineHeight, 276))
}

func lineOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// FontSizeToHalfPoints 将磅值转换为半磅 (w:sz 的单位)
func FontSizeToHalfPoints(pt float64) int {
	return int(pt * 2)
}
