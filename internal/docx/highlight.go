package docx

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"blog2docx/internal/config"
)

// HighlightCode 使用Chroma将代码转换为带高亮的段落并添加到单元格中
//
// 每个源码行对应一个段落。没有对应语言的词法分析器时返回错误，由调用方回退为纯文本。
func HighlightCode(cell *TableCell, code, language, styleName string, style config.StyleConfig) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		return fmt.Errorf("不支持的语言: %q", language)
	}
	lexer = chroma.Coalesce(lexer)

	theme := styles.Get(styleName)
	if theme == nil {
		theme = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}

	p := newCodeParagraph(style)
	cell.AddParagraph(p)

	for _, token := range iterator.Tokens() {
		entry := theme.Get(token.Type)

		// 处理包含换行的 token
		lines := strings.Split(token.Value, "\n")
		for i, lineText := range lines {
			if i > 0 {
				p = newCodeParagraph(style)
				cell.AddParagraph(p)
			}
			if lineText == "" {
				continue
			}
			run := p.AddRun(lineText)
			run.FontName = style.Font
			run.FontSize = style.Size
			if entry.Colour.IsSet() {
				run.Color = strings.TrimPrefix(entry.Colour.String(), "#")
			}
			run.Bold = entry.Bold == chroma.Yes
			run.Italic = entry.Italic == chroma.Yes
		}
	}

	// 代码末尾的换行会产生一个空段落
	if n := len(cell.Paragraphs); n > 1 && len(cell.Paragraphs[n-1].Runs) == 0 {
		cell.Paragraphs = cell.Paragraphs[:n-1]
	}
	return nil
}

// PlainCode 不加高亮地写入代码
func PlainCode(cell *TableCell, code string, style config.StyleConfig) {
	for _, line := range strings.Split(code, "\n") {
		p := newCodeParagraph(style)
		if line != "" {
			run := p.AddRun(line)
			run.FontName = style.Font
			run.FontSize = style.Size
			run.Color = style.Color
		}
		cell.AddParagraph(p)
	}
}

func newCodeParagraph(style config.StyleConfig) *Paragraph {
	p := NewParagraph("Code")
	p.LineHeight = style.LineHeight
	return p
}
