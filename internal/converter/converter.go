// Package converter 读取Markdown、扫描为文档块并按输出扩展名渲染
package converter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"blog2docx/internal/config"
	"blog2docx/internal/document"
	"blog2docx/internal/docx"
	"blog2docx/internal/htmlout"
	"blog2docx/internal/parser"
)

// Format 输出格式
type Format string

const (
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// FormatFor 根据输出文件扩展名选择格式
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return FormatDOCX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("不支持的输出格式: %q", filepath.Ext(path))
}

// Converter Markdown到文档的转换器
type Converter struct {
	config   *config.Config
	log      *slog.Logger
	scanner  *parser.Scanner
	markdown *parser.MarkdownParser
}

// NewConverter 创建新的转换器
func NewConverter(cfg *config.Config, log *slog.Logger) (*Converter, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := parser.ParseColumnPolicy(cfg.Table.ColumnPolicy)
	if err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		log:    log,
		scanner: parser.NewScanner(parser.Options{
			SkipPreamble:    cfg.Scanner.SkipPreamble,
			TaglinePrefixes: cfg.Scanner.TaglinePrefixes,
			ColumnPolicy:    policy,
			Logger:          log,
		}),
		markdown: parser.NewMarkdownParser(),
	}, nil
}

// Parse 规范化换行和Unicode后使用配置的引擎解析
//
// 两种引擎都遵循 scanner.skipPreamble。
// reject 策略下遇到列数不一致的表格时，返回完整的文档块和错误。
func (c *Converter) Parse(content []byte) (document.Document, error) {
	text := string(content)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFC.String(text)

	if c.config.Parser.Engine == "goldmark" {
		if c.config.Scanner.SkipPreamble {
			text = parser.StripPreamble(text, c.config.Scanner.TaglinePrefixes)
		}
		return c.markdown.Blocks([]byte(text)), nil
	}
	return c.scanner.ScanString(text)
}

// ConvertFile 转换Markdown文件
func (c *Converter) ConvertFile(ctx context.Context, src, out string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}
	return c.Convert(ctx, content, out)
}

// Convert 转换Markdown内容并写入 out
func (c *Converter) Convert(ctx context.Context, content []byte, out string) error {
	format, err := FormatFor(out)
	if err != nil {
		return err
	}

	blocks, err := c.Parse(content)
	if err != nil {
		return fmt.Errorf("转换失败: %w", err)
	}
	c.log.Debug("scanned", "blocks", len(blocks), "engine", c.engine())

	switch format {
	case FormatDOCX:
		doc := docx.NewRenderer(c.config, c.log).Render(blocks)
		err = doc.Save(out)
	case FormatHTML:
		err = writeAtomic(out, func(w io.Writer) error {
			return htmlout.NewRenderer(c.config).Render(w, blocks)
		})
	case FormatPDF:
		err = c.renderPDF(ctx, blocks, out)
	}
	if err != nil {
		return fmt.Errorf("写入%s失败: %w", format, err)
	}

	c.log.Info("converted", "output", out, "format", string(format), "blocks", len(blocks))
	return nil
}

func (c *Converter) engine() string {
	if c.config.Parser.Engine == "" {
		return "scanner"
	}
	return c.config.Parser.Engine
}

// writeAtomic 先写入同目录下的临时文件再重命名，失败时不留下半成品
func writeAtomic(path string, write func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".blog2docx-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
