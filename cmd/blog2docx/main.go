// blog2docx 将Markdown博客文章转换为DOCX、HTML或PDF文档
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"blog2docx/internal/config"
	"blog2docx/internal/converter"
	"blog2docx/internal/logging"
)

const version = "0.1.0"

// Globals 所有命令共用的参数
type Globals struct {
	Config    string `name:"config" short:"c" help:"YAML配置文件，覆盖默认配置" type:"existingfile"`
	LogLevel  string `name:"log-level" help:"日志级别 (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"日志格式 (text, json)"`
}

// CLI 命令行定义
var CLI struct {
	Globals `embed:""`

	Convert ConvertCmd `cmd:"" help:"转换Markdown文件"`
	Blocks  BlocksCmd  `cmd:"" help:"输出扫描得到的文档块序列"`
	Version VersionCmd `cmd:"" help:"显示版本信息"`
}

// ConvertCmd 转换命令，输出格式由输出文件扩展名决定
type ConvertCmd struct {
	Source string `arg:"" help:"Markdown源文件" type:"existingfile"`
	Output string `short:"o" help:"输出文件 (.docx, .html, .pdf)，默认为源文件名加 .docx" type:"path"`
	Engine string `help:"解析引擎 (scanner, goldmark)"`
	Policy string `help:"表格列策略 (pad, truncate, reject)"`
	Title  string `help:"正文前的文档标题"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	cfg, log, err := setup(g)
	if err != nil {
		return err
	}
	if c.Engine != "" {
		cfg.Parser.Engine = c.Engine
	}
	if c.Policy != "" {
		cfg.Table.ColumnPolicy = c.Policy
	}
	if c.Title != "" {
		cfg.Title.Title = c.Title
	}

	conv, err := converter.NewConverter(cfg, log)
	if err != nil {
		return err
	}
	out := c.Output
	if out == "" {
		out = defaultOutput(c.Source)
	}
	if err := conv.ConvertFile(context.Background(), c.Source, out); err != nil {
		return err
	}
	fmt.Printf("✓ %s -> %s\n", c.Source, out)
	return nil
}

// BlocksCmd 每行输出一个文档块
type BlocksCmd struct {
	Source string `arg:"" help:"Markdown源文件" type:"existingfile"`
	Engine string `help:"解析引擎 (scanner, goldmark)"`
}

func (c *BlocksCmd) Run(g *Globals) error {
	cfg, log, err := setup(g)
	if err != nil {
		return err
	}
	if c.Engine != "" {
		cfg.Parser.Engine = c.Engine
	}
	conv, err := converter.NewConverter(cfg, log)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(c.Source)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}
	blocks, parseErr := conv.Parse(content)
	if err := blocks.Dump(os.Stdout); err != nil {
		return err
	}
	return parseErr
}

// VersionCmd 显示版本信息
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("blog2docx %s\n", version)
	return nil
}

// setup 加载配置，应用日志参数并初始化全局日志器
func setup(g *Globals) (*config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()
	if g.Config != "" {
		var err error
		if cfg, err = config.LoadConfig(g.Config); err != nil {
			return nil, nil, err
		}
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	logging.InitLogger(level, format)
	return cfg, logging.GetLogger(), nil
}

func defaultOutput(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".docx"
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("blog2docx"),
		kong.Description("将Markdown博客文章转换为Word文档"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
