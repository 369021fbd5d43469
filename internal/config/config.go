package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfigData []byte

// StyleConfig 样式配置
type StyleConfig struct {
	Font        string  `yaml:"font"`
	Size        float64 `yaml:"size"`
	Bold        bool    `yaml:"bold"`
	Italic      bool    `yaml:"italic"`
	Color       string  `yaml:"color"`
	Background  string  `yaml:"background"`
	LineHeight  int     `yaml:"lineHeight"`  // 行高 (twips, 240=1倍, 360=1.5倍)
	SpaceBefore int     `yaml:"spaceBefore"` // 段前间距 (twips, 20=1pt)
	SpaceAfter  int     `yaml:"spaceAfter"`  // 段后间距 (twips)
	Indent      int     `yaml:"indent"`      // 左缩进 (twips)
}

// TableConfig 表格配置
type TableConfig struct {
	Font         string  `yaml:"font"`
	Size         float64 `yaml:"size"`
	Borders      bool    `yaml:"borders"`
	HeaderBold   bool    `yaml:"headerBold"`
	HeaderFill   string  `yaml:"headerFill"`
	HeaderColor  string  `yaml:"headerColor"`
	ColumnPolicy string  `yaml:"columnPolicy"` // pad, truncate, reject
}

// ScannerConfig 行扫描器配置
type ScannerConfig struct {
	SkipPreamble    bool     `yaml:"skipPreamble"`
	TaglinePrefixes []string `yaml:"taglinePrefixes"`
}

// ParserConfig 解析引擎配置
type ParserConfig struct {
	Engine string `yaml:"engine"` // "scanner" or "goldmark"
}

// TitleConfig 文档标题块，替代被跳过的前言
type TitleConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Tagline  string `yaml:"tagline"`
}

// HighlightConfig 代码高亮配置
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"`
}

// PDFConfig PDF输出配置
type PDFConfig struct {
	ChromePath string `yaml:"chromePath"`
	Timeout    int    `yaml:"timeout"` // 秒
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Config 完整配置
type Config struct {
	Styles struct {
		Body      StyleConfig `yaml:"body"`
		Heading1  StyleConfig `yaml:"heading1"`
		Heading2  StyleConfig `yaml:"heading2"`
		Heading3  StyleConfig `yaml:"heading3"`
		Title     StyleConfig `yaml:"title"`
		Subtitle  StyleConfig `yaml:"subtitle"`
		Tagline   StyleConfig `yaml:"tagline"`
		CodeBlock StyleConfig `yaml:"codeBlock"`
		List      StyleConfig `yaml:"list"`
	} `yaml:"styles"`
	Table     TableConfig     `yaml:"table"`
	Scanner   ScannerConfig   `yaml:"scanner"`
	Parser    ParserConfig    `yaml:"parser"`
	Title     TitleConfig     `yaml:"title"`
	Highlight HighlightConfig `yaml:"highlight"`
	PDF       PDFConfig       `yaml:"pdf"`
	Log       LogConfig       `yaml:"log"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigData, &cfg); err != nil {
		// default.yaml 随程序编译，解析失败属于编译期错误
		panic(fmt.Sprintf("internal error: failed to parse embedded default config: %v", err))
	}
	return &cfg
}

// LoadConfig 从文件加载配置，覆盖默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 规范化并检查枚举类配置项
//
// 枚举值去掉首尾空白并转为小写，之后各组件只需识别小写形式。
func (c *Config) Validate() error {
	for _, v := range []*string{&c.Parser.Engine, &c.Table.ColumnPolicy, &c.Log.Level, &c.Log.Format} {
		*v = strings.ToLower(strings.TrimSpace(*v))
	}

	switch c.Parser.Engine {
	case "", "scanner", "goldmark":
	default:
		return fmt.Errorf("未知的解析引擎: %q", c.Parser.Engine)
	}
	switch c.Table.ColumnPolicy {
	case "", "pad", "truncate", "reject":
	default:
		return fmt.Errorf("未知的表格列策略: %q", c.Table.ColumnPolicy)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("未知的日志级别: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("未知的日志格式: %q", c.Log.Format)
	}
	return nil
}

// GetHeadingStyle 获取标题样式
func (c *Config) GetHeadingStyle(level int) StyleConfig {
	switch level {
	case 1:
		return c.Styles.Heading1
	case 2:
		return c.Styles.Heading2
	case 3:
		return c.Styles.Heading3
	default:
		return c.Styles.Body
	}
}
