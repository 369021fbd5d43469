package parser

import (
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"blog2docx/internal/document"
)

const (
	fenceMarker = "```"
	ruleMarker  = "---"
)

// 列表项模式，按尝试顺序排列
var (
	orderedLeadDash = regexp.MustCompile(`^(\d+)\.\s+\*\*(.+?)\*\*\s*[—–-]\s*(.*)`)
	orderedLead     = regexp.MustCompile(`^(\d+)\.\s+\*\*(.+?)\*\*(.*)`)
	orderedPlain    = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	bulletLead      = regexp.MustCompile(`^[-*]\s+\*\*(.+?)\*\*[:\s]*(.*)`)
	bulletPlain     = regexp.MustCompile(`^[-*]\s+(.*)`)
)

// Options 扫描器选项
type Options struct {
	// SkipPreamble 在第一条分隔线之前丢弃一级标题和标语行
	SkipPreamble bool
	// TaglinePrefixes 前言中需要丢弃的标语行前缀
	TaglinePrefixes []string
	ColumnPolicy    ColumnPolicy
	Logger          *slog.Logger
}

// DefaultOptions 返回默认选项
func DefaultOptions() Options {
	return Options{
		SkipPreamble: true,
		ColumnPolicy: PolicyPad,
	}
}

// Scanner 逐行扫描Markdown并产出文档块
//
// Scanner 本身不保存扫描状态，可以在多个goroutine中同时使用。
type Scanner struct {
	opts  Options
	log   *slog.Logger
	rules []lineRule
}

// NewScanner 创建新的扫描器
func NewScanner(opts Options) *Scanner {
	if opts.ColumnPolicy == "" {
		opts.ColumnPolicy = PolicyPad
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Scanner{opts: opts, log: log}
	s.rules = []lineRule{
		{name: "rule", match: s.scanRule},
		{name: "heading", match: s.scanHeading},
		{name: "ordered", match: s.scanOrdered},
		{name: "bullet", match: s.scanBullet},
		{name: "blank", match: s.scanBlank},
		{name: "paragraph", match: s.scanParagraph},
	}
	return s
}

type mode int

const (
	modeNormal mode = iota
	modeCodeBlock
	modeTable
)

// scanState 单次扫描的状态，只属于一次 Scan 调用
type scanState struct {
	mode     mode
	preamble preamble

	codeLang  string
	codeLine  int
	codeLines []string

	tableLine int
	rows      [][]string

	doc  document.Document
	errs []error
}

func (st *scanState) emit(b document.Block) {
	st.doc = append(st.doc, b)
}

// lineRule 普通模式下的行分类规则，匹配成功返回true
type lineRule struct {
	name  string
	match func(st *scanState, line, trimmed string) bool
}

// ScanString 按换行拆分后扫描
func (s *Scanner) ScanString(src string) (document.Document, error) {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return s.Scan(lines)
}

// Scan 扫描全部行并返回文档块序列
//
// 扫描从不中途停止。只有在 reject 策略下遇到列数不一致的表格时才返回错误，
// 此时文档仍然完整返回。
func (s *Scanner) Scan(lines []string) (document.Document, error) {
	st := &scanState{preamble: preamble{active: s.opts.SkipPreamble, prefixes: s.opts.TaglinePrefixes}}
	for i, line := range lines {
		s.scanLine(st, i+1, line)
	}

	switch st.mode {
	case modeTable:
		s.flushTable(st)
	case modeCodeBlock:
		s.log.Warn("unclosed code fence discarded",
			"line", st.codeLine, "lines", len(st.codeLines))
	}
	return st.doc, errors.Join(st.errs...)
}

func (s *Scanner) scanLine(st *scanState, n int, line string) {
	trimmed := strings.TrimSpace(line)

	if st.preamble.skip(line) {
		return
	}

	if st.mode == modeTable && !isTableRow(line) {
		s.flushTable(st)
	}

	if strings.HasPrefix(trimmed, fenceMarker) {
		s.toggleFence(st, n, trimmed)
		return
	}
	if st.mode == modeCodeBlock {
		st.codeLines = append(st.codeLines, line)
		return
	}

	if isTableRow(line) {
		s.scanTableRow(st, n, line)
		return
	}

	for _, r := range s.rules {
		if r.match(st, line, trimmed) {
			return
		}
	}
}

func (s *Scanner) toggleFence(st *scanState, n int, trimmed string) {
	if st.mode != modeCodeBlock {
		st.mode = modeCodeBlock
		st.codeLang = strings.TrimSpace(strings.TrimPrefix(trimmed, fenceMarker))
		st.codeLine = n
		st.codeLines = nil
		return
	}
	st.emit(&document.CodeBlock{
		Language: st.codeLang,
		Text:     strings.Join(st.codeLines, "\n"),
	})
	st.mode = modeNormal
	st.codeLang = ""
	st.codeLines = nil
}

func (s *Scanner) scanTableRow(st *scanState, n int, line string) {
	if st.mode != modeTable {
		st.mode = modeTable
		st.tableLine = n
		st.rows = nil
	}
	cells := splitRow(line)
	if isSeparatorRow(cells) {
		return
	}
	for i, c := range cells {
		cells[i] = cleanCell(c)
	}
	st.rows = append(st.rows, cells)
}

// flushTable 结束当前表格并按列策略输出
func (s *Scanner) flushTable(st *scanState) {
	rows := st.rows
	st.mode = modeNormal
	st.rows = nil
	if len(rows) == 0 {
		return
	}

	policy := s.opts.ColumnPolicy
	fixed, bad := normalizeRows(rows, policy)
	if bad > 0 {
		err := &MalformedTableError{
			Line:   st.tableLine,
			Row:    bad,
			Header: len(rows[0]),
			Cells:  len(rows[bad-1]),
		}
		s.log.Warn("table column count mismatch",
			"line", err.Line, "row", err.Row, "header", err.Header, "cells", err.Cells, "policy", string(policy))
		if policy == PolicyReject {
			st.errs = append(st.errs, err)
		}
	}
	st.emit(&document.Table{Rows: fixed})
}

func (s *Scanner) scanRule(st *scanState, _, trimmed string) bool {
	if trimmed != ruleMarker {
		return false
	}
	st.emit(&document.Rule{})
	return true
}

func (s *Scanner) scanHeading(st *scanState, line, _ string) bool {
	for level := 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			st.emit(&document.Heading{
				Level: level,
				Text:  strings.TrimSpace(line[len(prefix):]),
			})
			return true
		}
	}
	return false
}

func (s *Scanner) scanOrdered(st *scanState, line, _ string) bool {
	if m := orderedLeadDash.FindStringSubmatch(line); m != nil {
		st.emit(&document.ListItem{
			Ordered:   true,
			Number:    m[1],
			Lead:      m[2],
			Separator: " — ",
			Runs:      ParseInline(m[3]),
		})
		return true
	}
	if m := orderedLead.FindStringSubmatch(line); m != nil {
		st.emit(&document.ListItem{
			Ordered: true,
			Number:  m[1],
			Lead:    m[2],
			Runs:    ParseInline(m[3]),
		})
		return true
	}
	if m := orderedPlain.FindStringSubmatch(line); m != nil {
		st.emit(&document.ListItem{
			Ordered: true,
			Number:  m[1],
			Runs:    ParseInline(m[2]),
		})
		return true
	}
	return false
}

func (s *Scanner) scanBullet(st *scanState, line, _ string) bool {
	if m := bulletLead.FindStringSubmatch(line); m != nil {
		item := &document.ListItem{Lead: m[1]}
		if m[2] != "" {
			item.Separator = ": "
			item.Runs = ParseInline(m[2])
		}
		st.emit(item)
		return true
	}
	if m := bulletPlain.FindStringSubmatch(line); m != nil {
		st.emit(&document.ListItem{Runs: ParseInline(m[1])})
		return true
	}
	return false
}

func (s *Scanner) scanBlank(_ *scanState, _, trimmed string) bool {
	return trimmed == ""
}

func (s *Scanner) scanParagraph(st *scanState, line, _ string) bool {
	if runs := ParseInline(line); len(runs) > 0 {
		st.emit(&document.Paragraph{Runs: runs})
	}
	return true
}

