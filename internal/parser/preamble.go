package parser

import "strings"

// preamble 跳过文档开头的标题块：一级标题、标语行和第一条分隔线
//
// 没有分隔线时跳过一直有效，全文的一级标题行都会被丢弃。
type preamble struct {
	active   bool
	prefixes []string
}

// skip 判断该行是否属于前言，遇到分隔线时结束前言
func (p *preamble) skip(line string) bool {
	if !p.active {
		return false
	}
	if strings.TrimSpace(line) == ruleMarker {
		p.active = false
		return true
	}
	if strings.HasPrefix(line, "# ") {
		return true
	}
	for _, prefix := range p.prefixes {
		if prefix != "" && strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// StripPreamble 按行扫描器的前言规则删除 src 中的前言行
//
// 供 goldmark 引擎使用，使两种引擎对标题块的处理一致。
func StripPreamble(src string, taglinePrefixes []string) string {
	p := &preamble{active: true, prefixes: taglinePrefixes}
	lines := strings.Split(src, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !p.skip(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
