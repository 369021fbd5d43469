package parser

import (
	"fmt"
	"strings"
)

// ColumnPolicy 表格列数不一致时的处理策略
type ColumnPolicy string

const (
	// PolicyPad 所有行（包括表头）补齐到最宽行的列数，不丢数据
	PolicyPad ColumnPolicy = "pad"
	// PolicyTruncate 所有行按表头列数补齐或截断
	PolicyTruncate ColumnPolicy = "truncate"
	// PolicyReject 按 pad 输出表格，同时返回 MalformedTableError
	PolicyReject ColumnPolicy = "reject"
)

// ParseColumnPolicy 解析策略名称，空字符串视为 pad
func ParseColumnPolicy(s string) (ColumnPolicy, error) {
	switch p := ColumnPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyPad, nil
	case PolicyPad, PolicyTruncate, PolicyReject:
		return p, nil
	default:
		return "", fmt.Errorf("未知的表格列策略: %q", s)
	}
}

// MalformedTableError 表格中某行的单元格数与表头不一致
type MalformedTableError struct {
	Line   int // 表格首行在源文件中的行号 (从1开始)
	Row    int // 出错行在表格中的序号 (从1开始，表头为1)
	Header int
	Cells  int
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("第%d行的表格中第%d行有%d个单元格，表头有%d个", e.Line, e.Row, e.Cells, e.Header)
}

// isTableRow 去空白后以 | 开头且之后还有 |
func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed[1:], "|")
}

// splitRow 去掉外侧的 |，按 | 拆分并修剪每个单元格
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	cells := strings.Split(trimmed, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// isSeparatorRow 每个单元格都只由 - : 和空格组成
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

var cellMarkup = strings.NewReplacer("**", "", "`", "", "*", "")

// cleanCell 去掉单元格中的强调标记
func cleanCell(s string) string {
	return cellMarkup.Replace(s)
}

// normalizeRows 按策略统一列数；返回第一个列数不一致的行（从1开始），一致时返回0
func normalizeRows(rows [][]string, policy ColumnPolicy) ([][]string, int) {
	if len(rows) == 0 {
		return rows, 0
	}
	header := len(rows[0])
	widest := header
	bad := 0
	for i, row := range rows {
		if len(row) != header && bad == 0 {
			bad = i + 1
		}
		if len(row) > widest {
			widest = len(row)
		}
	}
	if bad == 0 {
		return rows, 0
	}

	width := widest
	if policy == PolicyTruncate {
		width = header
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		fixed := make([]string, width)
		copy(fixed, row)
		out[i] = fixed
	}
	return out, bad
}
