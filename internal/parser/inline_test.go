package parser

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog2docx/internal/document"
)

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want document.Runs
	}{
		{
			name: "bold and italic",
			in:   "**bold** and *italic*",
			want: document.Runs{
				{Text: "bold", Bold: true},
				{Text: " and "},
				{Text: "italic", Italic: true},
			},
		},
		{
			name: "bold italic",
			in:   "a ***both*** b",
			want: document.Runs{{Text: "a "}, {Text: "both", Bold: true, Italic: true}, {Text: " b"}},
		},
		{
			name: "inline code renders bold",
			in:   "run `go test` now",
			want: document.Runs{{Text: "run "}, {Text: "go test", Bold: true}, {Text: " now"}},
		},
		{
			name: "link drops url",
			in:   "see [the docs](https://example.com/docs) here",
			want: document.Runs{{Text: "see "}, {Text: "the docs", Italic: true}, {Text: " here"}},
		},
		{
			name: "plain only",
			in:   "nothing special",
			want: document.Runs{{Text: "nothing special"}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "unclosed bold is literal",
			in:   "**open",
			want: document.Runs{{Text: "**open"}},
		},
		{
			name: "unclosed triple falls back to bold",
			in:   "***a**",
			want: document.Runs{{Text: "*a", Bold: true}},
		},
		{
			name: "star touching star is not italic",
			in:   "x *a**",
			want: document.Runs{{Text: "x *a**"}},
		},
		{
			name: "bracket without url",
			in:   "[not a link] text",
			want: document.Runs{{Text: "[not a link] text"}},
		},
		{
			name: "bracket with unclosed paren",
			in:   "[t](http://x",
			want: document.Runs{{Text: "[t](http://x"}},
		},
		{
			name: "empty code span vanishes",
			in:   "a``b",
			want: document.Runs{{Text: "ab"}},
		},
		{
			name: "multibyte text around delimiters",
			in:   "数据 **加粗** — done",
			want: document.Runs{{Text: "数据 "}, {Text: "加粗", Bold: true}, {Text: " — done"}},
		},
		{
			name: "adjacent same style spans merge",
			in:   "**a****b**",
			want: document.Runs{{Text: "ab", Bold: true}},
		},
		{
			name: "trailing lone star",
			in:   "5 * 3",
			want: document.Runs{{Text: "5 * 3"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInline(tt.in))
		})
	}
}

func TestParseInlineCoalescesPlainRuns(t *testing.T) {
	runs := ParseInline("a * b ` c [ d **e** f * g")
	for i := 1; i < len(runs); i++ {
		assert.False(t, runs[i-1].Plain() && runs[i].Plain(), "adjacent plain runs at %d: %+v", i, runs)
	}
}

func TestParseInlineUnmatchedDelimitersAreLiteral(t *testing.T) {
	for _, delim := range []string{"*", "**", "***", "`", "["} {
		line := "before " + delim + "after"
		runs := ParseInline(line)
		assert.Equal(t, line, runs.Text(), "delimiter %q", delim)
	}
}

// randomLine 用平衡的定界符拼出一行，并返回去掉定界符和URL后的期望文本
func randomLine(r *rand.Rand) (string, string) {
	words := []string{"alpha", "beta", "gamma", "数据", "naïve", "x=1", "a-b", "(paren)"}
	var line, want []string
	for i := 0; i < 1+r.Intn(8); i++ {
		w := words[r.Intn(len(words))]
		switch r.Intn(6) {
		case 0:
			line = append(line, "***"+w+"***")
		case 1:
			line = append(line, "**"+w+"**")
		case 2:
			line = append(line, "*"+w+"*")
		case 3:
			line = append(line, "`"+w+"`")
		case 4:
			line = append(line, "["+w+"](https://example.com/page)")
		default:
			line = append(line, w)
		}
		want = append(want, w)
	}
	return strings.Join(line, " "), strings.Join(want, " ")
}

func TestParseInlineReconstructsText(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		line, want := randomLine(r)
		runs := ParseInline(line)
		require.Equal(t, want, runs.Text(), "line %q", line)
		for _, run := range runs {
			require.NotEmpty(t, run.Text, "line %q", line)
		}
	}
}
