package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blog2docx/internal/document"
)

const goldmarkSample = "# Title\n\n" +
	"Some **bold** and *it* with [link](http://x).\n\n" +
	"1. one\n2. two\n   - nested\n\n" +
	"> quoted `code`\n\n" +
	"| A | B |\n|---|---|\n| 1 | **2** |\n\n" +
	"```go\nx := 1\n```\n\n" +
	"---\n\n" +
	"#### Deep\n"

func TestMarkdownParserBlocks(t *testing.T) {
	doc := NewMarkdownParser().Blocks([]byte(goldmarkSample))
	assertDoc(t, document.Document{
		&document.Heading{Level: 1, Text: "Title"},
		&document.Paragraph{Runs: document.Runs{
			{Text: "Some "}, {Text: "bold", Bold: true}, {Text: " and "},
			{Text: "it", Italic: true}, {Text: " with "}, {Text: "link", Italic: true}, {Text: "."},
		}},
		&document.ListItem{Ordered: true, Number: "1", Runs: document.Runs{{Text: "one"}}},
		&document.ListItem{Ordered: true, Number: "2", Runs: document.Runs{{Text: "two"}}},
		&document.ListItem{Runs: document.Runs{{Text: "nested"}}},
		&document.Paragraph{Runs: document.Runs{{Text: "quoted "}, {Text: "code", Bold: true}}},
		&document.Table{Rows: [][]string{{"A", "B"}, {"1", "2"}}},
		&document.CodeBlock{Language: "go", Text: "x := 1"},
		&document.Rule{},
		&document.Heading{Level: 3, Text: "Deep"},
	}, doc)
}

func TestMarkdownParserMatchesScanner(t *testing.T) {
	src := "## Section\n\nA **b** *c* d.\n\n| H | I |\n|---|---|\n| 1 | 2 |\n\n```\nraw *x*\n```\n\n---\n"
	fromScanner, err := NewScanner(Options{}).ScanString(src)
	require.NoError(t, err)
	assertDoc(t, fromScanner, NewMarkdownParser().Blocks([]byte(src)))
}
