package parser

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/mathtext-go/internal/converter"
)

// InlineOptions goldmark 配置，用于题干等短文本
var InlineOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.Strikethrough, // ~~text~~
		extension.Linkify,       // 裸 URL 自动成链
	),
}

var inlineMarkdown = goldmark.New(InlineOptions...)

// RenderMarkdown 将一段文本按 Markdown 解析并生成受限的 HTML
//
// 首尾空白原样保留（goldmark 会裁掉段落两端的空白，而文本段常以空格与公式相邻）。
func RenderMarkdown(content string) string {
	lead, core, trail := splitSpace(content)
	if core == "" {
		return content
	}

	source := []byte(core)
	node := ParseAST(source)

	walker := converter.NewEventWalker(source)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return walker.Walk(n, entering)
	})

	return lead + walker.Result() + trail
}

// ParseAST 仅解析为 AST，不遍历
func ParseAST(source []byte) ast.Node {
	return inlineMarkdown.Parser().Parse(text.NewReader(source))
}

func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeftFunc(s, unicode.IsSpace)
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRightFunc(core, unicode.IsSpace)
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}
