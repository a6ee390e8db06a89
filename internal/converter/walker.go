package converter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/mathtext-go/internal/buffer"
)

// AllowedTags 是 Markdown 策略下放行的行内 HTML 标签（不允许属性）
var AllowedTags = map[string]bool{
	"br":     true,
	"b":      true,
	"i":      true,
	"u":      true,
	"em":     true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"small":  true,
}

var rawTagRe = regexp.MustCompile(`^<\s*(/?)\s*([a-zA-Z]+)\s*(/?)\s*>$`)

// EventWalker 遍历 goldmark AST 并生成受限的 HTML
type EventWalker struct {
	buf    *buffer.Buffer
	source []byte

	blockCount int
	listStack  []*int // nil=unordered, *int=ordered(next number)
	itemCount  int

	// 每个 Link 是否真正写出了 <a>，用于对称关闭
	linkStack []bool
}

// NewEventWalker 创建新的 EventWalker
func NewEventWalker(source []byte) *EventWalker {
	return &EventWalker{
		buf:       buffer.New(),
		source:    source,
		listStack: make([]*int, 0),
		linkStack: make([]bool, 0),
	}
}

// Walk 遍历 AST 节点
func (w *EventWalker) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	// --- Inline elements ---
	case *ast.Text:
		if entering {
			w.onText(n)
		}

	case *ast.String:
		if entering {
			w.buf.WriteEscaped(string(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			w.buf.Write("<code>")
			w.buf.WriteEscaped(extractCodeSpanText(n, w.source))
			w.buf.Write("</code>")
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		tag := "em"
		if n.Level == 2 {
			tag = "strong"
		}
		w.writeTag(tag, entering)

	case *east.Strikethrough:
		w.writeTag("del", entering)

	case *ast.Link:
		if entering {
			w.onStartLink(string(n.Destination))
		} else {
			w.onEndLink()
		}

	case *ast.AutoLink:
		if entering {
			url := string(n.URL(w.source))
			label := string(n.Label(w.source))
			w.onStartLink(url)
			w.buf.WriteEscaped(label)
			w.onEndLink()
			return ast.WalkSkipChildren, nil
		}

	case *ast.Image:
		// 图片不放行，仅保留替代文本（子节点）

	case *ast.RawHTML:
		if entering {
			w.onInlineHTML(string(n.Segments.Value(w.source)))
		}

	// --- Block elements ---
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			w.onStartBlock()
		} else {
			w.onEndBlock()
		}

	case *ast.Heading:
		if entering {
			w.onStartBlock()
			w.buf.Write("<strong>")
		} else {
			w.buf.Write("</strong>")
			w.onEndBlock()
		}

	case *ast.List:
		if entering {
			if n.IsOrdered() {
				start := n.Start
				w.listStack = append(w.listStack, &start)
			} else {
				w.listStack = append(w.listStack, nil)
			}
		} else if len(w.listStack) > 0 {
			w.listStack = w.listStack[:len(w.listStack)-1]
		}

	case *ast.ListItem:
		if entering {
			w.onStartItem()
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.onCodeBlock(n)
			return ast.WalkSkipChildren, nil
		}

	case *ast.HTMLBlock:
		if entering {
			w.onHTMLBlock(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		if entering {
			w.onStartBlock()
			w.blockCount++
		}
	}

	return ast.WalkContinue, nil
}

// Result 返回生成的 HTML
func (w *EventWalker) Result() string {
	return w.buf.String()
}

// --- Text handling ---

func (w *EventWalker) onText(n *ast.Text) {
	value := n.Segment.Value(w.source)
	if !n.IsRaw() {
		value = util.UnescapePunctuations(value)
	}
	w.buf.WriteEscaped(string(value))

	switch {
	case n.HardLineBreak():
		w.buf.Write("<br>")
	case n.SoftLineBreak():
		w.buf.Write("\n")
	}
}

func (w *EventWalker) onInlineHTML(raw string) {
	m := rawTagRe.FindStringSubmatch(raw)
	if m == nil || !AllowedTags[strings.ToLower(m[2])] {
		w.buf.WriteEscaped(raw)
		return
	}
	name := strings.ToLower(m[2])
	// <br>, </br> 与 <br/> 统一为 <br>
	if name == "br" {
		w.buf.Write("<br>")
		return
	}
	w.buf.Write("<" + m[1] + name + ">")
}

func (w *EventWalker) writeTag(tag string, entering bool) {
	if entering {
		w.buf.Write("<" + tag + ">")
	} else {
		w.buf.Write("</" + tag + ">")
	}
}

// --- Blocks ---

// 行内上下文中没有段落元素，块与块之间用 <br> 分隔
func (w *EventWalker) onStartBlock() {
	if len(w.listStack) > 0 {
		return
	}
	if w.blockCount > 0 && !w.buf.HasSuffix("<br>") {
		w.buf.Write("<br>")
	}
}

func (w *EventWalker) onEndBlock() {
	if len(w.listStack) == 0 {
		w.blockCount++
	}
}

func (w *EventWalker) onStartItem() {
	if w.itemCount > 0 || w.blockCount > 0 {
		w.buf.Write("<br>")
	}
	w.itemCount++

	depth := len(w.listStack)
	if depth == 0 {
		return
	}
	indent := strings.Repeat("&nbsp;&nbsp;", depth-1)
	current := w.listStack[depth-1]
	if current != nil {
		w.buf.Write(fmt.Sprintf("%s%d. ", indent, *current))
		*current++
	} else {
		w.buf.Write(indent + "• ")
	}
}

func (w *EventWalker) onCodeBlock(n ast.Node) {
	w.onStartBlock()
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		parts = append(parts, strings.TrimRight(string(line.Value(w.source)), "\n"))
	}
	w.buf.Write("<code>")
	for i, p := range parts {
		if i > 0 {
			w.buf.Write("<br>")
		}
		w.buf.WriteEscaped(p)
	}
	w.buf.Write("</code>")
	w.onEndBlock()
}

func (w *EventWalker) onHTMLBlock(n *ast.HTMLBlock) {
	w.onStartBlock()
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		w.onInlineRun(strings.TrimRight(string(line.Value(w.source)), "\n"))
		if i < lines.Len()-1 {
			w.buf.Write("\n")
		}
	}
	if n.HasClosure() {
		w.onInlineRun(strings.TrimRight(string(n.ClosureLine.Value(w.source)), "\n"))
	}
	w.onEndBlock()
}

// onInlineRun 处理 HTML 块中的一行：白名单标签放行，其余全部转义
func (w *EventWalker) onInlineRun(line string) {
	for line != "" {
		open := strings.IndexByte(line, '<')
		if open < 0 {
			w.buf.WriteEscaped(line)
			return
		}
		w.buf.WriteEscaped(line[:open])
		close := strings.IndexByte(line[open:], '>')
		if close < 0 {
			w.buf.WriteEscaped(line[open:])
			return
		}
		w.onInlineHTML(line[open : open+close+1])
		line = line[open+close+1:]
	}
}

// --- Links ---

// IsSafeURL 仅允许 http、https 与 mailto 链接
func IsSafeURL(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:")
}

func (w *EventWalker) onStartLink(url string) {
	if !IsSafeURL(url) {
		w.linkStack = append(w.linkStack, false)
		return
	}
	w.buf.Write(`<a href="`)
	w.buf.WriteEscaped(url)
	w.buf.Write(`" rel="nofollow noopener">`)
	w.linkStack = append(w.linkStack, true)
}

func (w *EventWalker) onEndLink() {
	if len(w.linkStack) == 0 {
		return
	}
	opened := w.linkStack[len(w.linkStack)-1]
	w.linkStack = w.linkStack[:len(w.linkStack)-1]
	if opened {
		w.buf.Write("</a>")
	}
}

// --- Utilities ---

func extractCodeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if textNode, ok := c.(*ast.Text); ok {
			_, _ = buf.Write(textNode.Segment.Value(source))
		}
	}
	return buf.String()
}
