package mathtext

import (
	"html"
	"strings"

	"github.com/riverfjs/mathtext-go/internal/types"
)

// NodeKind represents the type of a rendered node.
type NodeKind int

const (
	// NodeText is markup between math spans.
	NodeText NodeKind = iota
	// NodeMath is a typeset expression.
	NodeMath
	// NodeFallback is an expression that failed to typeset.
	NodeFallback
)

// String returns the string representation of NodeKind.
func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeMath:
		return "math"
	case NodeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Node is one rendered piece of a Fragment.
type Node interface {
	Kind() NodeKind
	// Source returns the segment the node was rendered from.
	Source() Segment
	HTML() string
}

// TextNode represents text between math spans.
type TextNode struct {
	Segment Segment
	// Markup is the text after the text policy was applied.
	Markup string
}

// Kind returns NodeText.
func (n *TextNode) Kind() NodeKind { return NodeText }

// Source returns the originating segment.
func (n *TextNode) Source() Segment { return n.Segment }

// HTML wraps the markup in a <span>.
func (n *TextNode) HTML() string {
	return "<span>" + n.Markup + "</span>"
}

// MathNode represents a typeset expression.
type MathNode struct {
	Segment Segment
	Display bool
	// Markup is the typesetter output; empty for blank expressions.
	Markup string
}

// Kind returns NodeMath.
func (n *MathNode) Kind() NodeKind { return NodeMath }

// Source returns the originating segment.
func (n *MathNode) Source() Segment { return n.Segment }

// HTML 行内公式随文本流动，块级公式居中并带上下外边距
func (n *MathNode) HTML() string {
	if n.Display {
		return `<span class="math math-display" style="` + types.DisplayStyle + `">` + n.Markup + "</span>"
	}
	return `<span class="math math-inline">` + n.Markup + "</span>"
}

// FallbackNode shows the original delimited source of an expression that
// could not be typeset.
type FallbackNode struct {
	Segment Segment
	Err     error
}

// Kind returns NodeFallback.
func (n *FallbackNode) Kind() NodeKind { return NodeFallback }

// Source returns the originating segment.
func (n *FallbackNode) Source() Segment { return n.Segment }

// HTML escapes the source, delimiters included.
func (n *FallbackNode) HTML() string {
	return `<span class="math-error">` + html.EscapeString(n.Segment.Source()) + "</span>"
}

// Fragment is the rendered form of one content string.
type Fragment struct {
	ClassName string
	Nodes     []Node
}

// Empty reports whether the fragment renders nothing.
func (f *Fragment) Empty() bool {
	return f == nil || len(f.Nodes) == 0
}

// Failed returns the nodes that fell back to their source.
func (f *Fragment) Failed() []*FallbackNode {
	if f == nil {
		return nil
	}
	var out []*FallbackNode
	for _, n := range f.Nodes {
		if fb, ok := n.(*FallbackNode); ok {
			out = append(out, fb)
		}
	}
	return out
}

// HTML 生成容器 <div> 及其内容；空片段返回空串
func (f *Fragment) HTML() string {
	if f.Empty() {
		return ""
	}
	var b strings.Builder
	if f.ClassName != "" {
		b.WriteString(`<div class="` + html.EscapeString(f.ClassName) + `">`)
	} else {
		b.WriteString("<div>")
	}
	for _, n := range f.Nodes {
		b.WriteString(n.HTML())
	}
	b.WriteString("</div>")
	return b.String()
}

// String returns HTML.
func (f *Fragment) String() string {
	return f.HTML()
}
