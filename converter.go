package mathtext

import (
	"html"
	"strings"

	"github.com/riverfjs/mathtext-go/internal/converter"
	"github.com/riverfjs/mathtext-go/internal/parser"
	"github.com/riverfjs/mathtext-go/internal/typeset"
)

// 导出类型别名
type Segment = converter.Segment
type SegmentKind = converter.Kind

const (
	SegmentText    = converter.KindText
	SegmentInline  = converter.KindInline
	SegmentDisplay = converter.KindDisplay
)

// Split 将内容切分为文本段与公式段，不做排版
func Split(content string, opts ...Option) []Segment {
	options := applyOptions(opts...)
	return converter.Scan(content, options.scanOptions())
}

func (o *ConvertOptions) scanOptions() converter.ScanOptions {
	return converter.ScanOptions{
		Brackets:         o.Config.Brackets,
		MultilineDisplay: o.Config.MultilineDisplay,
	}
}

// typesetter resolves the engine. An unknown engine name yields a typesetter
// that fails every call, so each expression falls back to its source.
func (o *ConvertOptions) typesetter() Typesetter {
	if o.Typesetter != nil {
		return typeset.Safe(o.Typesetter)
	}
	t, err := typeset.New(o.Config)
	if err != nil {
		Logger.Printf("engine: %v", err)
		return typeset.Func(func(string, bool) (string, error) {
			return "", err
		})
	}
	return t
}

// render 扫描、排版并组装片段
func render(content string, o *ConvertOptions) *Fragment {
	frag := &Fragment{ClassName: o.Config.ClassName}
	if content == "" {
		return frag
	}

	segments := converter.Scan(content, o.scanOptions())
	var ts Typesetter
	for _, seg := range segments {
		if !seg.Kind.IsMath() {
			frag.Nodes = append(frag.Nodes, &TextNode{
				Segment: seg,
				Markup:  renderText(seg.Text, o.Config.TextPolicy),
			})
			continue
		}
		if ts == nil {
			ts = o.typesetter()
		}
		frag.Nodes = append(frag.Nodes, renderMath(seg, ts, o.Macros))
	}
	return frag
}

func renderMath(seg Segment, ts Typesetter, macros *MacroSet) Node {
	display := seg.Kind == converter.KindDisplay
	expr := seg.Text
	if strings.TrimSpace(expr) == "" {
		return &MathNode{Segment: seg, Display: display}
	}

	expanded, err := macros.Expand(expr)
	if err != nil {
		Logger.Printf("expand %s %q failed: %v", seg.Kind, expr, err)
		return &FallbackNode{Segment: seg, Err: err}
	}

	markup, err := ts.Typeset(expanded, display)
	if err != nil {
		Logger.Printf("typeset %s %q failed: %v", seg.Kind, expr, err)
		return &FallbackNode{Segment: seg, Err: err}
	}
	return &MathNode{Segment: seg, Display: display, Markup: markup}
}

// renderText applies the text policy to verbatim text.
func renderText(text string, policy TextPolicy) string {
	switch policy {
	case TextEscaped:
		return html.EscapeString(converter.UnescapeDollars(text))
	case TextMarkdown:
		return parser.RenderMarkdown(text)
	default:
		return converter.UnescapeDollars(text)
	}
}
