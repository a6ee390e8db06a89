package types

// TextPolicy 决定非数学文本如何输出
type TextPolicy string

const (
	// TextTrusted 原样输出文本中的标记（调用方保证安全）
	TextTrusted TextPolicy = "trusted"
	// TextEscaped 转义全部 HTML
	TextEscaped TextPolicy = "escaped"
	// TextMarkdown 按行内 Markdown 渲染，仅放行白名单标签
	TextMarkdown TextPolicy = "markdown"
)

// Valid reports whether p is a known policy.
func (p TextPolicy) Valid() bool {
	switch p {
	case TextTrusted, TextEscaped, TextMarkdown:
		return true
	}
	return false
}

// Engine names.
const (
	EngineMathML  = "mathml"
	EngineSVG     = "svg"
	EngineUnicode = "unicode"
	EngineImage   = "image"
)

// DisplayStyle is the inline style carried by display-mode math.
const DisplayStyle = "display:block;text-align:center;margin:1rem 0"

// RenderConfig 渲染配置
type RenderConfig struct {
	// ClassName is the class of the wrapping <div>. Empty omits the attribute.
	ClassName string
	// Engine selects the typesetter when no explicit one is supplied.
	Engine     string
	TextPolicy TextPolicy
	// MultilineDisplay lets $$...$$ spans cross line breaks.
	MultilineDisplay bool
	// Brackets enables \(...\) and \[...\] delimiters.
	Brackets bool
	// ImageBaseURL is used by the image engine.
	ImageBaseURL string
	// ImageEmbed 下载图片并以 data URI 内联
	ImageEmbed bool
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Engine:     EngineMathML,
		TextPolicy: TextTrusted,
	}
}
