// Package mathtext 渲染内嵌数学公式的文本
//
// 内容中的 $$...$$ 按块级公式、$...$ 按行内公式交给排版引擎，
// 其余文本按所选策略输出，最终拼装为一个 HTML 片段。
//
// 核心功能：
//   - 单次前向扫描切分文本与公式（\$ 为转义，未闭合的定界符按文本处理）
//   - 多种排版引擎：MathML（默认）、SVG、Unicode、远程图片
//   - 排版失败时保留原始定界符作为回退，不向调用方抛出错误
//   - \newcommand 宏展开
//   - 题目与选项的批量渲染
//
// 示例：
//
//	html := mathtext.RenderHTML("What is $2+2$? $$x^2+y^2=z^2$$")
//
//	frag := mathtext.Render(content,
//	    mathtext.WithEngine(mathtext.EngineUnicode),
//	    mathtext.WithClassName("question-text"),
//	)
//	for _, n := range frag.Nodes {
//	    if fb, ok := n.(*mathtext.FallbackNode); ok {
//	        log.Println(fb.Err)
//	    }
//	}
package mathtext

import "github.com/riverfjs/mathtext-go/internal/macro"

// Render 将内容渲染为片段
//
// 空内容返回空片段，其 HTML 为空串。排版错误与 panic 不会返回给调用方：
// 失败的公式记录到 Logger，并以原始定界文本回退显示。
func Render(content string, opts ...Option) *Fragment {
	return render(content, applyOptions(opts...))
}

// RenderHTML is Render(content, opts...).HTML().
func RenderHTML(content string, opts ...Option) string {
	return Render(content, opts...).HTML()
}

// ParseMacros parses \newcommand and \renewcommand definitions.
func ParseMacros(src string) (*MacroSet, error) {
	return macro.Parse("macros", src)
}

// LoadMacros reads a definitions file.
func LoadMacros(path string) (*MacroSet, error) {
	return macro.Load(path)
}
