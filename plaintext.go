package mathtext

import (
	"strings"

	"github.com/riverfjs/mathtext-go/internal/converter"
	"github.com/riverfjs/mathtext-go/internal/latex"
)

// PlainText 将内容转为纯文本：公式转为 Unicode，文本中的 \$ 还原为 $
//
// 无法转换的公式保留原始定界文本。文本中的标记不做处理。
func PlainText(content string, opts ...Option) string {
	options := applyOptions(opts...)
	var b strings.Builder
	for _, seg := range converter.Scan(content, options.scanOptions()) {
		if !seg.Kind.IsMath() {
			b.WriteString(converter.UnescapeDollars(seg.Text))
			continue
		}
		expr, err := options.Macros.Expand(seg.Text)
		if err == nil {
			expr, err = latex.ToUnicode(expr)
		}
		if err != nil {
			b.WriteString(seg.Source())
			continue
		}
		b.WriteString(expr)
	}
	return b.String()
}

// CountText 计算纯文本形式的长度（UTF-16 code units）
//
// 与浏览器端 String.length 一致，可用于校验题干长度限制。
func CountText(content string, opts ...Option) int {
	return UTF16Len(PlainText(content, opts...))
}
