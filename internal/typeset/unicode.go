package typeset

import (
	"html"
	"strings"

	"github.com/riverfjs/mathtext-go/internal/latex"
)

// Unicode renders math as plain Unicode text.
type Unicode struct{}

// Typeset 转换为 Unicode 并转义；显示模式下换行转为 <br>
func (Unicode) Typeset(expr string, display bool) (string, error) {
	text, err := latex.ToUnicode(expr)
	if err != nil {
		return "", err
	}
	text = html.EscapeString(text)
	if display {
		return strings.ReplaceAll(text, "\n", "<br>"), nil
	}
	return strings.ReplaceAll(text, "\n", " "), nil
}
