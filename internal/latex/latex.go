package latex

import (
	"fmt"
	"strings"
	"sync"
)

var (
	defaultParser *Parser
	parserOnce    sync.Once
)

// Convert 将 LaTeX 数学表达式转换为 Unicode 文本
//
// 解析过程中的 panic 会被恢复并以 error 返回。
func (p *Parser) Convert(expr string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("latex: %v", r)
		}
	}()
	return strings.TrimSpace(p.Parse(expr)), nil
}

// ToUnicode converts expr with a shared parser. The parser holds no per-call state.
func ToUnicode(expr string) (string, error) {
	parserOnce.Do(func() {
		defaultParser = NewParser()
	})
	return defaultParser.Convert(expr)
}
