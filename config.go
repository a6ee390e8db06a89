package mathtext

import (
	"sync"

	"github.com/riverfjs/mathtext-go/internal/typeset"
	"github.com/riverfjs/mathtext-go/internal/types"
)

// 导出类型别名
type RenderConfig = types.RenderConfig
type TextPolicy = types.TextPolicy

const (
	TextTrusted  = types.TextTrusted
	TextEscaped  = types.TextEscaped
	TextMarkdown = types.TextMarkdown
)

const (
	EngineMathML  = types.EngineMathML
	EngineSVG     = types.EngineSVG
	EngineUnicode = types.EngineUnicode
	EngineImage   = types.EngineImage
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
// Callers must not modify it; the With* options copy it first.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// Engines lists the built-in engine names accepted by WithEngine.
func Engines() []string {
	return typeset.Engines()
}
