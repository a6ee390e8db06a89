// Package typeset turns LaTeX math expressions into markup.
//
// Every engine implements Typesetter. Engines returned by New are wrapped
// with Safe, so a panicking engine surfaces as an error.
package typeset

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/riverfjs/mathtext-go/internal/types"
)

// Typesetter 将单个数学表达式排版为 HTML 片段
type Typesetter interface {
	Typeset(expr string, display bool) (string, error)
}

// Func adapts an ordinary function to Typesetter.
type Func func(expr string, display bool) (string, error)

// Typeset calls f(expr, display).
func (f Func) Typeset(expr string, display bool) (string, error) {
	return f(expr, display)
}

// PanicError is returned by Safe when the wrapped engine panics.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("typesetter panic: %v", e.Value)
}

// Safe 包装 t，将 panic 转为 *PanicError
func Safe(t Typesetter) Typesetter {
	if t == nil {
		return nil
	}
	if _, ok := t.(safe); ok {
		return t
	}
	return safe{t}
}

type safe struct {
	inner Typesetter
}

func (s safe) Typeset(expr string, display bool) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", &PanicError{Value: r}
		}
	}()
	return s.inner.Typeset(expr, display)
}

// New 根据配置中的引擎名创建排版器
func New(cfg *types.RenderConfig) (Typesetter, error) {
	if cfg == nil {
		cfg = types.DefaultRenderConfig()
	}
	var t Typesetter
	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case "", types.EngineMathML:
		t = SharedMathML()
	case types.EngineSVG:
		t = NewSVG()
	case types.EngineUnicode:
		t = Unicode{}
	case types.EngineImage:
		img := NewImage()
		if cfg.ImageBaseURL != "" {
			img.Config.BaseURL = cfg.ImageBaseURL
		}
		img.Embed = cfg.ImageEmbed
		t = img
	default:
		return nil, errors.Errorf("unknown engine %q", cfg.Engine)
	}
	return Safe(t), nil
}

// Engines lists the engine names New accepts.
func Engines() []string {
	return []string{types.EngineMathML, types.EngineSVG, types.EngineUnicode, types.EngineImage}
}
