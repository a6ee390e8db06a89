package typeset

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"
)

// SVG typesets with canvas' TeX engine and emits an inline <svg>.
type SVG struct {
	// Margin around the formula, in millimetres.
	Margin float64
}

// NewSVG 创建 SVG 排版器
func NewSVG() *SVG {
	return &SVG{Margin: 0.5}
}

// Typeset parses expr into a path and serialises it.
func (s *SVG) Typeset(expr string, display bool) (string, error) {
	expr = strings.TrimSpace(expr)
	p, err := canvas.ParseLaTeX(expr)
	if err != nil {
		return "", errors.Wrap(err, "svg: parse")
	}

	c := canvas.New(0, 0)
	ctx := canvas.NewContext(c)
	ctx.DrawPath(0, 0, p)
	c.Fit(s.Margin)
	width, height := c.Size()
	if width <= 0 || height <= 0 {
		return "", errors.New("svg: empty drawing")
	}

	var buf bytes.Buffer
	writer := svg.New(&buf, width, height, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "svg: write")
	}

	out := buf.String()
	if i := strings.Index(out, "<svg"); i > 0 {
		out = out[i:]
	}
	class := `<svg class="math-svg-inline"`
	if display {
		class = `<svg class="math-svg-display"`
	}
	return strings.Replace(strings.TrimSpace(out), "<svg", class, 1), nil
}
