package typeset

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/riverfjs/mathtext-go/internal/remote"
)

// Image points an <img> at a remote TeX image service.
type Image struct {
	Config *remote.Config
	// Embed 为 true 时下载图片并内联为 data URI
	Embed   bool
	Client  *http.Client
	Timeout time.Duration
}

// NewImage 创建图片排版器
func NewImage() *Image {
	return &Image{
		Config:  remote.DefaultConfig(),
		Timeout: 10 * time.Second,
	}
}

// Typeset returns an <img> tag whose alt text is the source expression.
func (m *Image) Typeset(expr string, display bool) (string, error) {
	expr = strings.TrimSpace(expr)
	class := "math-image"
	if display {
		class = "math-image math-image-display"
	}
	alt := html.EscapeString(expr)

	if !m.Embed {
		src := remote.ImageURL(expr, display, m.Config)
		return fmt.Sprintf(`<img class="%s" src="%s" alt="%s">`, class, html.EscapeString(src), alt), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.Timeout)
	defer cancel()
	uri, info, err := remote.DataURI(ctx, expr, display, m.Config, m.Client)
	if err != nil {
		return "", err
	}
	if info.Width > 0 && info.Height > 0 {
		return fmt.Sprintf(`<img class="%s" src="%s" width="%d" height="%d" alt="%s">`,
			class, uri, info.Width, info.Height, alt), nil
	}
	return fmt.Sprintf(`<img class="%s" src="%s" alt="%s">`, class, uri, alt), nil
}
