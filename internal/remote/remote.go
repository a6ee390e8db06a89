// Package remote builds and fetches formula images from a TeX image service
// that accepts the expression in the URL query (CodeCogs-compatible).
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultBaseURL is the public CodeCogs endpoint.
const DefaultBaseURL = "https://latex.codecogs.com"

// maxImageSize 单张图片的下载上限
const maxImageSize = 2 << 20

// Config 远程服务配置
type Config struct {
	BaseURL string
	// Format is the path segment the service renders to: svg, png or gif.
	Format string
	DPI    int
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Format:  "svg",
		DPI:     110,
	}
}

// ImageURL 生成表达式对应的图片 URL
func ImageURL(expr string, display bool, config *Config) string {
	if config == nil {
		config = DefaultConfig()
	}
	format := config.Format
	if format == "" {
		format = "svg"
	}

	var tex strings.Builder
	if config.DPI > 0 {
		fmt.Fprintf(&tex, `\dpi{%d}`, config.DPI)
	}
	if display {
		tex.WriteString(`\displaystyle `)
	} else {
		tex.WriteString(`\inline `)
	}
	tex.WriteString(strings.TrimSpace(expr))

	base := strings.TrimRight(config.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "/" + format + ".image?" + url.PathEscape(tex.String())
}

// Download 下载图片
func Download(ctx context.Context, imageURL string, client *http.Client) (*bytes.Buffer, error) {
	if client == nil {
		client = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "mathtext-go")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// 多读一个字节以区分恰好达到上限与超出上限
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxImageSize+1)); err != nil {
		return nil, errors.Wrap(err, "failed to read image data")
	}
	if buf.Len() > maxImageSize {
		return nil, errors.Errorf("image exceeds %d bytes", maxImageSize)
	}
	return &buf, nil
}

// Info describes a downloaded image.
type Info struct {
	Format string
	// Width and Height are zero for SVG.
	Width  int
	Height int
}

// MIME returns the media type for the image format.
func (i Info) MIME() string {
	if i.Format == "svg" {
		return "image/svg+xml"
	}
	return "image/" + i.Format
}

// Probe 识别图片格式并读取尺寸
func Probe(data []byte) (Info, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if trimmed := bytes.TrimSpace(head); bytes.HasPrefix(trimmed, []byte("<svg")) || bytes.HasPrefix(trimmed, []byte("<?xml")) {
		if bytes.Contains(data, []byte("<svg")) {
			return Info{Format: "svg"}, nil
		}
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, errors.Wrap(err, "not a valid image")
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// IsImage reports whether data is an image Probe understands.
func IsImage(data []byte) bool {
	_, err := Probe(data)
	return err == nil
}

// DataURI 下载表达式图片并编码为 data URI
func DataURI(ctx context.Context, expr string, display bool, config *Config, client *http.Client) (string, Info, error) {
	data, err := Download(ctx, ImageURL(expr, display, config), client)
	if err != nil {
		return "", Info{}, err
	}
	info, err := Probe(data.Bytes())
	if err != nil {
		return "", Info{}, err
	}
	return "data:" + info.MIME() + ";base64," + base64.StdEncoding.EncodeToString(data.Bytes()), info, nil
}
