package remote

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func pngBytes(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// TestImageURL 测试 URL 生成
func TestImageURL(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		display  bool
		config   *Config
		prefix   string
		contains string
	}{
		{
			name:     "inline default",
			expr:     "x^2",
			prefix:   "https://latex.codecogs.com/svg.image?",
			contains: "%5Cinline%20x%5E2",
		},
		{
			name:     "display",
			expr:     " a+b ",
			display:  true,
			prefix:   "https://latex.codecogs.com/svg.image?",
			contains: "%5Cdisplaystyle%20a+b",
		},
		{
			name:     "custom base and format",
			expr:     "y",
			config:   &Config{BaseURL: "http://tex.local/", Format: "png"},
			prefix:   "http://tex.local/png.image?",
			contains: "%5Cinline%20y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageURL(tt.expr, tt.display, tt.config)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("ImageURL() = %v, should start with %v", got, tt.prefix)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("ImageURL() = %v, should contain %v", got, tt.contains)
			}
		})
	}
}

// TestProbe 测试图片识别
func TestProbe(t *testing.T) {
	tests := []struct {
		name   string
		setup  func() []byte
		format string
		width  int
		ok     bool
	}{
		{
			name:   "valid PNG",
			setup:  func() []byte { return pngBytes(12, 7) },
			format: "png",
			width:  12,
			ok:     true,
		},
		{
			name: "valid JPEG",
			setup: func() []byte {
				var buf bytes.Buffer
				_ = jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10)), nil)
				return buf.Bytes()
			},
			format: "jpeg",
			width:  10,
			ok:     true,
		},
		{
			name: "valid GIF",
			setup: func() []byte {
				img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{
					color.RGBA{0, 0, 0, 255},
					color.RGBA{255, 255, 255, 255},
				})
				var buf bytes.Buffer
				_ = gif.Encode(&buf, img, nil)
				return buf.Bytes()
			},
			format: "gif",
			width:  4,
			ok:     true,
		},
		{
			name:   "svg",
			setup:  func() []byte { return []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`) },
			format: "svg",
			ok:     true,
		},
		{
			name:  "invalid data",
			setup: func() []byte { return []byte("not an image") },
		},
		{
			name:  "corrupted PNG header",
			setup: func() []byte { return []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x00} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Probe(tt.setup())
			if (err == nil) != tt.ok {
				t.Fatalf("Probe() error = %v, want ok %v", err, tt.ok)
			}
			if !tt.ok {
				return
			}
			if info.Format != tt.format || info.Width != tt.width {
				t.Errorf("Probe() = %+v, want format %s width %d", info, tt.format, tt.width)
			}
		})
	}
}

// TestDataURI 测试下载并内联
func TestDataURI(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes(20, 10))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	uri, info, err := DataURI(ctx, "x", false, &Config{BaseURL: srv.URL, Format: "png"}, srv.Client())
	if err != nil {
		t.Fatalf("DataURI() error = %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI() = %.40s..., want png data URI", uri)
	}
	if info.Width != 20 || info.Height != 10 {
		t.Errorf("DataURI() info = %+v, want 20x10", info)
	}
	if !strings.Contains(gotQuery, "%5Cinline") {
		t.Errorf("server saw query %q", gotQuery)
	}
}

// TestDownload_HTTPError 测试非 200 响应
func TestDownload_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad formula", http.StatusBadRequest)
	}))
	defer srv.Close()

	if _, err := Download(context.Background(), srv.URL, srv.Client()); err == nil {
		t.Error("Download() should fail on HTTP 400")
	}
}

// TestDownload_TooLarge 超出大小上限时返回错误而不是截断
func TestDownload_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(bytes.Repeat([]byte{0}, maxImageSize+1))
	}))
	defer srv.Close()

	_, err := Download(context.Background(), srv.URL, srv.Client())
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("Download() error = %v, want size limit error", err)
	}

	_, _, err = DataURI(context.Background(), "x", false, &Config{BaseURL: srv.URL, Format: "png"}, srv.Client())
	if err == nil {
		t.Error("DataURI() should fail for an oversized image")
	}
}

// TestDownload_AtLimit 恰好达到上限的图片完整返回
func TestDownload_AtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{0}, maxImageSize))
	}))
	defer srv.Close()

	buf, err := Download(context.Background(), srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if buf.Len() != maxImageSize {
		t.Errorf("Download() = %d bytes, want %d", buf.Len(), maxImageSize)
	}
}

// BenchmarkImageURL 基准测试 URL 生成
func BenchmarkImageURL(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ImageURL(`\frac{a}{b} + \sqrt{x}`, true, nil)
	}
}
