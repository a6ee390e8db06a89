package buffer

import "html"

// Buffer accumulates markup in parts.
type Buffer struct {
	parts []string
	size  int
}

// New creates a new Buffer.
func New() *Buffer {
	return &Buffer{
		parts: make([]string, 0, 8),
	}
}

// Write appends markup as-is.
func (b *Buffer) Write(s string) {
	if s == "" {
		return
	}
	b.parts = append(b.parts, s)
	b.size += len(s)
}

// WriteEscaped appends s with HTML special characters escaped.
func (b *Buffer) WriteEscaped(s string) {
	b.Write(html.EscapeString(s))
}

// HasSuffix reports whether the last written part ends with s.
func (b *Buffer) HasSuffix(s string) bool {
	if len(b.parts) == 0 {
		return false
	}
	last := b.parts[len(b.parts)-1]
	return len(last) >= len(s) && last[len(last)-len(s):] == s
}

// String returns the accumulated markup.
func (b *Buffer) String() string {
	if len(b.parts) == 0 {
		return ""
	}
	result := make([]byte, 0, b.size)
	for _, p := range b.parts {
		result = append(result, p...)
	}
	return string(result)
}

