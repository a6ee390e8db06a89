package mathtext

import (
	"strings"
	"unicode/utf16"
)

// UTF16Len returns the length of text in UTF-16 code units, the unit of
// Segment.UTF16Start/UTF16End and of browser string indices.
func UTF16Len(text string) int {
	n := 0
	for _, r := range text {
		n += utf16.RuneLen(r)
	}
	return n
}

// JoinText concatenates segment texts, i.e. the input with the math
// delimiters removed.
func JoinText(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// JoinSource concatenates segment sources; for the output of Split it
// reproduces the input exactly.
func JoinSource(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Source())
	}
	return b.String()
}

// MathSegments returns only the inline and display segments.
func MathSegments(segments []Segment) []Segment {
	var out []Segment
	for _, s := range segments {
		if s.Kind.IsMath() {
			out = append(out, s)
		}
	}
	return out
}
