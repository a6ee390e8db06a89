package converter

import (
	"strings"
	"unicode/utf8"
)

// ScanOptions 控制扫描行为
type ScanOptions struct {
	// Brackets 同时识别 \(...\) 与 \[...\]
	Brackets bool
	// MultilineDisplay 允许块级公式跨行
	MultilineDisplay bool
}

// Scan 单次前向扫描，将 content 切分为文本段与公式段
//
// 规则：
//   - 先判断 $$ 再判断 $，块级定界符不会被拆成两个行内定界符
//   - 奇数个反斜杠后的 $ 是转义的美元符号，不作为定界符；\\ 是转义的反斜杠
//   - 未闭合的 $ 或 $$ 按普通文本处理，不影响后续解析
//   - 行内公式不跨行；块级公式仅在 MultilineDisplay 时跨行
func Scan(content string, opts ScanOptions) []Segment {
	s := &scanner{src: content, opts: opts}
	s.run()
	return s.segments
}

type scanner struct {
	src       string
	opts      ScanOptions
	segments  []Segment
	textStart int

	// incremental UTF-16 cursor; offsets are requested in ascending order
	u16Byte int
	u16Pos  int
}

func (s *scanner) run() {
	src := s.src
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\' && s.opts.Brackets && i+1 < len(src) && (src[i+1] == '(' || src[i+1] == '['):
			if next, ok := s.tryBracket(i); ok {
				i = next
			} else {
				i += 2
			}
		case c == '\\':
			// 跳过反斜杠及其后一个字符：\$ 是转义的 $，\\ 是转义的反斜杠
			i += 2
		case c == '$' && i+1 < len(src) && src[i+1] == '$':
			if next, ok := s.tryDisplay(i); ok {
				i = next
			} else {
				i += 2
			}
		case c == '$':
			if next, ok := s.tryInline(i); ok {
				i = next
			} else {
				i++
			}
		default:
			i++
		}
	}
	s.flushText(len(src))
}

// tryDisplay 尝试在 i 处匹配 $$...$$
func (s *scanner) tryDisplay(i int) (int, bool) {
	start := i + 2
	end := s.findClose(start, "$$", s.opts.MultilineDisplay)
	if end < 0 {
		return 0, false
	}
	s.emit(KindDisplay, i, start, end, "$$", "$$")
	return end + 2, true
}

// tryInline 尝试在 i 处匹配 $...$
//
// 若候选的结束 $ 恰好是一个完整 $$...$$ 的开头，则放弃，让块级公式优先。
func (s *scanner) tryInline(i int) (int, bool) {
	src := s.src
	for k := i + 1; k < len(src); k++ {
		switch src[k] {
		case '\\':
			if k+1 < len(src) && src[k+1] != '\n' {
				k++
			}
		case '\n':
			return 0, false
		case '$':
			if k+1 < len(src) && src[k+1] == '$' && s.findClose(k+2, "$$", s.opts.MultilineDisplay) >= 0 {
				return 0, false
			}
			s.emit(KindInline, i, i+1, k, "$", "$")
			return k + 1, true
		}
	}
	return 0, false
}

// tryBracket 尝试在 i 处匹配 \(...\) 或 \[...\]
func (s *scanner) tryBracket(i int) (int, bool) {
	kind, open, close, multiline := KindInline, `\(`, `\)`, false
	if s.src[i+1] == '[' {
		kind, open, close, multiline = KindDisplay, `\[`, `\]`, s.opts.MultilineDisplay
	}
	start := i + len(open)
	end := s.findClose(start, close, multiline)
	if end < 0 {
		return 0, false
	}
	s.emit(kind, i, start, end, open, close)
	return end + len(close), true
}

// findClose returns the byte index of the first delim at or after from, or -1.
func (s *scanner) findClose(from int, delim string, multiline bool) int {
	src := s.src
	for k := from; k < len(src); k++ {
		if strings.HasPrefix(src[k:], delim) {
			return k
		}
		switch src[k] {
		case '\\':
			if k+1 < len(src) && src[k+1] != '\n' {
				k++
			}
		case '\n':
			if !multiline {
				return -1
			}
		}
	}
	return -1
}

func (s *scanner) emit(kind Kind, openAt, start, end int, open, close string) {
	s.flushText(openAt)
	s.segments = append(s.segments, Segment{
		Kind:       kind,
		Text:       s.src[start:end],
		Start:      start,
		End:        end,
		UTF16Start: s.utf16At(start),
		UTF16End:   s.utf16At(end),
		Open:       open,
		Close:      close,
	})
	s.textStart = end + len(close)
}

func (s *scanner) flushText(upto int) {
	if upto <= s.textStart {
		return
	}
	s.segments = append(s.segments, Segment{
		Kind:       KindText,
		Text:       s.src[s.textStart:upto],
		Start:      s.textStart,
		End:        upto,
		UTF16Start: s.utf16At(s.textStart),
		UTF16End:   s.utf16At(upto),
	})
	s.textStart = upto
}

// utf16At converts a byte offset to a UTF-16 offset.
func (s *scanner) utf16At(b int) int {
	for s.u16Byte < b {
		r, size := utf8.DecodeRuneInString(s.src[s.u16Byte:])
		if r > 0xFFFF {
			s.u16Pos += 2
		} else {
			s.u16Pos++
		}
		s.u16Byte += size
	}
	return s.u16Pos
}

// UnescapeDollars 将文本中的 \$ 还原为 $，\\ 原样保留
func UnescapeDollars(text string) string {
	if !strings.Contains(text, `\$`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			if text[i+1] == '$' {
				b.WriteByte('$')
			} else {
				b.WriteByte(c)
				b.WriteByte(text[i+1])
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
