package converter

// Kind classifies a Segment.
type Kind int

const (
	// KindText is verbatim text between math spans.
	KindText Kind = iota
	// KindInline is $...$ (or \(...\)) math.
	KindInline
	// KindDisplay is $$...$$ (or \[...\]) math.
	KindDisplay
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInline:
		return "inline"
	case KindDisplay:
		return "display"
	default:
		return "unknown"
	}
}

// IsMath reports whether the kind is one of the math modes.
func (k Kind) IsMath() bool {
	return k == KindInline || k == KindDisplay
}

// Segment 记录输入中一段文本或公式的位置信息
type Segment struct {
	Kind       Kind
	Text       string // 文本内容或公式（不含定界符）
	Start      int    // Text 在输入中的起始位置（字节）
	End        int    // Text 在输入中的结束位置（字节）
	UTF16Start int    // UTF-16 起始位置
	UTF16End   int    // UTF-16 结束位置
	Open       string // 开始定界符，文本段为空
	Close      string // 结束定界符，文本段为空
}

// Source returns the segment exactly as it appeared in the input.
func (s Segment) Source() string {
	return s.Open + s.Text + s.Close
}
