package mathtext

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

// kinds 提取各段的类型与文本，便于比较
func kinds(segs []Segment) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.Kind.String()+":"+s.Text)
	}
	return out
}

// echo 原样返回表达式的排版器
var echo = TypesetterFunc(func(expr string, display bool) (string, error) {
	if display {
		return "D[" + expr + "]", nil
	}
	return "I[" + expr + "]", nil
})

// captureLog 临时替换 Logger 并返回输出缓冲区
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Logger
	SetLogger(log.New(&buf, "", 0))
	t.Cleanup(func() { SetLogger(old) })
	return &buf
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"no dollar", "plain text", []string{"text:plain text"}},
		{"display", "A$$X$$B", []string{"text:A", "display:X", "text:B"}},
		{"inline", "A$X$B", []string{"text:A", "inline:X", "text:B"}},
		{"mixed", "What is $2+2$? $$x^2+y^2=z^2$$",
			[]string{"text:What is ", "inline:2+2", "text:? ", "display:x^2+y^2=z^2"}},
		{"unterminated inline", "Cost is $5 today", []string{"text:Cost is $5 today"}},
		{"unterminated display", "a $$b", []string{"text:a $$b"}},
		{"lone display opener stays literal", "$$a$", []string{"text:$$a$"}},
		{"escaped dollar", `costs \$5 and $x$`, []string{`text:costs \$5 and `, "inline:x"}},
		{"inline does not cross newline", "$a\nb$", []string{"text:$a\nb$"}},
		{"inline yields to display", "$a$$b$$", []string{"text:$a", "display:b"}},
		{"two inline", "$a$ and $b$", []string{"inline:a", "text: and ", "inline:b"}},
		{"empty display", "x$$$$y", []string{"text:x", "display:", "text:y"}},
		{"adjacent display", "$$a$$$$b$$", []string{"display:a", "display:b"}},
		{"line break before display close", `$$a \\ b \\$$`, []string{`display:a \\ b \\`}},
		{"escaped backslash before display close", `$$a\\$$`, []string{`display:a\\`}},
		{"escaped backslash before inline close", `$a\\$ and $b$`, []string{`inline:a\\`, "text: and ", "inline:b"}},
		{"odd backslashes escape dollar", `$a\\\$b$`, []string{`inline:a\\\$b`}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Split(tt.input))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplit_Options(t *testing.T) {
	got := kinds(Split(`a \(x\) b \[y\]`, WithBrackets(true)))
	want := []string{"text:a ", "inline:x", "text: b ", "display:y"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Split(brackets) = %q, want %q", got, want)
	}

	if segs := Split(`a \(x\)`); len(segs) != 1 {
		t.Errorf("brackets should be off by default, got %q", kinds(segs))
	}

	got = kinds(Split("$$a\nb$$", WithMultilineDisplay(true)))
	if strings.Join(got, "|") != "display:a\nb" {
		t.Errorf("Split(multiline) = %q", got)
	}
	if segs := Split("$$a\nb$$"); len(segs) != 1 || segs[0].Kind != SegmentText {
		t.Errorf("multiline display should be off by default, got %q", kinds(segs))
	}
}

// TestSplit_RoundTrip 拼接各段应还原输入
func TestSplit_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"no math",
		"What is $2+2$? $$x^2+y^2=z^2$$",
		"Cost is $5 today",
		"$$$$",
		"$ $",
		"a $$b",
		"$a$$b$$c$",
		`\$1 + $x$ = \$2`,
		`$a\\$ and $b$ \\$c$`,
		"多字节 $α+β$ 😀 $$\\frac{1}{2}$$ 结束",
		"$$\n$$ $x$",
	}
	for _, in := range inputs {
		segs := Split(in)
		if got := JoinSource(segs); got != in {
			t.Errorf("JoinSource(Split(%q)) = %q", in, got)
		}

		var stripped strings.Builder
		pos := 0
		for _, s := range segs {
			if s.Kind == SegmentText && s.Text == "" {
				t.Errorf("Split(%q) produced an empty text segment", in)
			}
			if s.Start < pos {
				t.Errorf("Split(%q) segments overlap at %d", in, s.Start)
			}
			if in[s.Start:s.End] != s.Text {
				t.Errorf("Split(%q) offsets [%d:%d] do not match %q", in, s.Start, s.End, s.Text)
			}
			if UTF16Len(in[:s.Start]) != s.UTF16Start || UTF16Len(in[:s.End]) != s.UTF16End {
				t.Errorf("Split(%q) UTF-16 offsets wrong for %q", in, s.Text)
			}
			pos = s.End + len(s.Close)
			stripped.WriteString(s.Text)
		}
		if JoinText(segs) != stripped.String() {
			t.Errorf("JoinText mismatch for %q", in)
		}
	}
}

func TestRender_Spans(t *testing.T) {
	got := RenderHTML("What is $2+2$? $$x^2+y^2=z^2$$", WithTypesetter(echo))
	want := `<div><span>What is </span>` +
		`<span class="math math-inline">I[2+2]</span>` +
		`<span>? </span>` +
		`<span class="math math-display" style="display:block;text-align:center;margin:1rem 0">D[x^2+y^2=z^2]</span>` +
		`</div>`
	if got != want {
		t.Errorf("RenderHTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Empty(t *testing.T) {
	frag := Render("", WithClassName("q"))
	if !frag.Empty() {
		t.Error("Render(\"\") should be empty")
	}
	if frag.HTML() != "" {
		t.Errorf("Render(\"\").HTML() = %q, want empty", frag.HTML())
	}
}

func TestRender_ClassName(t *testing.T) {
	got := RenderHTML("hi", WithClassName(`a"b`))
	if got != `<div class="a&#34;b"><span>hi</span></div>` {
		t.Errorf("RenderHTML() = %q", got)
	}
	if DefaultConfig().ClassName != "" {
		t.Error("WithClassName must not modify the default config")
	}
}

func TestRender_BlankExpression(t *testing.T) {
	called := false
	ts := TypesetterFunc(func(expr string, display bool) (string, error) {
		called = true
		return expr, nil
	})
	frag := Render("a$$$$b$ $c", WithTypesetter(ts))
	if called {
		t.Error("typesetter should not be called for blank expressions")
	}
	if len(frag.Nodes) != 5 {
		t.Fatalf("Render() nodes = %d, want 5", len(frag.Nodes))
	}
	for _, i := range []int{1, 3} {
		m, ok := frag.Nodes[i].(*MathNode)
		if !ok || m.Markup != "" {
			t.Errorf("node %d = %#v, want empty MathNode", i, frag.Nodes[i])
		}
	}
}

// TestRender_Fallback 排版失败时显示原始定界文本并记录日志
func TestRender_Fallback(t *testing.T) {
	logs := captureLog(t)
	failing := TypesetterFunc(func(expr string, display bool) (string, error) {
		return "", errors.New("bad expr")
	})

	frag := Render("x $a<b$ and $$c$$", WithTypesetter(failing))
	failed := frag.Failed()
	if len(failed) != 2 {
		t.Fatalf("Failed() = %d, want 2", len(failed))
	}
	html := frag.HTML()
	for _, want := range []string{
		`<span class="math-error">$a&lt;b$</span>`,
		`<span class="math-error">$$c$$</span>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() = %s, should contain %s", html, want)
		}
	}
	if !strings.Contains(logs.String(), `typeset inline "a<b" failed: bad expr`) {
		t.Errorf("log = %q", logs.String())
	}
	if !strings.Contains(logs.String(), `typeset display "c" failed`) {
		t.Errorf("log = %q", logs.String())
	}
}

func TestRender_PanicRecovered(t *testing.T) {
	captureLog(t)
	panicky := TypesetterFunc(func(expr string, display bool) (string, error) {
		panic("engine exploded")
	})

	var frag *Fragment
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("panic escaped Render: %v", r)
			}
		}()
		frag = Render("see $x$", WithTypesetter(panicky))
	}()
	if len(frag.Failed()) != 1 {
		t.Errorf("Failed() = %d, want 1", len(frag.Failed()))
	}
}

func TestRender_UnknownEngine(t *testing.T) {
	logs := captureLog(t)
	frag := Render("$x$ and $y$", WithEngine("katex"))
	if len(frag.Failed()) != 2 {
		t.Errorf("Failed() = %d, want 2", len(frag.Failed()))
	}
	if !strings.Contains(logs.String(), `unknown engine "katex"`) {
		t.Errorf("log = %q", logs.String())
	}
}

func TestRender_TextPolicy(t *testing.T) {
	input := `<b>x</b> & \$5 $y$`
	tests := []struct {
		policy TextPolicy
		want   string
	}{
		{TextTrusted, `<span><b>x</b> & $5 </span>`},
		{TextEscaped, `<span>&lt;b&gt;x&lt;/b&gt; &amp; $5 </span>`},
		{TextMarkdown, `<span><b>x</b> &amp; $5 </span>`},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			got := RenderHTML(input, WithTypesetter(echo), WithTextPolicy(tt.policy))
			if !strings.Contains(got, tt.want) {
				t.Errorf("RenderHTML() = %s, should contain %s", got, tt.want)
			}
		})
	}
}

func TestRender_MarkdownBlocksScript(t *testing.T) {
	got := RenderHTML(`**bold** <script>alert(1)</script> $x$`, WithTypesetter(echo), WithTextPolicy(TextMarkdown))
	if strings.Contains(got, "<script>") {
		t.Errorf("RenderHTML() = %s, script tag must be escaped", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("RenderHTML() = %s, should contain <strong>", got)
	}
}

func TestRender_Macros(t *testing.T) {
	set, err := ParseMacros(`\newcommand{\sq}[1]{#1^2}`)
	if err != nil {
		t.Fatalf("ParseMacros() error = %v", err)
	}
	got := RenderHTML(`$\sq{x}$`, WithTypesetter(echo), WithMacros(set))
	if !strings.Contains(got, "I[x^2]") {
		t.Errorf("RenderHTML() = %s, want expanded macro", got)
	}
}

func TestRender_MacroRecursionFallsBack(t *testing.T) {
	captureLog(t)
	set, err := ParseMacros(`\newcommand{\x}{\x}`)
	if err != nil {
		t.Fatalf("ParseMacros() error = %v", err)
	}
	frag := Render(`$\x$`, WithTypesetter(echo), WithMacros(set))
	if len(frag.Failed()) != 1 {
		t.Errorf("Failed() = %d, want 1", len(frag.Failed()))
	}
}

func TestRender_UnicodeEngine(t *testing.T) {
	got := RenderHTML(`Area $\pi r^2$`, WithEngine(EngineUnicode))
	if !strings.Contains(got, `<span class="math math-inline">π r²</span>`) {
		t.Errorf("RenderHTML() = %s", got)
	}
}

func TestWithConfig_NotMutated(t *testing.T) {
	cfg := &RenderConfig{Engine: EngineUnicode, TextPolicy: TextEscaped, ClassName: "orig"}
	_ = Render("$x$", WithConfig(cfg), WithClassName("changed"))
	if cfg.ClassName != "orig" {
		t.Errorf("caller config mutated: %q", cfg.ClassName)
	}
}
