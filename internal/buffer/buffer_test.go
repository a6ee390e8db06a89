package buffer

import "testing"

func TestBuffer_WriteAndEscape(t *testing.T) {
	b := New()
	b.Write("<b>")
	b.WriteEscaped("a < b & c")
	b.Write("</b>")
	want := "<b>a &lt; b &amp; c</b>"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !b.HasSuffix("</b>") {
		t.Error("HasSuffix(\"</b>\") = false, want true")
	}
}

func TestBuffer_EmptyWrite(t *testing.T) {
	b := New()
	b.Write("")
	if b.String() != "" {
		t.Errorf("String() = %q, want empty", b.String())
	}
	if b.HasSuffix("") {
		t.Error("empty writes should not create parts")
	}
}
