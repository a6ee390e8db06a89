package macro

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `% course macros
\newcommand{\R}{\mathbb{R}}
\newcommand{\norm}[1]{\left\| #1 \right\|}
\newcommand\pair[2]{(#1, #2)}
\renewcommand{\vec}[1]{\mathbf{#1}}

\newcommand{\half}{\frac{1}{2}} % trailing comment
`

func TestParse(t *testing.T) {
	set, err := Parse("sample.tex", sample)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if set.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", set.Len())
	}

	tests := []struct {
		name  string
		arity int
		body  string
	}{
		{`\R`, 0, `\mathbb{R}`},
		{`\norm`, 1, `\left\| #1 \right\|`},
		{`\pair`, 2, `(#1, #2)`},
		{`\vec`, 1, `\mathbf{#1}`},
		{`\half`, 0, `\frac{1}{2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := set.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%s) not found", tt.name)
			}
			if m.Arity != tt.arity || m.Body != tt.body {
				t.Errorf("Lookup(%s) = {%d %q}, want {%d %q}", tt.name, m.Arity, m.Body, tt.arity, tt.body)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unsupported keyword", `\def{\x}{y}`},
		{"redefinition", "\\newcommand{\\x}{a}\n\\newcommand{\\x}{b}"},
		{"unbalanced body", `\newcommand{\x}{a`},
		{"stray text", `hello`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse("bad.tex", tt.src); err == nil {
				t.Errorf("Parse(%q) should fail", tt.src)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	set, err := Parse("sample.tex", sample)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{`x \in \R`, `x \in \mathbb{R}`},
		{`\norm{v}`, `\left\| v \right\|`},
		{`\pair{a}{b+c}`, `(a, b+c)`},
		{`\pair xy`, `(x, y)`},
		{`\vec{\half}`, `\mathbf{\frac{1}{2}}`},
		{`\Rx`, `\Rx`},
		{`\$5`, `\$5`},
		{`no macros here`, `no macros here`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := set.Expand(tt.in)
			if err != nil {
				t.Fatalf("Expand(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpand_Recursive(t *testing.T) {
	set := NewSet()
	if err := set.Define(`\loop`, 0, `x\loop`); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if _, err := set.Expand(`\loop`); !errors.Is(err, ErrTooDeep) {
		t.Errorf("Expand() error = %v, want ErrTooDeep", err)
	}
}

// TestExpand_Exponential 每层倍增的定义在展开次数上限处失败
func TestExpand_Exponential(t *testing.T) {
	set, err := Parse("bomb.tex", `
\newcommand{\a}{xx}
\newcommand{\b}{\a\a\a\a}
\newcommand{\c}{\b\b\b\b}
\newcommand{\d}{\c\c\c\c}
\newcommand{\e}{\d\d\d\d}
\newcommand{\f}{\e\e\e\e}
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := set.Expand(`\f`); !errors.Is(err, ErrTooMany) {
		t.Errorf("Expand() error = %v, want ErrTooMany", err)
	}

	// 预算按次调用计算，不会累积
	got, err := set.Expand(`\c`)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(got) != 32 {
		t.Errorf("Expand(\\c) = %d bytes, want 32", len(got))
	}
}

func TestExpand_NilSet(t *testing.T) {
	var set *Set
	got, err := set.Expand(`\R`)
	if err != nil || got != `\R` {
		t.Errorf("nil Set Expand() = %q, %v", got, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.tex")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := set.Lookup(`\R`); !ok {
		t.Error(`Load() missing \R`)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.tex"))
	if err == nil || !strings.Contains(err.Error(), "read macros") {
		t.Errorf("Load(missing) error = %v", err)
	}
}
