// Package macro parses LaTeX macro definitions and expands them in math
// expressions before typesetting.
package macro

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// maxDepth bounds nested expansion.
	maxDepth = 16
	// maxExpand bounds the total number of expansions of one expression.
	maxExpand = 1000
)

var (
	// ErrTooDeep 宏展开嵌套过深（通常是自引用）
	ErrTooDeep = errors.New("macro expansion too deep")
	// ErrTooMany 展开次数超出上限（定义相互倍增）
	ErrTooMany = errors.Errorf("too many macro expansions (limit %d)", maxExpand)
)

// Macro 单个宏定义
type Macro struct {
	Name  string
	Arity int
	Body  string
}

// Set 宏集合，构建完成后只读，可并发使用
type Set struct {
	macros map[string]Macro
}

// NewSet 创建空集合
func NewSet() *Set {
	return &Set{macros: make(map[string]Macro)}
}

// Parse 解析定义文本
func Parse(filename, src string) (*Set, error) {
	f, err := defParser.ParseString(filename, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse macros")
	}

	set := NewSet()
	for _, def := range f.Definitions {
		var body string
		if def.Body != nil {
			body = def.Body.inner()
		}
		switch def.Keyword {
		case `\newcommand`, `\providecommand`:
			if _, ok := set.macros[def.Name]; ok && def.Keyword == `\newcommand` {
				return nil, errors.Errorf("%s: %s already defined", def.Pos, def.Name)
			}
		case `\renewcommand`:
		default:
			return nil, errors.Errorf("%s: unsupported definition command %s", def.Pos, def.Keyword)
		}
		if err := set.Define(def.Name, def.Arity, body); err != nil {
			return nil, errors.Wrapf(err, "%s", def.Pos)
		}
	}
	return set, nil
}

// Load 读取并解析定义文件
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read macros %s", path)
	}
	return Parse(path, string(data))
}

// Define adds or replaces a macro. name includes the leading backslash.
func (s *Set) Define(name string, arity int, body string) error {
	if len(name) < 2 || name[0] != '\\' {
		return errors.Errorf("invalid macro name %q", name)
	}
	if arity < 0 || arity > 9 {
		return errors.Errorf("macro %s: arity %d out of range", name, arity)
	}
	s.macros[name] = Macro{Name: name, Arity: arity, Body: body}
	return nil
}

// Lookup 查找宏
func (s *Set) Lookup(name string) (Macro, bool) {
	if s == nil {
		return Macro{}, false
	}
	m, ok := s.macros[name]
	return m, ok
}

// Len returns the number of macros.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.macros)
}

// Merge copies the macros of other into s; other wins on conflict.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for k, v := range other.macros {
		s.macros[k] = v
	}
}

// Expand 展开 expr 中的所有宏
func (s *Set) Expand(expr string) (string, error) {
	if s.Len() == 0 {
		return expr, nil
	}
	e := &expander{set: s, budget: maxExpand}
	return e.expand(expr, 0)
}

// expander carries the expansion budget shared by one Expand call.
type expander struct {
	set    *Set
	budget int
}

func (e *expander) expand(expr string, depth int) (string, error) {
	if depth > maxDepth {
		return "", ErrTooDeep
	}
	var b strings.Builder
	i := 0
	for i < len(expr) {
		if expr[i] != '\\' {
			b.WriteByte(expr[i])
			i++
			continue
		}
		name, next := readCommand(expr, i)
		m, ok := e.set.macros[name]
		if !ok {
			b.WriteString(name)
			i = next
			continue
		}
		if e.budget--; e.budget < 0 {
			return "", ErrTooMany
		}
		args := make([]string, m.Arity)
		for k := range args {
			args[k], next = readArg(expr, next)
		}
		out, err := e.expand(substitute(m.Body, args), depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		i = next
	}
	return b.String(), nil
}

// readCommand reads a control word or control symbol starting at the backslash at i.
func readCommand(s string, i int) (string, int) {
	j := i + 1
	for j < len(s) && isLetter(s[j]) {
		j++
	}
	if j == i+1 && j < len(s) {
		_, size := utf8.DecodeRuneInString(s[j:])
		j += size
	}
	return s[i:j], j
}

// readArg reads one undelimited argument: a {group} (braces stripped) or a single token.
func readArg(s string, i int) (string, int) {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	if i >= len(s) {
		return "", i
	}
	switch s[i] {
	case '{':
		level := 0
		for j := i; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '{':
				level++
			case '}':
				level--
				if level == 0 {
					return s[i+1 : j], j + 1
				}
			}
		}
		return s[i+1:], len(s)
	case '\\':
		return readCommand(s, i)
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[i : i+size], i + size
}

func substitute(body string, args []string) string {
	if !strings.Contains(body, "#") {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '#' || i+1 >= len(body) {
			b.WriteByte(body[i])
			continue
		}
		next := body[i+1]
		switch {
		case next == '#':
			b.WriteByte('#')
			i++
		case next >= '1' && next <= '9':
			if n := int(next - '1'); n < len(args) {
				b.WriteString(args[n])
			}
			i++
		default:
			b.WriteByte('#')
		}
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
