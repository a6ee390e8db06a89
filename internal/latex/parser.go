package latex

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parser 递归下降 LaTeX→Unicode 转换引擎
//
// 未知命令原样输出；无法用 Unicode 表示的结构退化为可读的 ASCII 近似。
type Parser struct {
	handlers map[string]handlerFunc
}

// handlerFunc consumes the arguments of cmd starting at index i.
type handlerFunc func(p *Parser, cmd, src string, i int) (string, int)

// NewParser 创建新的 LaTeX 解析器
func NewParser() *Parser {
	p := &Parser{handlers: make(map[string]handlerFunc)}
	p.register(handleFrac, `\frac`, `\dfrac`, `\tfrac`, `\cfrac`)
	p.register(handleSqrt, `\sqrt`)
	p.register(handleNot, `\not`)
	p.register(handleText, `\text`, `\operatorname`, `\mbox`, `\textrm`, `\textup`, `\mathop`)
	p.register(handleDelimiter, `\left`, `\right`, `\big`, `\Big`, `\bigg`, `\Bigg`)
	p.register(handleBinom, `\binom`, `\tbinom`, `\dbinom`)
	p.register(wrapBlock("[", "]"), `\boxed`)
	p.register(wrapBlock(" (mod ", ")"), `\pmod`)
	p.register(handlePhantom, `\phantom`, `\hphantom`, `\vphantom`)
	p.register(handleOverset, `\overset`, `\stackrel`)
	p.register(handleUnderset, `\underset`)
	p.register(handleSubstack, `\substack`)
	p.register(handleColor, `\color`)
	p.register(combineBlock(`\underline`), `\cancel`, `\bcancel`, `\xcancel`, `\sout`, `\underbrace`)
	p.register(combineBlock(`\overline`), `\overbrace`)
	p.register(handleArrow("→"), `\xrightarrow`)
	p.register(handleArrow("←"), `\xleftarrow`)
	p.register(handleBegin, `\begin`)
	p.register(handleEnd, `\end`)
	return p
}

func (p *Parser) register(h handlerFunc, commands ...string) {
	for _, c := range commands {
		p.handlers[c] = h
	}
}

// ──────────────────────────────────────────────
// character-level helpers
// ──────────────────────────────────────────────

// TranslateCombining applies the combining mark of command to text.
func TranslateCombining(command, text string) string {
	mark, ok := Combining[command]
	if !ok {
		return text
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}

	switch mark.Type {
	case FirstChar:
		// after the first base character and any marks already on it
		i := 1
		for i < len(runes) && isCombiningChar(runes[i]) {
			i++
		}
		return string(runes[:i]) + string(mark.Char) + string(runes[i:])
	case LastChar:
		return text + string(mark.Char)
	case AllChars:
		var b strings.Builder
		for _, r := range runes {
			b.WriteRune(r)
			if !unicode.IsSpace(r) {
				b.WriteRune(mark.Char)
			}
		}
		return b.String()
	}
	return text
}

// MakeNot negates a symbol, preferring a precomposed form.
func MakeNot(negated string) string {
	trimmed := strings.TrimSpace(negated)
	if trimmed == "" {
		return " "
	}
	if sym, ok := NotMap[trimmed]; ok {
		return sym
	}
	r, size := utf8.DecodeRuneInString(trimmed)
	return string(r) + "\u0338" + trimmed[size:]
}

func mapAll(text string, table map[rune]rune) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, ch := range text {
		m, ok := table[ch]
		if !ok {
			return ""
		}
		b.WriteRune(m)
	}
	return b.String()
}

// TryMakeSubscript returns text in Unicode subscripts, or "" when a character has none.
func TryMakeSubscript(text string) string {
	return mapAll(text, Subscripts)
}

// TryMakeSuperscript returns text in Unicode superscripts, or "" when a character has none.
func TryMakeSuperscript(text string) string {
	return mapAll(text, Superscripts)
}

// MakeSubscript 生成下标表示
func MakeSubscript(text string) string {
	return makeScript(text, TryMakeSubscript, "_")
}

// MakeSuperscript 生成上标表示
func MakeSuperscript(text string) string {
	return makeScript(text, TryMakeSuperscript, "^")
}

func makeScript(text string, try func(string) string, marker string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if s := try(text); s != "" {
		return s
	}
	if utf8.RuneCountInString(text) == 1 {
		return marker + text
	}
	return marker + "(" + text + ")"
}

// TranslateStyles applies a font command such as \mathbb to text.
func TranslateStyles(command, text string) string {
	table, ok := LatexStyles[command]
	if !ok || table == nil {
		return text
	}
	var b strings.Builder
	for _, ch := range text {
		if styled, ok := table[ch]; ok {
			b.WriteRune(styled)
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// MakeSqrt 生成根号的 Unicode 表示
func MakeSqrt(index, radicand string) string {
	var radix string
	switch index {
	case "", "2":
		radix = "√"
	case "3":
		radix = "∛"
	case "4":
		radix = "∜"
	default:
		if sup := TryMakeSuperscript(index); sup != "" {
			radix = sup + "√"
		} else {
			radix = "(" + index + ")√"
		}
	}
	return radix + TranslateCombining(`\overline`, radicand)
}

// MakeFraction 生成分数的 Unicode 表示
func MakeFraction(numerator, denominator string) string {
	n, d := strings.TrimSpace(numerator), strings.TrimSpace(denominator)
	if n == "" && d == "" {
		return ""
	}
	if frac, ok := FracMap[[2]string{n, d}]; ok {
		return frac
	}
	return maybeParenthesize(n) + "/" + maybeParenthesize(d)
}

func maybeParenthesize(text string) string {
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !isCombiningChar(r) && r != '_' {
			return "(" + text + ")"
		}
	}
	return text
}

func isCombiningChar(r rune) bool {
	return (r >= '\u0300' && r <= '\u036F') ||
		(r >= '\u1AB0' && r <= '\u1AFF') ||
		(r >= '\u1DC0' && r <= '\u1DFF') ||
		(r >= '\u20D0' && r <= '\u20FF') ||
		(r >= '\uFE20' && r <= '\uFE2F')
}

// ──────────────────────────────────────────────
// core scan
// ──────────────────────────────────────────────

// Parse converts a LaTeX math string to Unicode.
func (p *Parser) Parse(src string) string {
	var out []string
	i := 0
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			cmd, next := p.parseCommand(src, i)
			if isFraction(cmd) {
				spaceAfterDigit(out)
			}
			var s string
			s, i = p.handleCommand(cmd, src, next)
			out = append(out, s)

		case c == '{':
			var s string
			s, i = p.parseBlock(src, i)
			out = append(out, s)

		case c == '_' || c == '^':
			var arg string
			arg, i = p.parseScriptArg(src, i+1, out)
			if c == '_' {
				out = append(out, MakeSubscript(arg))
			} else {
				out = append(out, MakeSuperscript(arg))
			}

		case c == '}':
			// stray closing brace
			i++

		case c == '\'':
			out = append(out, "′")
			i++

		case unicode.IsSpace(rune(c)):
			var s string
			s, i = p.parseSpaces(src, i)
			out = append(out, s)

		default:
			_, size := utf8.DecodeRuneInString(src[i:])
			out = append(out, src[i:i+size])
			i += size
		}
	}
	return strings.Join(out, "")
}

func (p *Parser) parseScriptArg(src string, i int, out []string) (string, int) {
	if i >= len(src) {
		return "", i
	}
	switch src[i] {
	case '{':
		return p.parseBlock(src, i)
	case '\\':
		cmd, next := p.parseCommand(src, i)
		if isFraction(cmd) {
			spaceAfterDigit(out)
		}
		return p.handleCommand(cmd, src, next)
	}
	_, size := utf8.DecodeRuneInString(src[i:])
	return src[i : i+size], i + size
}

func isFraction(cmd string) bool {
	return cmd == `\frac` || cmd == `\dfrac` || cmd == `\tfrac`
}

// spaceAfterDigit keeps mixed numbers readable: 2\frac{1}{2} → "2 ½".
func spaceAfterDigit(out []string) {
	if len(out) == 0 {
		return
	}
	last := out[len(out)-1]
	if last != "" && last[len(last)-1] >= '0' && last[len(last)-1] <= '9' {
		out[len(out)-1] += " "
	}
}

// handleCommand dispatches a parsed command; lookups run symbol table first.
func (p *Parser) handleCommand(cmd, src string, i int) (string, int) {
	if sym, ok := LatexSymbols[cmd]; ok {
		return sym, i
	}
	if h, ok := p.handlers[cmd]; ok {
		return h(p, cmd, src, i)
	}
	if _, ok := Combining[cmd]; ok {
		arg, next := p.parseBlock(src, i)
		return TranslateCombining(cmd, arg), next
	}
	if _, ok := LatexStyles[cmd]; ok {
		text, next := p.parseBlock(src, i)
		return TranslateStyles(cmd, text), next
	}
	return cmd, i
}

var commandRegex = regexp.MustCompile(`^\\([a-zA-Z]+|.)`)

func (p *Parser) parseCommand(src string, start int) (string, int) {
	if m := commandRegex.FindString(src[start:]); m != "" {
		return m, start + len(m)
	}
	return `\`, start + 1
}

// parseBlock reads {...} or, without braces, a single token.
func (p *Parser) parseBlock(src string, start int) (string, int) {
	for start < len(src) && src[start] == ' ' {
		start++
	}
	if start >= len(src) {
		return "", start
	}
	if src[start] != '{' {
		if src[start] == '\\' {
			cmd, next := p.parseCommand(src, start)
			return p.handleCommand(cmd, src, next)
		}
		_, size := utf8.DecodeRuneInString(src[start:])
		return src[start : start+size], start + size
	}
	body, next := matchGroup(src, start, '{', '}')
	return p.Parse(body), next
}

// rawBlock returns the unparsed body of {...}.
func rawBlock(src string, start int) (string, int) {
	if start >= len(src) || src[start] != '{' {
		return "", start
	}
	return matchGroup(src, start, '{', '}')
}

func (p *Parser) parseOptional(src string, start int) (string, int) {
	if start >= len(src) || src[start] != '[' {
		return "", start
	}
	body, next := matchGroup(src, start, '[', ']')
	return p.Parse(body), next
}

// matchGroup returns the text between the bracket at start and its match.
// An unbalanced group runs to the end of src.
func matchGroup(src string, start int, open, close byte) (string, int) {
	level, pos := 1, start+1
	for pos < len(src) && level > 0 {
		switch src[pos] {
		case '\\':
			pos++ // skip escaped bracket
		case open:
			level++
		case close:
			level--
		}
		pos++
	}
	if pos > len(src) {
		pos = len(src)
	}
	if level > 0 {
		return src[start+1 : pos], pos
	}
	return src[start+1 : pos-1], pos
}

func (p *Parser) parseSpaces(src string, start int) (string, int) {
	end := start
	newline := false
	for end < len(src) && unicode.IsSpace(rune(src[end])) {
		if src[end] == '\n' {
			newline = true
		}
		end++
	}
	if newline {
		return "\n", end
	}
	return " ", end
}

// ──────────────────────────────────────────────
// command handlers
// ──────────────────────────────────────────────

func handleFrac(p *Parser, _, src string, i int) (string, int) {
	num, i1 := p.parseBlock(src, i)
	den, i2 := p.parseBlock(src, i1)
	return MakeFraction(num, den), i2
}

func handleSqrt(p *Parser, _, src string, i int) (string, int) {
	index, i1 := p.parseOptional(src, i)
	radicand, i2 := p.parseBlock(src, i1)
	return MakeSqrt(strings.TrimSpace(index), strings.TrimSpace(radicand)), i2
}

func handleNot(p *Parser, _, src string, i int) (string, int) {
	for i < len(src) && src[i] == ' ' {
		i++
	}
	if i >= len(src) {
		return "\u0338", i
	}
	if src[i] == '\\' {
		cmd, next := p.parseCommand(src, i)
		sym, ok := LatexSymbols[cmd]
		if !ok {
			sym = cmd
		}
		return MakeNot(sym), next
	}
	_, size := utf8.DecodeRuneInString(src[i:])
	return MakeNot(src[i : i+size]), i + size
}

func handleText(p *Parser, _, src string, i int) (string, int) {
	// text mode: keep the argument literally
	if i < len(src) && src[i] == '{' {
		return rawBlock(src, i)
	}
	return p.parseBlock(src, i)
}

func handleDelimiter(p *Parser, cmd, src string, i int) (string, int) {
	if strings.HasPrefix(cmd, `\big`) || strings.HasPrefix(cmd, `\Big`) {
		// \big( etc.: size only, then the delimiter itself
		if i < len(src) && src[i] != '\\' {
			_, size := utf8.DecodeRuneInString(src[i:])
			return src[i : i+size], i + size
		}
	}
	if i >= len(src) {
		return "", i
	}
	switch src[i] {
	case '\\':
		next, end := p.parseCommand(src, i)
		if sym, ok := LatexSymbols[next]; ok {
			return sym, end
		}
		return strings.TrimPrefix(next, `\`), end
	case '.':
		return "", i + 1
	}
	_, size := utf8.DecodeRuneInString(src[i:])
	return src[i : i+size], i + size
}

func handleBinom(p *Parser, _, src string, i int) (string, int) {
	n, i1 := p.parseBlock(src, i)
	k, i2 := p.parseBlock(src, i1)
	return "C(" + n + "," + k + ")", i2
}

func wrapBlock(left, right string) handlerFunc {
	return func(p *Parser, _, src string, i int) (string, int) {
		text, next := p.parseBlock(src, i)
		return left + text + right, next
	}
}

func combineBlock(mark string) handlerFunc {
	return func(p *Parser, _, src string, i int) (string, int) {
		text, next := p.parseBlock(src, i)
		return TranslateCombining(mark, text), next
	}
}

func handlePhantom(p *Parser, _, src string, i int) (string, int) {
	text, next := p.parseBlock(src, i)
	n := utf8.RuneCountInString(text)
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", n), next
}

func handleOverset(p *Parser, _, src string, i int) (string, int) {
	over, i1 := p.parseBlock(src, i)
	base, i2 := p.parseBlock(src, i1)
	if sup := TryMakeSuperscript(over); sup != "" {
		return base + sup, i2
	}
	return base + "^(" + over + ")", i2
}

func handleUnderset(p *Parser, _, src string, i int) (string, int) {
	under, i1 := p.parseBlock(src, i)
	base, i2 := p.parseBlock(src, i1)
	if sub := TryMakeSubscript(under); sub != "" {
		return base + sub, i2
	}
	return base + "_(" + under + ")", i2
}

func handleSubstack(p *Parser, _, src string, i int) (string, int) {
	body, next := rawBlock(src, i)
	var lines []string
	for _, line := range strings.Split(body, `\\`) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, p.Parse(line))
		}
	}
	return strings.Join(lines, ", "), next
}

func handleColor(p *Parser, _, src string, i int) (string, int) {
	_, next := rawBlock(src, i)
	return "", next
}

func handleArrow(arrow string) handlerFunc {
	return func(p *Parser, _, src string, i int) (string, int) {
		_, i = p.parseOptional(src, i)
		text, next := p.parseBlock(src, i)
		if strings.TrimSpace(text) != "" {
			return arrow + "(" + text + ")", next
		}
		return arrow, next
	}
}

func handleBegin(p *Parser, _, src string, i int) (string, int) {
	env, i1 := rawBlock(src, i)
	content, i2 := environmentBody(src, i1, env)
	return p.renderEnvironment(env, content), i2
}

func handleEnd(_ *Parser, _, src string, i int) (string, int) {
	_, next := rawBlock(src, i)
	return "", next
}

// ──────────────────────────────────────────────
// environments
// ──────────────────────────────────────────────

func environmentBody(src string, i int, env string) (string, int) {
	end := `\end{` + env + `}`
	pos := strings.Index(src[i:], end)
	if pos < 0 {
		return src[i:], len(src)
	}
	return src[i : i+pos], i + pos + len(end)
}

// matrix-like environments → (left, right) delimiters
var matrixTypes = map[string][2]string{
	"matrix":      {"", ""},
	"pmatrix":     {"(", ")"},
	"bmatrix":     {"[", "]"},
	"Bmatrix":     {"{", "}"},
	"vmatrix":     {"|", "|"},
	"Vmatrix":     {"‖", "‖"},
	"smallmatrix": {"", ""},
}

var alignTypes = map[string]bool{
	"align": true, "align*": true, "aligned": true, "gather": true,
	"gather*": true, "gathered": true, "equation": true, "equation*": true,
	"multline": true, "multline*": true, "split": true,
}

func (p *Parser) renderEnvironment(env, content string) string {
	if delims, ok := matrixTypes[env]; ok {
		return p.renderMatrix(content, delims[0], delims[1], env == "smallmatrix")
	}
	switch {
	case env == "cases":
		return p.renderCases(content)
	case alignTypes[env]:
		return p.renderAlign(content)
	case env == "array":
		return p.renderArray(content)
	}
	return p.Parse(content)
}

func rows(content string) []string {
	var out []string
	for _, row := range strings.Split(content, `\\`) {
		if row = strings.TrimSpace(row); row != "" {
			out = append(out, row)
		}
	}
	return out
}

func (p *Parser) renderMatrix(content, left, right string, compact bool) string {
	sep, joiner := "  ", "\n"
	if compact {
		sep, joiner = ", ", "; "
	}
	var rendered []string
	for _, row := range rows(content) {
		cells := strings.Split(row, "&")
		for i, cell := range cells {
			cells[i] = p.Parse(strings.TrimSpace(cell))
		}
		rendered = append(rendered, strings.Join(cells, sep))
	}
	return left + strings.Join(rendered, joiner) + right
}

func (p *Parser) renderCases(content string) string {
	var parts []string
	for _, row := range rows(content) {
		cols := strings.SplitN(row, "&", 2)
		val := p.Parse(strings.TrimSpace(cols[0]))
		if len(cols) > 1 {
			if cond := p.Parse(strings.TrimSpace(cols[1])); cond != "" {
				val += ", " + cond
			}
		}
		parts = append(parts, val)
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return "⎧ " + parts[0]
	}
	lines := make([]string, len(parts))
	for i, part := range parts {
		switch i {
		case 0:
			lines[i] = "⎧ " + part
		case len(parts) - 1:
			lines[i] = "⎩ " + part
		default:
			lines[i] = "⎨ " + part
		}
	}
	return strings.Join(lines, "\n")
}

func (p *Parser) renderAlign(content string) string {
	var rendered []string
	for _, row := range rows(content) {
		rendered = append(rendered, p.Parse(strings.ReplaceAll(row, "&", " ")))
	}
	return strings.Join(rendered, "\n")
}

func (p *Parser) renderArray(content string) string {
	// the first {...} is the column spec, e.g. {ccc}
	stripped := strings.TrimSpace(content)
	if strings.HasPrefix(stripped, "{") {
		_, next := matchGroup(stripped, 0, '{', '}')
		content = stripped[next:]
	}
	return p.renderMatrix(content, "", "", false)
}
