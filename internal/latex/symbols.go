package latex

// CombiningType says where a combining mark attaches.
type CombiningType int

const (
	FirstChar CombiningType = iota
	LastChar
	AllChars
)

// CombiningMark is a combining character plus its placement.
type CombiningMark struct {
	Char rune
	Type CombiningType
}

// Combining maps accent commands to combining marks.
var Combining = map[string]CombiningMark{
	`\hat`:       {'\u0302', FirstChar},
	`\widehat`:   {'\u0302', FirstChar},
	`\check`:     {'\u030C', FirstChar},
	`\tilde`:     {'\u0303', FirstChar},
	`\widetilde`: {'\u0303', FirstChar},
	`\acute`:     {'\u0301', FirstChar},
	`\grave`:     {'\u0300', FirstChar},
	`\dot`:       {'\u0307', FirstChar},
	`\ddot`:      {'\u0308', FirstChar},
	`\breve`:     {'\u0306', FirstChar},
	`\bar`:       {'\u0304', FirstChar},
	`\vec`:       {'\u20D7', FirstChar},
	`\overline`:  {'\u0305', AllChars},
	`\underline`: {'\u0332', AllChars},
}

// LatexSymbols maps symbol commands to Unicode.
var LatexSymbols = map[string]string{
	// greek
	`\alpha`: "α", `\beta`: "β", `\gamma`: "γ", `\delta`: "δ",
	`\epsilon`: "ϵ", `\varepsilon`: "ε", `\zeta`: "ζ", `\eta`: "η",
	`\theta`: "θ", `\vartheta`: "ϑ", `\iota`: "ι", `\kappa`: "κ",
	`\lambda`: "λ", `\mu`: "μ", `\nu`: "ν", `\xi`: "ξ", `\pi`: "π",
	`\varpi`: "ϖ", `\rho`: "ρ", `\varrho`: "ϱ", `\sigma`: "σ",
	`\varsigma`: "ς", `\tau`: "τ", `\upsilon`: "υ", `\phi`: "ϕ",
	`\varphi`: "φ", `\chi`: "χ", `\psi`: "ψ", `\omega`: "ω",
	`\Gamma`: "Γ", `\Delta`: "Δ", `\Theta`: "Θ", `\Lambda`: "Λ",
	`\Xi`: "Ξ", `\Pi`: "Π", `\Sigma`: "Σ", `\Upsilon`: "Υ",
	`\Phi`: "Φ", `\Psi`: "Ψ", `\Omega`: "Ω",

	// binary operators
	`\times`: "×", `\div`: "÷", `\pm`: "±", `\mp`: "∓", `\cdot`: "⋅",
	`\ast`: "∗", `\star`: "⋆", `\circ`: "∘", `\bullet`: "∙",
	`\cap`: "∩", `\cup`: "∪", `\setminus`: "∖", `\wedge`: "∧",
	`\land`: "∧", `\vee`: "∨", `\lor`: "∨", `\oplus`: "⊕",
	`\otimes`: "⊗", `\odot`: "⊙",

	// relations
	`\leq`: "≤", `\le`: "≤", `\geq`: "≥", `\ge`: "≥", `\neq`: "≠",
	`\ne`: "≠", `\approx`: "≈", `\equiv`: "≡", `\sim`: "∼",
	`\simeq`: "≃", `\cong`: "≅", `\propto`: "∝", `\ll`: "≪",
	`\gg`: "≫", `\subset`: "⊂", `\supset`: "⊃", `\subseteq`: "⊆",
	`\supseteq`: "⊇", `\in`: "∈", `\ni`: "∋", `\notin`: "∉",
	`\perp`: "⊥", `\parallel`: "∥", `\mid`: "∣", `\vdash`: "⊢",
	`\models`: "⊨",

	// arrows
	`\to`: "→", `\rightarrow`: "→", `\leftarrow`: "←", `\gets`: "←",
	`\leftrightarrow`: "↔", `\Rightarrow`: "⇒", `\Leftarrow`: "⇐",
	`\Leftrightarrow`: "⇔", `\implies`: "⟹", `\impliedby`: "⟸",
	`\iff`: "⟺", `\mapsto`: "↦", `\uparrow`: "↑", `\downarrow`: "↓",
	`\longrightarrow`: "⟶", `\longleftarrow`: "⟵",

	// big operators and misc
	`\sum`: "∑", `\prod`: "∏", `\coprod`: "∐", `\int`: "∫",
	`\iint`: "∬", `\iiint`: "∭", `\oint`: "∮", `\partial`: "∂",
	`\nabla`: "∇", `\infty`: "∞", `\forall`: "∀", `\exists`: "∃",
	`\nexists`: "∄", `\emptyset`: "∅", `\varnothing`: "∅",
	`\neg`: "¬", `\lnot`: "¬", `\angle`: "∠", `\triangle`: "△",
	`\degree`: "°", `\prime`: "′", `\ldots`: "…", `\dots`: "…",
	`\cdots`: "⋯", `\vdots`: "⋮", `\ddots`: "⋱", `\therefore`: "∴",
	`\because`: "∵", `\hbar`: "ℏ", `\ell`: "ℓ", `\Re`: "ℜ", `\Im`: "ℑ",
	`\aleph`: "ℵ", `\surd`: "√", `\top`: "⊤", `\bot`: "⊥",
	`\langle`: "⟨", `\rangle`: "⟩", `\lfloor`: "⌊", `\rfloor`: "⌋",
	`\lceil`: "⌈", `\rceil`: "⌉", `\|`: "‖", `\vert`: "|", `\Vert`: "‖",
	`\lbrace`: "{", `\rbrace`: "}",

	// functions
	`\sin`: "sin", `\cos`: "cos", `\tan`: "tan", `\cot`: "cot",
	`\sec`: "sec", `\csc`: "csc", `\arcsin`: "arcsin",
	`\arccos`: "arccos", `\arctan`: "arctan", `\sinh`: "sinh",
	`\cosh`: "cosh", `\tanh`: "tanh", `\log`: "log", `\ln`: "ln",
	`\exp`: "exp", `\lim`: "lim", `\max`: "max", `\min`: "min",
	`\sup`: "sup", `\inf`: "inf", `\det`: "det", `\gcd`: "gcd",
	`\deg`: "deg", `\mod`: "mod", `\bmod`: "mod",

	// escapes and spacing
	`\{`: "{", `\}`: "}", `\$`: "$", `\%`: "%", `\&`: "&", `\#`: "#",
	`\_`: "_", `\,`: " ", `\;`: " ", `\:`: " ", `\!`: "", `\ `: " ",
	`\quad`: "  ", `\qquad`: "    ", `\\`: "\n",
	`\displaystyle`: "", `\textstyle`: "", `\limits`: "", `\nolimits`: "",
}

// NotMap holds precomposed negations.
var NotMap = map[string]string{
	"=": "≠", "<": "≮", ">": "≯", "≤": "≰", "≥": "≱", "∈": "∉",
	"⊂": "⊄", "⊃": "⊅", "⊆": "⊈", "⊇": "⊉", "≡": "≢", "∼": "≁",
	"≈": "≉", "∃": "∄", "∣": "∤", "∥": "∦",
}

// Subscripts maps characters with a Unicode subscript form.
var Subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅',
	'6': '₆', '7': '₇', '8': '₈', '9': '₉', '+': '₊', '-': '₋',
	'=': '₌', '(': '₍', ')': '₎', 'a': 'ₐ', 'e': 'ₑ', 'h': 'ₕ',
	'i': 'ᵢ', 'j': 'ⱼ', 'k': 'ₖ', 'l': 'ₗ', 'm': 'ₘ', 'n': 'ₙ',
	'o': 'ₒ', 'p': 'ₚ', 'r': 'ᵣ', 's': 'ₛ', 't': 'ₜ', 'u': 'ᵤ',
	'v': 'ᵥ', 'x': 'ₓ', 'β': 'ᵦ', 'γ': 'ᵧ', 'ρ': 'ᵨ', 'φ': 'ᵩ',
	'χ': 'ᵪ',
}

// Superscripts maps characters with a Unicode superscript form.
var Superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵',
	'6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻',
	'=': '⁼', '(': '⁽', ')': '⁾', 'a': 'ᵃ', 'b': 'ᵇ', 'c': 'ᶜ',
	'd': 'ᵈ', 'e': 'ᵉ', 'f': 'ᶠ', 'g': 'ᵍ', 'h': 'ʰ', 'i': 'ⁱ',
	'j': 'ʲ', 'k': 'ᵏ', 'l': 'ˡ', 'm': 'ᵐ', 'n': 'ⁿ', 'o': 'ᵒ',
	'p': 'ᵖ', 'r': 'ʳ', 's': 'ˢ', 't': 'ᵗ', 'u': 'ᵘ', 'v': 'ᵛ',
	'w': 'ʷ', 'x': 'ˣ', 'y': 'ʸ', 'z': 'ᶻ', '′': '′', '∘': '°',
}

// FracMap holds vulgar fractions.
var FracMap = map[[2]string]string{
	{"1", "2"}: "½", {"1", "3"}: "⅓", {"2", "3"}: "⅔", {"1", "4"}: "¼",
	{"3", "4"}: "¾", {"1", "5"}: "⅕", {"2", "5"}: "⅖", {"3", "5"}: "⅗",
	{"4", "5"}: "⅘", {"1", "6"}: "⅙", {"5", "6"}: "⅚", {"1", "7"}: "⅐",
	{"1", "8"}: "⅛", {"3", "8"}: "⅜", {"5", "8"}: "⅝", {"7", "8"}: "⅞",
	{"1", "9"}: "⅑", {"1", "10"}: "⅒",
}

// LatexStyles maps font commands to per-character substitutions; nil keeps the text.
var LatexStyles = map[string]map[rune]rune{
	`\mathbb`:   doubleStruck,
	`\mathbf`:   nil,
	`\mathrm`:   nil,
	`\mathsf`:   nil,
	`\mathit`:   nil,
	`\mathcal`:  calligraphic,
	`\mathscr`:  calligraphic,
	`\mathfrak`: nil,
	`\textbf`:   nil,
	`\textit`:   nil,
}

var doubleStruck = map[rune]rune{
	'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
	'A': '𝔸', 'B': '𝔹', 'D': '𝔻', 'E': '𝔼', 'F': '𝔽', 'G': '𝔾',
	'1': '𝟙', '0': '𝟘',
}

var calligraphic = map[rune]rune{
	'A': '𝒜', 'B': 'ℬ', 'C': '𝒞', 'D': '𝒟', 'E': 'ℰ', 'F': 'ℱ',
	'G': '𝒢', 'H': 'ℋ', 'I': 'ℐ', 'L': 'ℒ', 'M': 'ℳ', 'N': '𝒩',
	'O': '𝒪', 'P': '𝒫', 'R': 'ℛ', 'S': '𝒮', 'T': '𝒯',
}
