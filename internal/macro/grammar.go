package macro

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var macroLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `%[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Command", Pattern: `\\([a-zA-Z]+|.)`},
	{Name: "Param", Pattern: `#[1-9#]`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[{}\[\]]`},
	{Name: "Text", Pattern: `[^\\{}\[\]#%\s0-9]+`},
})

// file is a definitions file: \newcommand and \renewcommand statements,
// separated by whitespace and % comments.
type file struct {
	Definitions []*definition `( @@ | Whitespace | Comment )*`
}

type definition struct {
	Pos lexer.Position

	Keyword string `@Command Whitespace?`
	Name    string `( "{" Whitespace? @Command Whitespace? "}" | @Command ) Whitespace?`
	Arity   int    `( "[" Whitespace? @Number Whitespace? "]" Whitespace? )?`
	Body    *group `@@`
}

type group struct {
	Items []*item `"{" @@* "}"`
}

type item struct {
	Group *group `  @@`
	Token string `| @( Command | Param | Number | Text | Whitespace | "[" | "]" )`
	// comments inside a body are dropped
	Comment bool `| @Comment`
}

func (g *group) inner() string {
	var b strings.Builder
	for _, it := range g.Items {
		switch {
		case it.Group != nil:
			b.WriteString("{" + it.Group.inner() + "}")
		case it.Comment:
		default:
			b.WriteString(it.Token)
		}
	}
	return b.String()
}

var defParser = participle.MustBuild[file](
	participle.Lexer(macroLexer),
)
