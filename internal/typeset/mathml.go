package typeset

import (
	"bytes"
	"strings"
	"sync"

	"github.com/pkg/errors"
	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
)

// MathML typesets through goldmark with the treeblood MathML extension.
type MathML struct {
	mu sync.Mutex
	md goldmark.Markdown
}

var (
	sharedMathML     *MathML
	sharedMathMLOnce sync.Once
)

// NewMathML 创建 MathML 排版器
func NewMathML() *MathML {
	return &MathML{
		md: goldmark.New(
			goldmark.WithExtensions(
				treeblood.MathML(),
			),
		),
	}
}

// SharedMathML returns a process-wide MathML engine.
func SharedMathML() *MathML {
	sharedMathMLOnce.Do(func() {
		sharedMathML = NewMathML()
	})
	return sharedMathML
}

// Typeset wraps expr in $ or $$ and converts it to MathML.
func (m *MathML) Typeset(expr string, display bool) (string, error) {
	expr = strings.TrimSpace(expr)
	source := "$" + expr + "$"
	if display {
		source = "$$" + expr + "$$"
	}

	var buf bytes.Buffer
	m.mu.Lock()
	err := m.md.Convert([]byte(source), &buf)
	m.mu.Unlock()
	if err != nil {
		return "", errors.Wrap(err, "mathml")
	}

	out := strings.TrimSpace(buf.String())
	if !strings.Contains(out, "<math") {
		return "", errors.Errorf("mathml: expression not recognised: %q", expr)
	}
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return strings.TrimSpace(out), nil
}
