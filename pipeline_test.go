package mathtext

import (
	"context"
	"strings"
	"testing"
)

func sampleQuestions() []Question {
	return []Question{
		{
			ID:       "q1",
			Type:     "mcq",
			Topic:    "Algebra",
			Question: "Solve $x+1=3$",
			Options: []QuestionOption{
				{Value: "a", Label: "$x=2$"},
				{Value: "b", Label: "$x=4$"},
			},
			Answer: "a",
		},
		{
			ID:       "q2",
			Type:     "userInput",
			Question: "Compute $$\\frac{6}{3}$$",
			Image:    "https://example.com/q2.png",
			Answer:   "2",
		},
	}
}

func TestRenderQuestion(t *testing.T) {
	rq, err := RenderQuestion(context.Background(), sampleQuestions()[0], WithTypesetter(echo))
	if err != nil {
		t.Fatalf("RenderQuestion() error = %v", err)
	}
	if len(rq.Options) != 2 {
		t.Fatalf("Options = %d, want 2", len(rq.Options))
	}
	html := rq.HTML()
	for _, want := range []string{
		`<div class="question question-mcq" data-id="q1" data-topic="Algebra">`,
		`<div class="question-stem"><div><span>Solve </span><span class="math math-inline">I[x+1=3]</span></div></div>`,
		`<li data-value="a"><div><span class="math math-inline">I[x=2]</span></div></li>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() = %s\nshould contain %s", html, want)
		}
	}
	if rq.Failed() != 0 {
		t.Errorf("Failed() = %d, want 0", rq.Failed())
	}
}

func TestRenderQuestions(t *testing.T) {
	out, err := RenderQuestions(context.Background(), sampleQuestions(), WithEngine(EngineUnicode))
	if err != nil {
		t.Fatalf("RenderQuestions() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("RenderQuestions() = %d, want 2", len(out))
	}
	html := out[1].HTML()
	if !strings.Contains(html, `<img class="question-image" src="https://example.com/q2.png" alt="">`) {
		t.Errorf("HTML() = %s, missing image", html)
	}
	if !strings.Contains(html, "math-display") {
		t.Errorf("HTML() = %s, missing display math", html)
	}
}

func TestRenderQuestions_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := RenderQuestions(ctx, sampleQuestions())
	if err == nil {
		t.Fatal("RenderQuestions() should return the context error")
	}
	if len(out) != 0 {
		t.Errorf("RenderQuestions() rendered %d questions after cancel", len(out))
	}
	if _, err := RenderQuestion(ctx, sampleQuestions()[0]); err == nil {
		t.Error("RenderQuestion() should return the context error")
	}
}

func TestLoadQuestions(t *testing.T) {
	src := `{"items": [{"type": "trueFalse", "question": "$1<2$", "answer": true,
		"options": [{"value": true, "label": "True"}, {"value": false, "label": "False"}]}]}`
	qs, err := LoadQuestions(strings.NewReader(src), "items")
	if err != nil {
		t.Fatalf("LoadQuestions() error = %v", err)
	}
	if len(qs) != 1 || qs[0].Answer != "true" || qs[0].Options[1].Value != "false" {
		t.Errorf("LoadQuestions() = %+v", qs)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mixed", `Area is $\pi r^2$, costs \$5`, "Area is π r², costs $5"},
		{"display", `$$\frac{1}{2}$$`, "½"},
		{"no math", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCountText(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 3},
		{"$x^2$", 2},
		{"😀", 2},
	}
	for _, tt := range tests {
		if got := CountText(tt.input); got != tt.want {
			t.Errorf("CountText(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
