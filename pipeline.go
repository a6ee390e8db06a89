package mathtext

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/riverfjs/mathtext-go/internal/quiz"
)

// 导出类型别名
type Question = quiz.Question
type QuestionOption = quiz.Option
type QuestionType = quiz.Type
type QuestionCache = quiz.Cache
type QuestionFetcher = quiz.Fetcher
type QuestionFetcherFunc = quiz.FetcherFunc

// LoadQuestions reads and validates a JSON question bank. path is an
// optional gjson path selecting the question array.
func LoadQuestions(r io.Reader, path string) ([]Question, error) {
	return quiz.Load(r, path)
}

// NewQuestionCache returns a per-topic pull-and-pop cache that refills
// from fetcher in batches.
func NewQuestionCache(fetcher QuestionFetcher, batch int) *QuestionCache {
	return quiz.NewCache(fetcher, batch)
}

// RenderedOption is an option label rendered as a fragment.
type RenderedOption struct {
	Value string
	Label *Fragment
}

// RenderedQuestion 渲染后的题目
type RenderedQuestion struct {
	Question Question
	Stem     *Fragment
	Options  []RenderedOption
}

// Failed counts the expressions in stem and options that fell back to source.
func (r *RenderedQuestion) Failed() int {
	n := len(r.Stem.Failed())
	for _, o := range r.Options {
		n += len(o.Label.Failed())
	}
	return n
}

// HTML 生成题目卡片
func (r *RenderedQuestion) HTML() string {
	q := r.Question
	var b strings.Builder
	b.WriteString(`<div class="question question-` + html.EscapeString(string(q.Type)) + `"`)
	if q.ID != "" {
		b.WriteString(` data-id="` + html.EscapeString(string(q.ID)) + `"`)
	}
	if q.Topic != "" {
		b.WriteString(` data-topic="` + html.EscapeString(q.Topic) + `"`)
	}
	b.WriteString(">")

	b.WriteString(`<div class="question-stem">` + r.Stem.HTML() + "</div>")
	if q.Image != "" {
		b.WriteString(`<img class="question-image" src="` + html.EscapeString(q.Image) + `" alt="">`)
	}
	if len(r.Options) > 0 {
		b.WriteString(`<ul class="question-options">`)
		for _, o := range r.Options {
			b.WriteString(`<li data-value="` + html.EscapeString(o.Value) + `">` + o.Label.HTML() + "</li>")
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</div>")
	return b.String()
}

// RenderQuestion 渲染题干与全部选项
func RenderQuestion(ctx context.Context, q Question, opts ...Option) (*RenderedQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options := applyOptions(opts...)
	return renderQuestion(q, options), nil
}

func renderQuestion(q Question, options *ConvertOptions) *RenderedQuestion {
	rq := &RenderedQuestion{
		Question: q,
		Stem:     render(q.Question, options),
	}
	for _, o := range q.Options {
		rq.Options = append(rq.Options, RenderedOption{
			Value: string(o.Value),
			Label: render(o.Label, options),
		})
	}
	return rq
}

// RenderQuestions 按顺序渲染题目，每道题之前检查 ctx 是否已取消
func RenderQuestions(ctx context.Context, questions []Question, opts ...Option) ([]*RenderedQuestion, error) {
	options := applyOptions(opts...)
	out := make([]*RenderedQuestion, 0, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out = append(out, renderQuestion(q, options))
	}
	return out, nil
}
