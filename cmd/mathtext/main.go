// Command mathtext renders text with embedded $...$ and $$...$$ math to HTML.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	pkgerrors "github.com/pkg/errors"

	"github.com/riverfjs/mathtext-go"
	"github.com/riverfjs/mathtext-go/internal/quiz"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "mathtext - render math-aware text to HTML\n\n")
		fmt.Fprintf(stderr, "Usage: mathtext [options] [text...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  mathtext 'What is $2+2$?'              Render arguments\n")
		fmt.Fprintf(stderr, "  echo '$$x^2$$' | mathtext -engine svg  Render stdin\n")
		fmt.Fprintf(stderr, "  mathtext -questions bank.json -path grade1 -topic Addition -count 5\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	opts, err := cfg.options()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	if cfg.Questions != "" {
		err = renderBank(ctx, cfg, opts, out)
	} else {
		err = renderText(fs.Args(), stdin, opts, out)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func renderText(args []string, stdin io.Reader, opts []mathtext.Option, out io.Writer) error {
	content := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return pkgerrors.Wrap(err, "read stdin")
		}
		content = strings.TrimRight(string(data), "\n")
	}
	_, err := fmt.Fprintln(out, mathtext.RenderHTML(content, opts...))
	return err
}

func renderBank(ctx context.Context, cfg *config, opts []mathtext.Option, out io.Writer) error {
	questions, err := quiz.LoadFile(cfg.Questions, cfg.Path)
	if err != nil {
		return err
	}
	if cfg.Topic != "" || cfg.Count > 0 {
		questions, err = draw(ctx, questions, cfg.Topic, cfg.Count)
		if err != nil {
			return err
		}
	}

	rendered, err := mathtext.RenderQuestions(ctx, questions, opts...)
	if err != nil {
		return err
	}
	failed := 0
	for _, rq := range rendered {
		failed += rq.Failed()
		if _, err := fmt.Fprintln(out, rq.HTML()); err != nil {
			return err
		}
	}
	if failed > 0 {
		mathtext.Logger.Printf("%d expression(s) could not be typeset", failed)
	}
	return nil
}

// draw 通过按主题缓存抽取题目；count 为 0 时抽取该主题全部题目
func draw(ctx context.Context, questions []quiz.Question, topic string, count int) ([]quiz.Question, error) {
	fetcher := quiz.NewBankFetcher(questions)
	topics := fetcher.Topics()
	if topic != "" {
		topics = []string{topic}
	}

	perTopic := make(map[string]int)
	for _, q := range questions {
		perTopic[q.Topic]++
	}

	var out []quiz.Question
	for _, t := range topics {
		n := count
		if n == 0 {
			n = perTopic[t]
		}
		// 一批取满 n 道，避免补充时从头循环
		cache := quiz.NewCache(fetcher, n)
		for i := 0; i < n; i++ {
			q, err := cache.Next(ctx, t)
			if err != nil {
				return nil, err
			}
			if q == nil {
				break
			}
			out = append(out, *q)
		}
	}
	if len(out) == 0 {
		return nil, pkgerrors.Errorf("no questions for topic %q", topic)
	}
	return out, nil
}
