package main

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/riverfjs/mathtext-go"
)

// config 命令行配置：默认值 → 配置文件 → MATHTEXT_* 环境变量 → 命令行参数
type config struct {
	Engine       string
	Class        string
	Text         string
	Macros       string
	Brackets     bool
	Multiline    bool
	ImageBaseURL string
	ImageEmbed   bool
	Questions    string
	Path         string
	Topic        string
	Count        int
	Output       string
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("mathtext", flag.ContinueOnError)
	fs.String("config", "", "Path to configuration file (yaml, json or toml)")
	fs.String("engine", mathtext.EngineMathML, "Typesetting engine (mathml, svg, unicode, image)")
	fs.String("class", "", "Class of the container element")
	fs.String("text", string(mathtext.TextTrusted), "Text policy (trusted, escaped, markdown)")
	fs.String("macros", "", "File of \\newcommand definitions")
	fs.Bool("brackets", false, "Also recognise \\(...\\) and \\[...\\]")
	fs.Bool("multiline", false, "Allow $$...$$ to span lines")
	fs.String("image-base", "", "Base URL of the image engine service")
	fs.Bool("embed", false, "Inline images from the image engine as data URIs")
	fs.String("questions", "", "Render a JSON question bank instead of text")
	fs.String("path", "", "gjson path selecting the questions inside the bank")
	fs.String("topic", "", "Only draw questions of this topic")
	fs.Int("count", 0, "Number of questions to draw per topic (0 = all)")
	fs.String("o", "", "Output file (default stdout)")
	return fs
}

func loadConfig(fs *flag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("engine", mathtext.EngineMathML)
	v.SetDefault("class", "")
	v.SetDefault("text", string(mathtext.TextTrusted))
	v.SetDefault("macros", "")
	v.SetDefault("brackets", false)
	v.SetDefault("multiline", false)
	v.SetDefault("image-base", "")
	v.SetDefault("embed", false)
	v.SetDefault("questions", "")
	v.SetDefault("path", "")
	v.SetDefault("topic", "")
	v.SetDefault("count", 0)
	v.SetDefault("o", "")

	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.Wrap(err, "load .env")
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "stat .env")
	}
	v.SetEnvPrefix("MATHTEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := fs.Lookup("config").Value.String(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	// 只有显式给出的参数覆盖其他来源
	fs.Visit(func(f *flag.Flag) {
		v.Set(f.Name, f.Value.String())
	})

	cfg := &config{
		Engine:       v.GetString("engine"),
		Class:        v.GetString("class"),
		Text:         v.GetString("text"),
		Macros:       v.GetString("macros"),
		Brackets:     v.GetBool("brackets"),
		Multiline:    v.GetBool("multiline"),
		ImageBaseURL: v.GetString("image-base"),
		ImageEmbed:   v.GetBool("embed"),
		Questions:    v.GetString("questions"),
		Path:         v.GetString("path"),
		Topic:        v.GetString("topic"),
		Count:        v.GetInt("count"),
		Output:       v.GetString("o"),
	}
	if !mathtext.TextPolicy(cfg.Text).Valid() {
		return nil, errors.Errorf("invalid text policy %q", cfg.Text)
	}
	if !validEngine(cfg.Engine) {
		return nil, errors.Errorf("unknown engine %q (want one of %s)", cfg.Engine, strings.Join(mathtext.Engines(), ", "))
	}
	if cfg.Count < 0 {
		return nil, errors.Errorf("invalid count %d", cfg.Count)
	}
	return cfg, nil
}

// options converts the CLI config into library options.
func (c *config) options() ([]mathtext.Option, error) {
	rc := &mathtext.RenderConfig{
		ClassName:        c.Class,
		Engine:           c.Engine,
		TextPolicy:       mathtext.TextPolicy(c.Text),
		MultilineDisplay: c.Multiline,
		Brackets:         c.Brackets,
		ImageBaseURL:     c.ImageBaseURL,
		ImageEmbed:       c.ImageEmbed,
	}
	opts := []mathtext.Option{mathtext.WithConfig(rc)}
	if c.Macros != "" {
		set, err := mathtext.LoadMacros(c.Macros)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mathtext.WithMacros(set))
	}
	return opts, nil
}

func validEngine(name string) bool {
	for _, e := range mathtext.Engines() {
		if strings.EqualFold(strings.TrimSpace(name), e) {
			return true
		}
	}
	return false
}
