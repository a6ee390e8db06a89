package mathtext

import (
	"github.com/riverfjs/mathtext-go/internal/macro"
	"github.com/riverfjs/mathtext-go/internal/typeset"
)

// Typesetter renders one math expression to markup.
type Typesetter = typeset.Typesetter

// TypesetterFunc adapts a function to Typesetter.
type TypesetterFunc = typeset.Func

// MacroSet is a parsed set of \newcommand definitions.
type MacroSet = macro.Set

// ConvertOptions holds options for rendering.
type ConvertOptions struct {
	Config *RenderConfig
	// Typesetter overrides the engine named in Config.
	Typesetter Typesetter
	Macros     *MacroSet

	ownConfig bool
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		if config == nil {
			return
		}
		opts.Config = config
		opts.ownConfig = false
	}
}

// WithClassName sets the class of the container element.
func WithClassName(name string) Option {
	return func(opts *ConvertOptions) {
		opts.mutableConfig().ClassName = name
	}
}

// WithEngine selects a built-in typesetting engine by name.
func WithEngine(engine string) Option {
	return func(opts *ConvertOptions) {
		opts.mutableConfig().Engine = engine
	}
}

// WithTypesetter sets a custom typesetter. It takes precedence over the engine.
func WithTypesetter(t Typesetter) Option {
	return func(opts *ConvertOptions) {
		opts.Typesetter = t
	}
}

// WithTextPolicy sets how text between math spans is emitted.
func WithTextPolicy(policy TextPolicy) Option {
	return func(opts *ConvertOptions) {
		opts.mutableConfig().TextPolicy = policy
	}
}

// WithMacros expands the given macros in every expression before typesetting.
func WithMacros(set *MacroSet) Option {
	return func(opts *ConvertOptions) {
		opts.Macros = set
	}
}

// WithBrackets enables \(...\) and \[...\] delimiters.
func WithBrackets(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.mutableConfig().Brackets = enable
	}
}

// WithMultilineDisplay lets display spans cross line breaks.
func WithMultilineDisplay(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.mutableConfig().MultilineDisplay = enable
	}
}

// mutableConfig copies the shared config on first write.
func (o *ConvertOptions) mutableConfig() *RenderConfig {
	if !o.ownConfig {
		cfg := *o.Config
		o.Config = &cfg
		o.ownConfig = true
	}
	return o.Config
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Config: DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}
