package wikihtml

// RenderOption configures Convert and HTTPRender. The markup dialect itself
// has no options; these only affect how input is read and output framed.
type RenderOption func(*renderConfig)

type renderConfig struct {
	stripFrontMatter bool
	skipValidation   bool
	page             bool
	title            string
	theme            Theme
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithFrontMatterStripped drops a leading ---/+++/;;; metadata block before rendering.
func WithFrontMatterStripped(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.stripFrontMatter = enabled
	}
}

// WithValidation enables or disables the UTF-8 and binary input checks.
// Validation is on by default.
func WithValidation(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.skipValidation = !enabled
	}
}

// WithPage wraps the fragment in a standalone HTML page styled by theme.
// An empty title is taken from the first heading of the document.
func WithPage(title string, theme Theme) RenderOption {
	return func(cfg *renderConfig) {
		cfg.page = true
		cfg.title = title
		cfg.theme = theme
	}
}
