package wikihtml

import (
	"sort"
	"strconv"
	"strings"

	"pkt.systems/wikihtml/internal/palette"
)

// Style is a run of CSS declarations, e.g. "color: #333; margin: 0;".
type Style struct {
	CSS string
}

// Styles groups the styles applied to the elements the renderer emits.
type Styles struct {
	Body        Style
	Heading     [6]Style
	CodeBlock   Style
	CodeInline  Style
	Quote       Style
	Table       Style
	TableHeader Style
	TableCell   Style
	Link        Style
	Strike      Style
}

// Theme provides named styles for the page shell.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(decls ...string) Style {
	var b strings.Builder
	for _, d := range decls {
		if d == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d)
	}
	return Style{CSS: b.String()}
}

func color(c string) string {
	if c == "" {
		return ""
	}
	return "color: " + c + ";"
}

func background(c string) string {
	if c == "" {
		return ""
	}
	return "background-color: " + c + ";"
}

func border(side, c string) string {
	if c == "" {
		return ""
	}
	return "border" + side + ": 1px solid " + c + ";"
}

var headingScale = [6]string{"2em", "1.5em", "1.25em", "1em", "0.875em", "0.85em"}

func stylesFromPalette(p palette.Palette) Styles {
	var headings [6]Style
	for i := range headings {
		headings[i] = style(color(p.Heading), "font-size: "+headingScale[i]+";")
	}
	return Styles{
		Body:        style(color(p.Text), background(p.Background), "font-family: sans-serif;", "line-height: 1.5;"),
		Heading:     headings,
		CodeBlock:   style(color(p.CodeText), background(p.CodeBackground), "padding: 0.75em;", "overflow: auto;"),
		CodeInline:  style(color(p.InlineCodeText), background(p.CodeBackground), "padding: 0 0.2em;"),
		Quote:       style(color(p.QuoteText), "border-left: 4px solid "+p.QuoteBorder+";", "margin: 0;", "padding: 0 1em;"),
		Table:       style("border-collapse: collapse;"),
		TableHeader: style(color(p.TableHeaderText), background(p.TableHeader), border("", p.TableBorder), "padding: 0.25em 0.75em;"),
		TableCell:   style(border("", p.TableBorder), "padding: 0.25em 0.75em;"),
		Link:        style(color(p.Link)),
		Strike:      style(color(p.StrikeText)),
	}
}

// CSS renders the styles as a stylesheet scoped to the given selector.
func (s Styles) CSS(scope string) string {
	rules := []struct {
		selector string
		style    Style
	}{
		{"", s.Body},
		{"pre.loom_code", s.CodeBlock},
		{"code.prettyprint", s.CodeInline},
		{"blockquote", s.Quote},
		{"table", s.Table},
		{"th", s.TableHeader},
		{"td", s.TableCell},
		{"a.loom-link-another", s.Link},
		{"strike", s.Strike},
	}
	var b strings.Builder
	for i, h := range s.Heading {
		writeRule(&b, scope, "h"+strconv.Itoa(i+1), h)
	}
	for _, r := range rules {
		writeRule(&b, scope, r.selector, r.style)
	}
	return b.String()
}

func writeRule(b *strings.Builder, scope, selector string, s Style) {
	if s.CSS == "" {
		return
	}
	sel := strings.TrimSpace(scope + " " + selector)
	if sel == "" {
		sel = "body"
	}
	b.WriteString(sel)
	b.WriteString(" { ")
	b.WriteString(s.CSS)
	b.WriteString(" }\n")
}

var builtinThemes = map[string]Theme{
	"default":         theme{name: "default", styles: stylesFromPalette(palette.PaletteDefault)},
	"github-light":    theme{name: "github-light", styles: stylesFromPalette(palette.PaletteGithubLight)},
	"github-dark":     theme{name: "github-dark", styles: stylesFromPalette(palette.PaletteGithubDark)},
	"solarized-light": theme{name: "solarized-light", styles: stylesFromPalette(palette.PaletteSolarizedLight)},
	"solarized-dark":  theme{name: "solarized-dark", styles: stylesFromPalette(palette.PaletteSolarizedDark)},
	"dracula":         theme{name: "dracula", styles: stylesFromPalette(palette.PaletteDoomDracula)},
	"nord":            theme{name: "nord", styles: stylesFromPalette(palette.PaletteDoomNord)},
	"gruvbox":         theme{name: "gruvbox", styles: stylesFromPalette(palette.PaletteDoomGruvbox)},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
