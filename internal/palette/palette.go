// Package palette defines the CSS color palettes behind the built-in themes.
package palette

// Palette holds the colors of one theme as CSS color values.
type Palette struct {
	Background      string
	Text            string
	Heading         string
	Link            string
	CodeBackground  string
	CodeText        string
	InlineCodeText  string
	QuoteBorder     string
	QuoteText       string
	TableBorder     string
	TableHeader     string
	TableHeaderText string
	StrikeText      string
}

var PaletteDefault = Palette{
	Background:      "#ffffff",
	Text:            "#24292f",
	Heading:         "#1f2328",
	Link:            "#0969da",
	CodeBackground:  "#f6f8fa",
	CodeText:        "#24292f",
	InlineCodeText:  "#953800",
	QuoteBorder:     "#d0d7de",
	QuoteText:       "#57606a",
	TableBorder:     "#d0d7de",
	TableHeader:     "#f6f8fa",
	TableHeaderText: "#1f2328",
	StrikeText:      "#6e7781",
}

var PaletteGithubLight = Palette{
	Background:      "#ffffff",
	Text:            "#1f2328",
	Heading:         "#1f2328",
	Link:            "#0969da",
	CodeBackground:  "#f6f8fa",
	CodeText:        "#1f2328",
	InlineCodeText:  "#cf222e",
	QuoteBorder:     "#d0d7de",
	QuoteText:       "#656d76",
	TableBorder:     "#d0d7de",
	TableHeader:     "#f6f8fa",
	TableHeaderText: "#1f2328",
	StrikeText:      "#656d76",
}

var PaletteGithubDark = Palette{
	Background:      "#0d1117",
	Text:            "#e6edf3",
	Heading:         "#e6edf3",
	Link:            "#2f81f7",
	CodeBackground:  "#161b22",
	CodeText:        "#e6edf3",
	InlineCodeText:  "#ff7b72",
	QuoteBorder:     "#30363d",
	QuoteText:       "#7d8590",
	TableBorder:     "#30363d",
	TableHeader:     "#161b22",
	TableHeaderText: "#e6edf3",
	StrikeText:      "#7d8590",
}

var PaletteSolarizedLight = Palette{
	Background:      "#fdf6e3",
	Text:            "#657b83",
	Heading:         "#cb4b16",
	Link:            "#268bd2",
	CodeBackground:  "#eee8d5",
	CodeText:        "#586e75",
	InlineCodeText:  "#d33682",
	QuoteBorder:     "#93a1a1",
	QuoteText:       "#93a1a1",
	TableBorder:     "#93a1a1",
	TableHeader:     "#eee8d5",
	TableHeaderText: "#586e75",
	StrikeText:      "#93a1a1",
}

var PaletteSolarizedDark = Palette{
	Background:      "#002b36",
	Text:            "#839496",
	Heading:         "#cb4b16",
	Link:            "#268bd2",
	CodeBackground:  "#073642",
	CodeText:        "#93a1a1",
	InlineCodeText:  "#d33682",
	QuoteBorder:     "#586e75",
	QuoteText:       "#586e75",
	TableBorder:     "#586e75",
	TableHeader:     "#073642",
	TableHeaderText: "#93a1a1",
	StrikeText:      "#586e75",
}

var PaletteDoomDracula = Palette{
	Background:      "#282a36",
	Text:            "#f8f8f2",
	Heading:         "#bd93f9",
	Link:            "#8be9fd",
	CodeBackground:  "#1e1f29",
	CodeText:        "#f8f8f2",
	InlineCodeText:  "#50fa7b",
	QuoteBorder:     "#6272a4",
	QuoteText:       "#6272a4",
	TableBorder:     "#44475a",
	TableHeader:     "#44475a",
	TableHeaderText: "#ff79c6",
	StrikeText:      "#6272a4",
}

var PaletteDoomNord = Palette{
	Background:      "#2e3440",
	Text:            "#d8dee9",
	Heading:         "#88c0d0",
	Link:            "#81a1c1",
	CodeBackground:  "#3b4252",
	CodeText:        "#e5e9f0",
	InlineCodeText:  "#a3be8c",
	QuoteBorder:     "#4c566a",
	QuoteText:       "#9099ab",
	TableBorder:     "#4c566a",
	TableHeader:     "#3b4252",
	TableHeaderText: "#eceff4",
	StrikeText:      "#616e88",
}

var PaletteDoomGruvbox = Palette{
	Background:      "#282828",
	Text:            "#ebdbb2",
	Heading:         "#fabd2f",
	Link:            "#83a598",
	CodeBackground:  "#3c3836",
	CodeText:        "#ebdbb2",
	InlineCodeText:  "#fe8019",
	QuoteBorder:     "#665c54",
	QuoteText:       "#a89984",
	TableBorder:     "#665c54",
	TableHeader:     "#3c3836",
	TableHeaderText: "#fbf1c7",
	StrikeText:      "#928374",
}
