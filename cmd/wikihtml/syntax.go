package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minWidth     = 20
	detailIndent = 4
)

type syntaxEntry struct {
	example string
	detail  string
}

var syntaxEntries = []syntaxEntry{
	{"* Title  ...  ****** Title", "Heading, level 1 to 6 by the number of stars. A space must follow the stars."},
	{"-item  --nested  ---deeper", "Bulleted list. The number of dashes is the nesting level."},
	{"+item  ++nested", "Numbered list, nested the same way."},
	{"|a|b|c|", "Table row. Cells are separated by bars."},
	{"|a|b|c|h", "Header row: a trailing h turns every cell into a header cell."},
	{"|~a|b|", "A cell starting with ~ is a header cell."},
	{">text", "Quoted line. Consecutive quoted lines share one blockquote."},
	{"{quote} ... {/quote}", "Quote block, with each marker alone on its line."},
	{"''bold''", "Bold."},
	{"'''italic'''", "Italic."},
	{"%%struck%%", "Strikethrough."},
	{"&color(red){text}  &color(red, #eee){text}", "Colored text, optionally with a background color."},
	{"[[label>https://...]]  [[label:https://...]]", "Link with a label. Bare http and https URLs become links too."},
	{"&br;", "Explicit line break."},
	{"{code}x{/code}", "Inline code within a line."},
	{"{code} ... {/code}", "Code block, with each marker alone on its line. Its content is shown verbatim."},
}

// writeSyntax writes the markup cheat sheet wrapped to width.
func writeSyntax(w io.Writer, width int) error {
	if width < minWidth {
		width = minWidth
	}
	var b strings.Builder
	b.WriteString(wordwrap.String("Wiki markup understood by wikihtml. Every other line is an ordinary paragraph line ending in a line break.", width))
	b.WriteString("\n\n")
	for _, e := range syntaxEntries {
		b.WriteString(e.example)
		b.WriteByte('\n')
		b.WriteString(indent.String(wordwrap.String(e.detail, width-detailIndent), detailIndent))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func terminalWidth(out any, fallback int) int {
	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				return w
			}
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
