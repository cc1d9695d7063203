package wikihtml

import (
	"regexp"
	"strings"
)

// unicodeSpace matches Unicode white space, U+3000 included. \s alone is
// ASCII only.
const unicodeSpace = `[\s\v\p{Z}\x{85}]`

var (
	quoteBlockPattern = regexp.MustCompile(`(^|>)\{quote\}<br>(.*?)>\{/quote\}<br>`)
	italicPattern     = regexp.MustCompile(`(?:&#x27;){3}(.*?)(?:&#x27;){3}`)
	boldPattern       = regexp.MustCompile(`(?:&#x27;){2}(.*?)(?:&#x27;){2}`)
	strikePattern     = regexp.MustCompile(`%%(.*?)%%`)
	colorPattern      = regexp.MustCompile(`&amp;color\(` + unicodeSpace + `*(.*?)` + unicodeSpace + `*\)` + unicodeSpace + `*\{` + unicodeSpace + `*(.*?)` + unicodeSpace + `*\}`)
	// URL characters: any letter, digit, mark or connector plus the ASCII
	// punctuation allowed in a URL.
	linkPattern = regexp.MustCompile(`(?:\[\[([^\[\]]+?)(?:&gt;|:))?(https?://[\p{L}\p{N}\p{M}\p{Pc}!\?/\+\-~=;\.,\*&@#\$%\(\)']+)(?:\]\])?`)
)

const literalBreak = "&amp;br;"

// inlinePass is one whole-text substitution.
type inlinePass struct {
	name  string
	apply func(string) string
}

// inlinePasses run in this order; each sees the output of the one before.
// italic must precede bold so a triple apostrophe run is not split into
// two bold delimiters.
var inlinePasses = []inlinePass{
	{name: "quote-block", apply: foldQuoteBlocks},
	{name: "italic", apply: func(s string) string { return italicPattern.ReplaceAllString(s, "<i>${1}</i>") }},
	{name: "bold", apply: func(s string) string { return boldPattern.ReplaceAllString(s, "<b>${1}</b>") }},
	{name: "strike", apply: func(s string) string { return strikePattern.ReplaceAllString(s, "<strike>${1}</strike>") }},
	{name: "color", apply: colorSpans},
	{name: "link", apply: links},
	{name: "break", apply: func(s string) string { return strings.ReplaceAll(s, literalBreak, "<br>") }},
}

func transformInline(text string) string {
	for _, pass := range inlinePasses {
		text = pass.apply(text)
	}
	return text
}

// foldQuoteBlocks turns a {quote}<br>…>{/quote}<br> run, as emitted by the
// block parser for {quote} and {/quote} lines, into a blockquote.
func foldQuoteBlocks(text string) string {
	return replaceAllSubmatchFunc(quoteBlockPattern, text, func(groups []string) string {
		return groups[1] + "<br><blockquote>" + groups[2] + "></blockquote><br>"
	})
}

func colorSpans(text string) string {
	return replaceAllSubmatchFunc(colorPattern, text, func(groups []string) string {
		var style string
		if strings.Contains(groups[1], ",") {
			values := strings.Split(groups[1], ",")
			style = "color: " + strings.TrimSpace(values[0]) + ";background-color: " + strings.TrimSpace(values[1]) + ";"
		} else {
			style = "color: " + groups[1] + ";"
		}
		return `<span style="` + style + `">` + groups[2] + `</span>`
	})
}

func links(text string) string {
	return replaceAllSubmatchFunc(linkPattern, text, func(groups []string) string {
		label, url := groups[1], groups[2]
		if label == "" {
			label = url
		}
		return `<a href="` + url + `" target="_blank" rel="noopener noreferrer" class="loom-link-another">` + label + `</a>`
	})
}

// replaceAllSubmatchFunc is ReplaceAllStringFunc with access to the capture
// groups of each match. Unmatched groups are "".
func replaceAllSubmatchFunc(re *regexp.Regexp, src string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	groups := make([]string, re.NumSubexp()+1)
	last := 0
	for _, m := range matches {
		for i := range groups {
			if m[2*i] < 0 {
				groups[i] = ""
				continue
			}
			groups[i] = src[m[2*i]:m[2*i+1]]
		}
		b.WriteString(src[last:m[0]])
		b.WriteString(repl(groups))
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}
