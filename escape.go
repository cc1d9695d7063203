package wikihtml

import "strings"

// htmlEscaper replaces each special character in one left-to-right scan.
// Later passes match the escaped forms, e.g. &#x27; for an apostrophe.
var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"`", "&#x60;",
)

func escapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
