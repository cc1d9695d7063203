package wikihtml

import (
	"html/template"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
)

// DefaultPageTitle is used when a page has no title and no heading.
const DefaultPageTitle = "wikihtml"

const pageScope = ".wikihtml"

// Page is a rendered fragment framed as a standalone HTML document.
type Page struct {
	Title string
	Theme Theme
	// Body is a fragment produced by Render and is embedded verbatim.
	Body string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
{{.CSS}}</style>
</head>
<body>
<div class="wikihtml">{{.Body}}</div>
</body>
</html>
`))

// WritePage writes page as an HTML document.
func WritePage(w io.Writer, page Page) error {
	if w == nil {
		return errors.New("page: writer is nil")
	}
	th := page.Theme
	if th == nil {
		th = DefaultTheme()
	}
	title := page.Title
	if title == "" {
		title = Title(page.Body)
	}
	if title == "" {
		title = DefaultPageTitle
	}
	err := pageTemplate.Execute(w, struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: title,
		CSS:   template.CSS(th.Styles().CSS(pageScope)),
		Body:  template.HTML(page.Body),
	})
	return errors.Wrap(err, "page")
}

// Title returns the text of the first heading in fragment, or "".
func Title(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	inHeading := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if isHeadingTag(name) {
				inHeading = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inHeading && isHeadingTag(name) {
				if title := strings.TrimSpace(b.String()); title != "" {
					return title
				}
				inHeading = false
			}
		case html.TextToken:
			if inHeading {
				b.Write(z.Text())
			}
		}
	}
}

func isHeadingTag(name []byte) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}
