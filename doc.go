// Package wikihtml renders wiki-style markup to an HTML fragment.
//
// The markup covers tables, nested unordered and ordered lists, quotes,
// headings, inline emphasis, strikethrough, colored spans, links and fenced
// code. Rendering is a fixed pipeline over the whole document: the input is
// HTML-escaped once, block code is stashed behind placeholders, a line-oriented
// state machine emits the block structure, a sequence of whole-text inline
// passes runs over the result, and finally the stashed code is spliced back.
//
// Core properties:
//   - Render is pure and total: every input yields a fragment, never an error
//   - No state is shared between calls; concurrent use needs no locking
//   - The dialect is fixed; there are no switches that change the markup
//
// Example:
//
//	fragment := wikihtml.Render("*** Title\n-one\n--nested\n''bold'' and '''italic'''")
//	fmt.Println(fragment)
//
// Convert and HTTPRender wrap Render for io.Reader/io.Writer and HTTP(S)
// sources, adding input validation, optional front matter stripping and an
// optional standalone page shell (see WithPage).
package wikihtml
