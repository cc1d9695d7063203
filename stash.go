package wikihtml

import (
	"regexp"
	"strings"
)

// codePlaceholder stands in for one stashed code block while the block and
// inline passes run. It opens with a raw '<', which cannot survive
// escapeHTML, so it never collides with document text. It must not end in
// '>' because the quote-block pass anchors on a preceding '>'.
const codePlaceholder = "<\x00wikihtml:code\x00"

const (
	codeBlockOpen  = `<pre class="loom_code loom_code_cs">`
	codeBlockClose = `</pre>`
	inlineCodeTmpl = `<code class="prettyprint prettyprinted" style><span class="typ">${1}</span></code>`
)

var (
	// {code} and {/code} each alone on a line. The match swallows the line
	// break before the opening marker and the one after the closing marker.
	codeBlockPattern  = regexp.MustCompile(`(?:^|\r\n|\n|\r)\{code\}(?:\r\n|\n|\r)((?s:.*?))(?:\r\n|\n|\r)\{/code\}(?:\r\n|\n|\r|$)`)
	inlineCodePattern = regexp.MustCompile(`\{code\}(.*?)\{/code\}`)
)

// codeStash is a FIFO of rendered code blocks.
type codeStash struct {
	entries []string
	head    int
}

func (s *codeStash) push(html string) {
	s.entries = append(s.entries, html)
}

// pop returns the oldest entry, or "" once the stash is drained.
func (s *codeStash) pop() string {
	if s.head >= len(s.entries) {
		return ""
	}
	html := s.entries[s.head]
	s.head++
	return html
}

func (s *codeStash) len() int {
	return len(s.entries) - s.head
}

// stashCode replaces every block code region with codePlaceholder and
// returns the rewritten text together with the stash holding the regions in
// source order.
func stashCode(text string) (string, *codeStash) {
	stash := &codeStash{}
	out := replaceAllSubmatchFunc(codeBlockPattern, text, func(groups []string) string {
		stash.push(codeBlockOpen + groups[1] + codeBlockClose)
		return codePlaceholder
	})
	return out, stash
}

// inlineCode rewrites {code}…{/code} pairs within a single line.
func inlineCode(line string) string {
	if !strings.Contains(line, "{code}") {
		return line
	}
	return inlineCodePattern.ReplaceAllString(line, inlineCodeTmpl)
}

// restore splices the stashed entries back in place of the placeholders.
// Placeholders beyond the stash become empty; leftover entries are dropped.
func (s *codeStash) restore(text string) string {
	if !strings.Contains(text, codePlaceholder) {
		return text
	}
	segments := strings.Split(text, codePlaceholder)
	var b strings.Builder
	b.Grow(len(text))
	for i, seg := range segments {
		b.WriteString(seg)
		if i < len(segments)-1 {
			b.WriteString(s.pop())
		}
	}
	return b.String()
}
