package wikihtml

import (
	"regexp"
	"strings"
)

type blockKind uint8

const (
	kindNeutral blockKind = iota
	kindTable
	kindList
	kindOrderedList
	kindQuote
	kindHeader
)

var blockKindNames = [...]string{
	kindNeutral:     "neutral",
	kindTable:       "table",
	kindList:        "list",
	kindOrderedList: "ordered-list",
	kindQuote:       "quote",
	kindHeader:      "header",
}

func (k blockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "unknown"
}

// blockStatus classifies one line. level is the marker run-length for
// kindList and kindOrderedList and zero otherwise.
type blockStatus struct {
	kind  blockKind
	level int
}

var neutral = blockStatus{kind: kindNeutral}

func (s blockStatus) isList() bool {
	return s.kind == kindList || s.kind == kindOrderedList
}

type listTags struct {
	open  string
	close string
	item  string
}

var listTagsByKind = map[blockKind]listTags{
	kindList:        {open: "<ul><li>", close: "</li></ul>", item: "</li><li>"},
	kindOrderedList: {open: "<ol><li>", close: "</li></ol>", item: "</li><li>"},
}

var (
	tablePattern       = regexp.MustCompile(`^\|(.*)\|h?$`)
	listPattern        = regexp.MustCompile(`^(-+)(.+)`)
	orderedListPattern = regexp.MustCompile(`^(\++)(.+)`)
	quotePattern       = regexp.MustCompile(`^&gt;(.*)`)
	headerPattern      = regexp.MustCompile(`^(\*{1,6})` + unicodeSpace + `(.*)`)
)

// classify picks the status of an escaped line. Precedence is fixed:
// table, list, ordered list, quote, header, neutral.
func classify(line string) blockStatus {
	switch {
	case tablePattern.MatchString(line):
		return blockStatus{kind: kindTable}
	case listPattern.MatchString(line):
		m := listPattern.FindStringSubmatch(line)
		return blockStatus{kind: kindList, level: len(m[1])}
	case orderedListPattern.MatchString(line):
		m := orderedListPattern.FindStringSubmatch(line)
		return blockStatus{kind: kindOrderedList, level: len(m[1])}
	case quotePattern.MatchString(line):
		return blockStatus{kind: kindQuote}
	case headerPattern.MatchString(line):
		return blockStatus{kind: kindHeader}
	default:
		return neutral
	}
}

// closeMarkup is the markup that ends prev when the walk moves on to curr.
func closeMarkup(prev, curr blockStatus) string {
	if prev == curr {
		return ""
	}
	switch prev.kind {
	case kindTable:
		return "</tbody></table>"
	case kindList, kindOrderedList:
		tags := listTagsByKind[prev.kind]
		if curr.kind != prev.kind {
			return strings.Repeat(tags.close, prev.level)
		}
		if curr.level < prev.level {
			return strings.Repeat(tags.close, prev.level-curr.level)
		}
		return ""
	case kindQuote:
		return "</blockquote>"
	default:
		return ""
	}
}

// openMarkup is the markup that precedes the content of a curr line
// following a prev line.
func openMarkup(prev, curr blockStatus) string {
	switch curr.kind {
	case kindTable:
		if prev.kind != kindTable {
			return "<table><tbody>"
		}
	case kindList, kindOrderedList:
		tags := listTagsByKind[curr.kind]
		if prev.kind != curr.kind {
			return tags.open
		}
		switch {
		case curr.level > prev.level:
			return strings.Repeat(tags.open, curr.level-prev.level)
		case curr.level == prev.level:
			return tags.item
		default:
			return "<li>"
		}
	case kindQuote:
		if prev.kind != kindQuote {
			return "<blockquote>"
		}
	}
	return ""
}
