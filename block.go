package wikihtml

import (
	"strconv"
	"strings"
)

// blockParser walks escaped text line by line and accumulates the block
// level HTML. prev is the status of the previous line.
type blockParser struct {
	out  strings.Builder
	prev blockStatus
}

func parseBlocks(text string) string {
	p := &blockParser{prev: neutral}
	p.out.Grow(len(text) + len(text)/2)
	for _, line := range splitLines(text) {
		p.line(line)
	}
	p.finish()
	return p.out.String()
}

func (p *blockParser) line(raw string) {
	line := inlineCode(raw)
	curr := classify(line)
	p.out.WriteString(closeMarkup(p.prev, curr))
	p.out.WriteString(openMarkup(p.prev, curr))
	p.content(curr, line)
	p.prev = curr
}

// finish closes whatever is still open, as if a neutral line followed.
func (p *blockParser) finish() {
	p.out.WriteString(closeMarkup(p.prev, neutral))
	p.prev = neutral
}

func (p *blockParser) content(status blockStatus, line string) {
	switch status.kind {
	case kindTable:
		p.tableRow(line)
	case kindList:
		p.out.WriteString(listPattern.FindStringSubmatch(line)[2])
	case kindOrderedList:
		p.out.WriteString(orderedListPattern.FindStringSubmatch(line)[2])
	case kindQuote:
		p.out.WriteString(quotePattern.FindStringSubmatch(line)[1])
		p.out.WriteString("<br>")
	case kindHeader:
		m := headerPattern.FindStringSubmatch(line)
		level := strconv.Itoa(len(m[1]))
		p.out.WriteString("<h" + level + ">")
		p.out.WriteString(m[2])
		p.out.WriteString("</h" + level + ">")
	default:
		p.out.WriteString(line)
		p.out.WriteString("<br>")
	}
}

// tableRow emits one <tr>. A trailing "h" after the last separator turns
// every cell into a header cell; otherwise a leading "~" marks one.
func (p *blockParser) tableRow(line string) {
	inner := tablePattern.FindStringSubmatch(line)[1]
	headerRow := strings.HasSuffix(line, "h")
	p.out.WriteString("<tr>")
	for _, cell := range strings.Split(inner, "|") {
		switch {
		case headerRow:
			p.out.WriteString("<th>" + cell + "</th>")
		case strings.HasPrefix(cell, "~"):
			p.out.WriteString("<th>" + cell[1:] + "</th>")
		default:
			p.out.WriteString("<td>" + cell + "</td>")
		}
	}
	p.out.WriteString("</tr>")
}

// splitLines splits on "\r\n", "\n" and a lone "\r". A trailing line break
// does not start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
