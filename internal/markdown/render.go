// Package markdown renders the constrained markdown subset produced by
// the completion service into safe HTML. Supported: headings, unordered
// lists, bold spans, paragraphs. Nested lists, links, images, ordered
// lists, and code blocks are not supported; the assistant is instructed
// never to emit them.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletRe   = regexp.MustCompile(`^[-*]\s+(.*)$`)
	boldStarRe = regexp.MustCompile(`\*\*\s*([\s\S]*?)\s*\*\*`)
	boldUndRe  = regexp.MustCompile(`__\s*([\s\S]*?)\s*__`)
)

// EscapeHTML escapes the five characters that can introduce markup, so
// literal text from the user, the completion service, or catalog
// descriptions can never be interpreted as HTML.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#039;")
	return s
}

// Render converts markdown text to HTML line by line. All literal text
// is escaped before any markup is introduced. Blank lines emit an
// explicit break and close any open list.
func Render(md string) string {
	if md == "" {
		return ""
	}

	var out strings.Builder
	inList := false
	closeList := func() {
		if inList {
			out.WriteString("</ul>")
			inList = false
		}
	}

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))

		if line == "" {
			closeList()
			out.WriteString("<br/>")
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			closeList()
			level := len(m[1])
			fmt.Fprintf(&out, "<h%d>%s</h%d>", level, EscapeHTML(m[2]), level)
			continue
		}

		if m := bulletRe.FindStringSubmatch(line); m != nil {
			if !inList {
				inList = true
				out.WriteString("<ul>")
			}
			fmt.Fprintf(&out, "<li>%s</li>", renderBold(EscapeHTML(m[1])))
			continue
		}

		closeList()
		fmt.Fprintf(&out, "<p>%s</p>", renderBold(EscapeHTML(line)))
	}

	closeList()
	return out.String()
}

// renderBold replaces **text** and __text__ spans with <strong>,
// trimming interior padding. Input must already be escaped.
func renderBold(s string) string {
	s = boldStarRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = boldUndRe.ReplaceAllString(s, "<strong>$1</strong>")
	return s
}
