package formatter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xYup1terx/routine-builder/internal/domain"
)

// FormatMessage renders a single chat message with a role prefix. Product
// names from mentions are highlighted inside assistant text.
func FormatMessage(role domain.Role, text string, mentions []string) string {
	switch role {
	case domain.RoleUser:
		return StyleBlue.Render("You: ") + StyleFg.Render(text)
	case domain.RoleAssistant:
		return StyleGreen.Render("Assistant: ") + HighlightMentions(text, mentions)
	default:
		return Dim(string(role) + ": " + text)
	}
}

// HighlightMentions wraps every case-insensitive occurrence of each name in
// the mention style. Longer names are matched first so that overlapping
// names resolve to the most specific one.
func HighlightMentions(text string, names []string) string {
	if len(names) == 0 {
		return StyleFg.Render(text)
	}

	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	parts := make([]string, 0, len(ordered))
	for _, name := range ordered {
		if strings.TrimSpace(name) == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(name))
	}
	if len(parts) == 0 {
		return StyleFg.Render(text)
	}

	re := regexp.MustCompile("(?i)(" + strings.Join(parts, "|") + ")")
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(StyleFg.Render(text[last:loc[0]]))
		b.WriteString(StyleMention.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(StyleFg.Render(text[last:]))
	return b.String()
}
