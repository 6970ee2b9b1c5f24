// Package highlight wraps selected-product mentions in assistant text
// with styled spans. Names are swapped for placeholder tokens before
// markdown rendering and swapped back afterwards, so a product name can
// neither be mangled by HTML escaping nor interpreted as markdown.
package highlight

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xYup1terx/routine-builder/internal/markdown"
)

// tokenFor builds a placeholder unlikely to collide with user content.
func tokenFor(i int) string {
	return fmt.Sprintf("@@PRODUCT_%d@@", i)
}

// byLengthDesc orders names longest first, preserving the original
// order among equal lengths. Matching longer names first prevents a
// name that is a substring of another from corrupting the longer match.
func byLengthDesc(names []string) []string {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	return ordered
}

// Render converts text to HTML with every case-insensitive occurrence
// of each name wrapped in a product-ref span. Empty names are skipped.
func Render(text string, names []string) string {
	if text == "" {
		return ""
	}

	type tokenName struct {
		token string
		name  string
	}
	var tokens []tokenName

	withTokens := text
	for i, name := range byLengthDesc(names) {
		if name == "" {
			continue
		}
		token := tokenFor(i)
		tokens = append(tokens, tokenName{token: token, name: name})
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(name))
		withTokens = re.ReplaceAllLiteralString(withTokens, token)
	}

	html := markdown.Render(withTokens)

	for _, tn := range tokens {
		replacement := `<span class="product-ref">` + markdown.EscapeHTML(tn.name) + `</span>`
		html = strings.ReplaceAll(html, tn.token, replacement)
	}
	return html
}

// Mentions returns the subset of names that occur in text,
// case-insensitively, in the given order. The result is stored as
// message meta so highlighting survives a restore even if the selection
// changes afterwards.
func Mentions(text string, names []string) []string {
	if text == "" || len(names) == 0 {
		return nil
	}
	lower := strings.ToLower(text)
	var found []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	return found
}
