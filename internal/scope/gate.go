// Package scope decides whether a free-chat utterance is in scope for
// the assistant. The gate is a deterministic keyword classifier, not a
// semantic one: cheap to run before any network call and easy to
// explain when it declines.
package scope

import (
	"strings"

	"github.com/xYup1terx/routine-builder/internal/domain"
)

// offTopicTerms always deny, even after a routine has been generated.
var offTopicTerms = []string{
	"weather",
	"politics",
	"stock",
	"crypto",
	"bitcoin",
	"sports",
	"soccer",
	"football",
	"programming",
	"code",
	"recipe",
	"cooking",
}

// brandTerms name the domain owner; mentioning it always allows.
var brandTerms = []string{
	"l'oreal",
	"loreal",
}

// beautyTerms is intentionally generous so questions like "what is a
// good mascara?" get answered rather than declined.
var beautyTerms = []string{
	"skincare",
	"haircare",
	"makeup",
	"fragrance",
	"routine",
	"product",
	"sunscreen",
	"serum",
	"cleanser",
	"moisturizer",
	"mascara",
	"foundation",
	"lipstick",
	"eyeliner",
	"eyebrow",
	"concealer",
	"primer",
	"toner",
	"exfoli",
	"spf",
	"conditioner",
	"shampoo",
	"styling",
	"volum",
	"curl",
	"frizz",
	"heat protect",
	"blow",
	"brush",
	"retinol",
	"vitamin c",
	"niacinamide",
	"ceramide",
	"mask",
	"sheet",
	"cleanse",
}

// Allowed decides whether the utterance may be sent to the completion
// service. Decision order, first match wins:
//
//  1. off-topic denylist term          → deny
//  2. brand/domain owner named         → allow
//  3. routine already generated        → allow
//  4. beauty-topic allowlist term      → allow
//  5. selected product named           → allow
//  6. otherwise                        → deny
//
// Pure function of its inputs.
func Allowed(utterance string, routineGenerated bool, selected []domain.Product) bool {
	if strings.TrimSpace(utterance) == "" {
		return false
	}
	t := strings.ToLower(utterance)

	for _, term := range offTopicTerms {
		if strings.Contains(t, term) {
			return false
		}
	}

	for _, term := range brandTerms {
		if strings.Contains(t, term) {
			return true
		}
	}

	if routineGenerated {
		return true
	}

	for _, term := range beautyTerms {
		if strings.Contains(t, term) {
			return true
		}
	}

	for _, p := range selected {
		if p.Name == "" {
			continue
		}
		if strings.Contains(t, strings.ToLower(p.Name)) {
			return true
		}
	}

	return false
}
