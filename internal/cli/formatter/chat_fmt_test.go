package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xYup1terx/routine-builder/internal/domain"
)

func TestFormatMessage_RolePrefixes(t *testing.T) {
	assert.Contains(t, FormatMessage(domain.RoleUser, "hi", nil), "You:")
	assert.Contains(t, FormatMessage(domain.RoleAssistant, "hello", nil), "Assistant:")
}

func TestHighlightMentions_PreservesFullText(t *testing.T) {
	out := HighlightMentions("Start with Revitalift Serum at night.", []string{"Revitalift Serum"})
	assert.Contains(t, out, "Revitalift Serum")
	assert.Contains(t, out, "Start with")
	assert.Contains(t, out, "at night.")
}

func TestHighlightMentions_CaseInsensitive(t *testing.T) {
	out := HighlightMentions("try REVITALIFT SERUM daily", []string{"Revitalift Serum"})
	assert.Contains(t, out, "REVITALIFT SERUM")
}

func TestHighlightMentions_EmptyNames(t *testing.T) {
	out := HighlightMentions("plain reply", nil)
	assert.Contains(t, out, "plain reply")

	out = HighlightMentions("plain reply", []string{"   "})
	assert.Contains(t, out, "plain reply")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"Name", "Brand"}, [][]string{
		{"Serum", "L'Oréal"},
		{"Shampoo", "Garnier"},
	})
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Shampoo")
	assert.Contains(t, out, "Garnier")

	assert.Equal(t, "", RenderTable(nil, nil))
}
