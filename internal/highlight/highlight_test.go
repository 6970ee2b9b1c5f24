package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_WrapsMention(t *testing.T) {
	got := Render("Use CeraVe Cleanser daily", []string{"CeraVe Cleanser"})
	assert.Equal(t,
		`<p>Use <span class="product-ref">CeraVe Cleanser</span> daily</p>`,
		got)
}

func TestRender_CaseInsensitive(t *testing.T) {
	got := Render("try the REVITALIFT SERUM tonight", []string{"Revitalift Serum"})
	assert.Contains(t, got, `<span class="product-ref">Revitalift Serum</span>`)
	assert.NotContains(t, got, "REVITALIFT")
}

func TestRender_SurvivesMarkdownSyntaxInName(t *testing.T) {
	// A name containing markdown bold markers must not be interpreted
	// as markdown, and must not be double-escaped.
	got := Render("apply **Lash** first", []string{"**Lash**"})
	assert.Contains(t, got, `<span class="product-ref">**Lash**</span>`)
}

func TestRender_InsideMarkdownStructure(t *testing.T) {
	got := Render("# Plan\n- Sublime Glow in the morning", []string{"Sublime Glow"})
	assert.Equal(t,
		`<h1>Plan</h1><ul><li><span class="product-ref">Sublime Glow</span> in the morning</li></ul>`,
		got)
}

func TestRender_LongestNameFirst(t *testing.T) {
	// "Hydra Genius" is a substring of "Hydra Genius Aloe Water"; the
	// longer name must win where both could match.
	got := Render("Finish with Hydra Genius Aloe Water", []string{"Hydra Genius", "Hydra Genius Aloe Water"})
	assert.Contains(t, got, `<span class="product-ref">Hydra Genius Aloe Water</span>`)
	assert.NotContains(t, got, `<span class="product-ref">Hydra Genius</span> Aloe`)
}

func TestRender_EscapesNameInSpan(t *testing.T) {
	got := Render("use B&B Balm now", []string{"B&B Balm"})
	assert.Contains(t, got, `<span class="product-ref">B&amp;B Balm</span>`)
}

func TestRender_NoNames(t *testing.T) {
	assert.Equal(t, "<p>hello</p>", Render("hello", nil))
}

func TestMentions(t *testing.T) {
	names := []string{"Cleanser A", "Serum B", "Cream C"}
	got := Mentions("Start with cleanser a, then SERUM B.", names)
	assert.Equal(t, []string{"Cleanser A", "Serum B"}, got)
}

func TestMentions_EmptyInputs(t *testing.T) {
	assert.Nil(t, Mentions("", []string{"x"}))
	assert.Nil(t, Mentions("text", nil))
	assert.Nil(t, Mentions("text", []string{""}))
}
