package formatter

import (
	"fmt"
	"strings"

	"github.com/xYup1terx/routine-builder/internal/domain"
)

// FormatProductList renders the catalog as a table. Products whose name
// appears in selectedNames get a selection marker.
func FormatProductList(products []domain.Product, selectedNames []string) string {
	if len(products) == 0 {
		return Dim("No products match.")
	}

	selected := make(map[string]bool, len(selectedNames))
	for _, name := range selectedNames {
		selected[strings.ToLower(name)] = true
	}

	headers := []string{"", "#", "Name", "Brand", "Category"}
	rows := make([][]string, 0, len(products))
	for i, p := range products {
		marker := " "
		if selected[strings.ToLower(p.Name)] {
			marker = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			marker,
			Dim(fmt.Sprintf("%d", i+1)),
			StyleFg.Render(p.Name),
			StyleBlue.Render(p.Brand),
			StylePurple.Render(p.Category),
		})
	}

	return RenderTable(headers, rows)
}

// FormatProductDetail renders a single product with its description.
func FormatProductDetail(p domain.Product) string {
	var b strings.Builder
	b.WriteString(Bold(p.Name))
	b.WriteString("\n")
	b.WriteString(StyleBlue.Render(p.Brand))
	b.WriteString(Dim(" · "))
	b.WriteString(StylePurple.Render(p.Category))
	if p.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(StyleFg.Render(p.Description))
	}
	return b.String()
}

// FormatSelection renders the current routine selection as a numbered list.
func FormatSelection(products []domain.Product) string {
	if len(products) == 0 {
		return Dim("No products selected yet.")
	}

	var b strings.Builder
	b.WriteString(Header("Selected Products"))
	b.WriteString("\n")
	for i, p := range products {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			Dim(fmt.Sprintf("%d.", i+1)),
			StyleFg.Render(p.Name),
			Dim("("+p.Brand+")"),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}
