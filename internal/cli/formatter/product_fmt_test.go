package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xYup1terx/routine-builder/internal/domain"
)

func TestFormatProductList_ShowsNamesAndEmptyState(t *testing.T) {
	products := []domain.Product{
		{Name: "Revitalift Serum", Brand: "L'Oréal Paris", Category: "skincare"},
		{Name: "Elvive Shampoo", Brand: "L'Oréal Paris", Category: "haircare"},
	}

	out := FormatProductList(products, []string{"elvive shampoo"})
	assert.Contains(t, out, "Revitalift Serum")
	assert.Contains(t, out, "Elvive Shampoo")
	assert.Contains(t, out, "haircare")

	assert.Contains(t, FormatProductList(nil, nil), "No products match")
}

func TestFormatProductDetail_IncludesDescription(t *testing.T) {
	p := domain.Product{
		Name:        "Revitalift Serum",
		Brand:       "L'Oréal Paris",
		Category:    "skincare",
		Description: "Hyaluronic acid serum for plumper skin.",
	}

	out := FormatProductDetail(p)
	assert.Contains(t, out, "Revitalift Serum")
	assert.Contains(t, out, "Hyaluronic acid serum")
}

func TestFormatSelection_NumbersEntries(t *testing.T) {
	products := []domain.Product{
		{Name: "Revitalift Serum", Brand: "L'Oréal Paris"},
		{Name: "True Match Foundation", Brand: "L'Oréal Paris"},
	}

	out := FormatSelection(products)
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "2.")
	assert.Contains(t, out, "True Match Foundation")

	assert.Contains(t, FormatSelection(nil), "No products selected")
}
