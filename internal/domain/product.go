package domain

import "strings"

// Product is a read-only catalog record. The catalog source owns these;
// the application never mutates them.
type Product struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// SameProduct reports whether two catalog records refer to the same
// product: by ID when both carry one, otherwise by exact name.
func SameProduct(a, b Product) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.Name == b.Name
}

// MatchesQuery reports whether the product's name, brand, or
// description contains the given term, case-insensitively. An empty
// term matches everything.
func (p Product) MatchesQuery(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}
