// Package catalog loads the read-only product catalog. The catalog is
// an external collaborator: a JSON document with a "products" array,
// fetched over HTTP or read from a local file, loaded once and cached
// for the life of the process.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xYup1terx/routine-builder/internal/domain"
)

type catalogDocument struct {
	Products []domain.Product `json:"products"`
}

// Source loads and caches the product catalog from a URL or file path.
type Source struct {
	location string
	http     *http.Client

	mu     sync.Mutex
	cached []domain.Product
}

// NewSource creates a Source for the given location. Locations starting
// with http:// or https:// are fetched; anything else is read as a
// file path.
func NewSource(location string) *Source {
	return &Source{
		location: location,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Products returns the catalog, fetching it on first use.
func (s *Source) Products(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	raw, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if doc.Products == nil {
		doc.Products = []domain.Product{}
	}
	s.cached = doc.Products
	return s.cached, nil
}

func (s *Source) load(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
		if err != nil {
			return nil, fmt.Errorf("creating catalog request: %w", err)
		}
		resp, err := s.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching catalog: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading catalog response: %w", err)
		}
		return body, nil
	}

	data, err := os.ReadFile(s.location)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return data, nil
}

// Filter narrows products by exact category (empty matches all) and a
// case-insensitive search term over name, brand, and description.
func Filter(products []domain.Product, category, term string) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if !p.MatchesQuery(term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct categories in the catalog, sorted.
func Categories(products []domain.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
