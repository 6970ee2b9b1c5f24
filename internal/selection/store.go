// Package selection owns the user's working set of chosen products.
// Order is selection order; membership is deduplicated by product
// identity (ID when both sides have one, exact name otherwise).
package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/xYup1terx/routine-builder/internal/domain"
	"github.com/xYup1terx/routine-builder/internal/repository"
)

// Store holds the selected products. Every mutating operation leaves
// the store ready for an immediate Persist; callers persist
// synchronously after each mutation rather than batching.
type Store struct {
	mu       sync.Mutex
	selected []domain.Product
	repo     repository.StateRepo
}

// NewStore creates an empty selection Store.
func NewStore(repo repository.StateRepo) *Store {
	return &Store{repo: repo}
}

// Toggle adds the product if absent and removes it if present.
// Returns true when the product is selected after the call.
func (s *Store) Toggle(p domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.selected {
		if domain.SameProduct(existing, p) {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return false
		}
	}
	s.selected = append(s.selected, p)
	return true
}

// Remove deletes the product at the given selection index.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.selected) {
		return fmt.Errorf("selection index %d out of range", index)
	}
	s.selected = append(s.selected[:index], s.selected[index+1:]...)
	return nil
}

// Clear removes all selected products.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Items returns a copy of the selection in selection order.
func (s *Store) Items() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.selected))
	copy(out, s.selected)
	return out
}

// Names returns the selected product names in selection order, used
// for mention highlighting.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for _, p := range s.selected {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}

// Len returns the number of selected products.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// Persist writes the selection verbatim to durable storage.
func (s *Store) Persist(ctx context.Context) error {
	data, err := json.Marshal(s.Items())
	if err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	if err := s.repo.Set(ctx, repository.KeySelectedProducts, string(data)); err != nil {
		return fmt.Errorf("persisting selection: %w", err)
	}
	return nil
}

// Restore loads a previously persisted selection verbatim. No identity
// re-validation against the catalog happens here. Absence or a parse
// failure leaves the selection empty.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	raw, err := s.repo.Get(ctx, repository.KeySelectedProducts)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading selection: %w", err)
	}
	var parsed []domain.Product
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return false, fmt.Errorf("decoding selection: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = parsed
	return len(parsed) > 0, nil
}
