// Package conversation owns the canonical in-memory message log and its
// persisted projection. The canonical log always starts with the default
// system directive; the persisted projection excludes system messages
// and anything internal, so a reload can never replay instructions the
// user was not meant to see.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xYup1terx/routine-builder/internal/domain"
	"github.com/xYup1terx/routine-builder/internal/repository"
)

// Store is the canonical conversation log. Safe for concurrent use.
type Store struct {
	mu              sync.Mutex
	log             []domain.Message
	systemDirective string
	repo            repository.StateRepo
}

// NewStore creates a Store seeded with the default system directive.
func NewStore(repo repository.StateRepo, systemDirective string) *Store {
	s := &Store{
		systemDirective: systemDirective,
		repo:            repo,
	}
	s.log = []domain.Message{s.defaultSystemMessage()}
	return s
}

func (s *Store) defaultSystemMessage() domain.Message {
	return domain.Message{
		ID:      uuid.New().String(),
		Role:    domain.RoleSystem,
		Content: s.systemDirective,
	}
}

// Append adds a message to the canonical log. Role and content are
// required; nothing else is validated. The message is assigned an ID if
// it has none.
func (s *Store) Append(m domain.Message) error {
	if m.Role == "" || m.Content == "" {
		return fmt.Errorf("message requires role and content")
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, m)
	return nil
}

// Messages returns a copy of the full canonical log, leading system
// message included.
func (s *Store) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.log))
	copy(out, s.log)
	return out
}

// PersistedSnapshot returns the log filtered to what may be written to
// durable storage: no system messages, no internal instructions.
func (s *Store) PersistedSnapshot() []domain.Message {
	return s.visible()
}

// VisibleForRender returns the live log filtered to what the chat panel
// may show. Same projection as PersistedSnapshot.
func (s *Store) VisibleForRender() []domain.Message {
	return s.visible()
}

func (s *Store) visible() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Message
	for _, m := range s.log {
		if m.Role == domain.RoleSystem {
			continue
		}
		if m.Internal() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Persist writes the persisted snapshot to durable storage. Failures
// are returned for logging; callers treat them as non-fatal.
func (s *Store) Persist(ctx context.Context) error {
	data, err := json.Marshal(s.PersistedSnapshot())
	if err != nil {
		return fmt.Errorf("encoding message history: %w", err)
	}
	if err := s.repo.Set(ctx, repository.KeyMessagesHistory, string(data)); err != nil {
		return fmt.Errorf("persisting message history: %w", err)
	}
	return nil
}

// Restore replaces the log with the persisted snapshot. Returns true if
// a prior session was restored. An absent key, an empty snapshot, or a
// snapshot that fails to parse all mean "no prior session": the store
// is reset to a fresh log and the returned error (nil for plain
// absence) is informational only.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	raw, err := s.repo.Get(ctx, repository.KeyMessagesHistory)
	if err != nil {
		s.reset()
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading message history: %w", err)
	}

	var parsed []domain.Message
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.reset()
		return false, fmt.Errorf("decoding message history: %w", err)
	}
	if len(parsed) == 0 {
		s.reset()
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = s.log[:0]
	// Re-prepend the default directive if the snapshot lacks one. The
	// persisted projection never contains system messages, so in
	// practice this always fires; the check guards hand-edited state.
	if parsed[0].Role != domain.RoleSystem {
		s.log = append(s.log, s.defaultSystemMessage())
	}
	for _, m := range parsed {
		if m.Role == "" || m.Content == "" {
			continue
		}
		// Filter stored internal instructions again, in case the
		// snapshot was written by an older build or tampered with.
		if m.Internal() {
			continue
		}
		s.log = append(s.log, m)
	}
	return true, nil
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = []domain.Message{s.defaultSystemMessage()}
}

// Clear resets the log to a fresh session and removes the persisted
// snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.reset()
	if err := s.repo.Delete(ctx, repository.KeyMessagesHistory); err != nil {
		return fmt.Errorf("clearing message history: %w", err)
	}
	return nil
}
