// Package compose builds the outbound payload for the completion
// service. Exactly one system message ever leaves this package: the
// default directive merged with any per-request rules. History is
// pruned to a bounded recent window before sending.
package compose

import (
	"encoding/json"
	"fmt"

	"github.com/xYup1terx/routine-builder/internal/domain"
	"github.com/xYup1terx/routine-builder/internal/llm"
)

// recentWindow bounds how many history messages accompany a request.
// Truncation drops the oldest excess, never the newest.
const recentWindow = 20

// Chat builds the free-chat payload: the combined system message
// followed by the pruned recent history (which already ends with the
// user's latest utterance).
func Chat(history []domain.Message) []llm.Message {
	out := []llm.Message{{Role: string(domain.RoleSystem), Content: DefaultSystemDirective}}
	return append(out, recentHistory(history)...)
}

// routineProduct is the serialized product shape embedded in the
// generation directive. Image URLs are not sent.
type routineProduct struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Routine builds the routine-generation payload: combined system
// message, pruned recent history, then the inclusion clarification and
// the generation directive with the serialized selection. The two
// trailing directives are sent but must never enter the canonical log.
func Routine(history []domain.Message, selected []domain.Product) ([]llm.Message, error) {
	payload := struct {
		Products []routineProduct `json:"products"`
	}{Products: make([]routineProduct, 0, len(selected))}
	for _, p := range selected {
		payload.Products = append(payload.Products, routineProduct{
			Name:        p.Name,
			Brand:       p.Brand,
			Category:    p.Category,
			Description: p.Description,
		})
	}
	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing selected products: %w", err)
	}

	combined := DefaultSystemDirective + "\n\n" + routineFormatDirective

	out := []llm.Message{{Role: string(domain.RoleSystem), Content: combined}}
	out = append(out, recentHistory(history)...)
	out = append(out,
		llm.Message{Role: string(domain.RoleUser), Content: inclusionClarification},
		llm.Message{Role: string(domain.RoleUser), Content: generationInstruction + "\n" + string(serialized)},
	)
	return out, nil
}

// recentHistory filters the canonical log down to what may be replayed
// to the service: no system messages, no internal instructions, at most
// recentWindow entries from the tail.
func recentHistory(history []domain.Message) []llm.Message {
	var kept []domain.Message
	for _, m := range history {
		if m.Role == domain.RoleSystem {
			continue
		}
		if m.Internal() {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) > recentWindow {
		kept = kept[len(kept)-recentWindow:]
	}

	out := make([]llm.Message, 0, len(kept))
	for _, m := range kept {
		out = append(out, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
