package domain

import "strings"

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Visibility classifies whether a message may be shown to the user
// and written to durable storage.
type Visibility string

const (
	// VisibilityVisible messages appear in the chat panel and in the
	// persisted snapshot.
	VisibilityVisible Visibility = "visible"

	// VisibilityInternal messages are synthesized directives sent to the
	// completion service only. They are never rendered or persisted.
	VisibilityInternal Visibility = "internal"
)

// MessageMeta carries render hints attached to an assistant message.
type MessageMeta struct {
	// HighlightedProducts is the authoritative, ordered list of selected
	// product names to re-highlight when the message is redrawn after a
	// restore. When present it overrides ad-hoc recomputation.
	HighlightedProducts []string `json:"highlightedProducts,omitempty"`
}

// Message is a single turn in the conversation log. Messages are never
// mutated after creation; derived views filter, they do not edit.
type Message struct {
	ID         string       `json:"id,omitempty"`
	Role       Role         `json:"role"`
	Content    string       `json:"content"`
	Visibility Visibility   `json:"-"`
	Meta       *MessageMeta `json:"meta,omitempty"`
}

// Internal reports whether the message must be kept out of rendered and
// persisted views. The Visibility tag is authoritative; the content
// heuristic remains as defense in depth against untagged data restored
// from older snapshots.
func (m Message) Internal() bool {
	if m.Visibility == VisibilityInternal {
		return true
	}
	return m.Role == RoleUser && LooksLikeInternalInstruction(m.Content)
}

// internalInstructionSizeThreshold is the length above which a
// JSON-shaped user message is assumed to be a serialized payload
// rather than typed input.
const internalInstructionSizeThreshold = 2000

// LooksLikeInternalInstruction reports whether text has the shape of a
// synthesized generation directive: an embedded product payload, a
// formatting directive, a "please generate" imperative, or a very long
// JSON-shaped blob. Heuristic only; tagged visibility is preferred.
func LooksLikeInternalInstruction(text string) bool {
	if text == "" {
		return false
	}
	t := strings.ToLower(text)
	if strings.Contains(t, `"products":`) {
		return true
	}
	if strings.Contains(t, "format the response in markdown") {
		return true
	}
	if strings.Contains(t, "please generate") {
		return true
	}
	trimmed := strings.TrimSpace(t)
	if len(t) > internalInstructionSizeThreshold &&
		(strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) {
		return true
	}
	return false
}
