// Package session orchestrates a conversational turn: local fast paths,
// scope gating, payload construction, the completion call, and the
// reconciliation of the reply into the stores and the rendered output.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/xYup1terx/routine-builder/internal/compose"
	"github.com/xYup1terx/routine-builder/internal/conversation"
	"github.com/xYup1terx/routine-builder/internal/domain"
	"github.com/xYup1terx/routine-builder/internal/highlight"
	"github.com/xYup1terx/routine-builder/internal/llm"
	"github.com/xYup1terx/routine-builder/internal/markdown"
	"github.com/xYup1terx/routine-builder/internal/scope"
	"github.com/xYup1terx/routine-builder/internal/selection"
)

// ErrTurnInFlight is returned when a turn is submitted while another is
// still awaiting the completion service.
var ErrTurnInFlight = errors.New("a turn is already in flight")

// Outcome is the terminal state of one conversational turn.
type Outcome string

const (
	// OutcomeIgnored: empty input, nothing happened.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeRendered: a reply (local or remote) was produced.
	OutcomeRendered Outcome = "rendered"
	// OutcomeDeclined: the scope gate refused the utterance.
	OutcomeDeclined Outcome = "declined"
	// OutcomeErrored: the completion call failed; the log is untouched.
	OutcomeErrored Outcome = "errored"
)

// TurnResult describes what a turn produced.
type TurnResult struct {
	Outcome Outcome
	// Reply is the assistant text (or the error text for OutcomeErrored).
	Reply string
	// HTML is the rendered reply, empty when Outcome is not Rendered
	// or Declined.
	HTML string
	// Mentions are the product names detected in the reply, the same
	// list stored on the message meta. Surfaces highlight these, not a
	// recomputation from the live selection.
	Mentions []string
	// Local is true when the reply was synthesized without a network call.
	Local bool
}

// RenderedMessage is one visible log entry prepared for display.
type RenderedMessage struct {
	Role domain.Role
	Text string
	HTML string
	// Mentions are the resolved highlight names for this entry: the
	// stored meta when present, otherwise the current selection.
	Mentions []string
}

// Canned local replies and user-facing notices.
const (
	StartupWelcome = "Hi — welcome! I can help you build a personalized routine with L'Oréal products. Select some products and generate a routine, or ask me about L'Oréal skincare, haircare, makeup, or fragrance."

	declineMessage = "Sorry — I can only answer questions about L'Oréal products, routines, or closely related topics. I can't help with other brands or unrelated subjects."

	emptySelectionNotice = "Please select at least one product before generating a routine."
)

var (
	greetingRe  = regexp.MustCompile(`^(hi|hello|hey|hiya|good morning|good afternoon|good evening)([!.,]?\s*)?$`)
	nameIntroRe = regexp.MustCompile(`(?i)\b(my name is|i am|i'm|im)\b`)
	nameParseRe = regexp.MustCompile(`(?i)\b(?:my name is|i am|i'm|im)\s+(.+)$`)
)

// Controller drives the per-turn state machine. One instance per
// session; all cross-turn state lives here rather than in package-level
// variables.
type Controller struct {
	conv   *conversation.Store
	sel    *selection.Store
	client llm.CompletionClient
	errLog io.Writer

	mu               sync.Mutex
	inFlight         bool
	routineGenerated bool
}

// NewController wires a Controller. errLog receives storage failures,
// which are logged and otherwise ignored; nil discards them.
func NewController(conv *conversation.Store, sel *selection.Store, client llm.CompletionClient, errLog io.Writer) *Controller {
	if errLog == nil {
		errLog = io.Discard
	}
	return &Controller{
		conv:   conv,
		sel:    sel,
		client: client,
		errLog: errLog,
	}
}

// Bootstrap restores persisted state, seeding a fresh session with the
// startup welcome when nothing was restored. Returns whether a prior
// conversation was restored.
func (c *Controller) Bootstrap(ctx context.Context) bool {
	if _, err := c.sel.Restore(ctx); err != nil {
		fmt.Fprintf(c.errLog, "could not load selection: %v\n", err)
	}
	restored, err := c.conv.Restore(ctx)
	if err != nil {
		fmt.Fprintf(c.errLog, "could not load conversation: %v\n", err)
	}
	if !restored {
		c.appendAndPersist(ctx, domain.Message{
			Role:    domain.RoleAssistant,
			Content: StartupWelcome,
		})
	}
	return restored
}

// RoutineGenerated reports whether a routine has been generated this
// session.
func (c *Controller) RoutineGenerated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.routineGenerated
}

// Selection exposes the selection store for UI surfaces.
func (c *Controller) Selection() *selection.Store { return c.sel }

// Conversation exposes the conversation store for UI surfaces.
func (c *Controller) Conversation() *conversation.Store { return c.conv }

// Submit runs one free-chat turn. Empty input is ignored; greetings and
// name introductions are answered locally; everything else passes
// through the scope gate before reaching the completion service.
func (c *Controller) Submit(ctx context.Context, input string) (*TurnResult, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return &TurnResult{Outcome: OutcomeIgnored}, nil
	}

	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	if reply, ok := localReply(text); ok {
		c.appendAndPersist(ctx,
			domain.Message{Role: domain.RoleUser, Content: text},
			domain.Message{Role: domain.RoleAssistant, Content: reply},
		)
		return &TurnResult{
			Outcome: OutcomeRendered,
			Reply:   reply,
			HTML:    markdown.Render(reply),
			Local:   true,
		}, nil
	}

	// The user's utterance is recorded even when it gets declined.
	c.appendAndPersist(ctx, domain.Message{Role: domain.RoleUser, Content: text})

	if !scope.Allowed(text, c.RoutineGenerated(), c.sel.Items()) {
		c.appendAndPersist(ctx, domain.Message{Role: domain.RoleAssistant, Content: declineMessage})
		return &TurnResult{
			Outcome: OutcomeDeclined,
			Reply:   declineMessage,
			HTML:    markdown.Render(declineMessage),
			Local:   true,
		}, nil
	}

	resp, err := c.client.Complete(ctx, llm.Request{
		Kind:     llm.KindChat,
		Messages: compose.Chat(c.conv.Messages()),
	})
	if err != nil {
		return &TurnResult{Outcome: OutcomeErrored, Reply: err.Error()}, nil
	}

	mentions := highlight.Mentions(resp.Text, c.sel.Names())
	c.appendAndPersist(ctx, domain.Message{
		Role:    domain.RoleAssistant,
		Content: resp.Text,
		Meta:    &domain.MessageMeta{HighlightedProducts: mentions},
	})

	return &TurnResult{
		Outcome:  OutcomeRendered,
		Reply:    resp.Text,
		HTML:     highlight.Render(resp.Text, mentions),
		Mentions: mentions,
	}, nil
}

// GenerateRoutine runs the routine-generation flow. It requires a
// non-empty selection; the generation directives are sent to the
// service but never appended to the canonical log.
func (c *Controller) GenerateRoutine(ctx context.Context) (*TurnResult, error) {
	if c.sel.Len() == 0 {
		return &TurnResult{
			Outcome: OutcomeRendered,
			Reply:   emptySelectionNotice,
			HTML:    markdown.Render(emptySelectionNotice),
			Local:   true,
		}, nil
	}

	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	msgs, err := compose.Routine(c.conv.Messages(), c.sel.Items())
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Complete(ctx, llm.Request{Kind: llm.KindRoutine, Messages: msgs})
	if err != nil {
		// Log and flag untouched so a retry is clean.
		return &TurnResult{Outcome: OutcomeErrored, Reply: err.Error()}, nil
	}

	mentions := highlight.Mentions(resp.Text, c.sel.Names())
	c.appendAndPersist(ctx, domain.Message{
		Role:    domain.RoleAssistant,
		Content: resp.Text,
		Meta:    &domain.MessageMeta{HighlightedProducts: mentions},
	})

	c.mu.Lock()
	c.routineGenerated = true
	c.mu.Unlock()

	return &TurnResult{
		Outcome:  OutcomeRendered,
		Reply:    resp.Text,
		HTML:     highlight.Render(resp.Text, mentions),
		Mentions: mentions,
	}, nil
}

// RenderedHistory prepares the visible log for redraw. Assistant
// messages use their stored highlight meta when present, falling back
// to the current selection.
func (c *Controller) RenderedHistory() []RenderedMessage {
	var out []RenderedMessage
	for _, m := range c.conv.VisibleForRender() {
		rm := RenderedMessage{Role: m.Role, Text: m.Content}
		if m.Role == domain.RoleAssistant {
			names := c.sel.Names()
			if m.Meta != nil && len(m.Meta.HighlightedProducts) > 0 {
				names = m.Meta.HighlightedProducts
			}
			rm.HTML = highlight.Render(m.Content, names)
			rm.Mentions = names
		} else {
			rm.HTML = markdown.Render(m.Content)
		}
		out = append(out, rm)
	}
	return out
}

func (c *Controller) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrTurnInFlight
	}
	c.inFlight = true
	return nil
}

func (c *Controller) release() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// appendAndPersist appends messages to the canonical log and persists
// the snapshot. Persistence failures are logged, never fatal.
func (c *Controller) appendAndPersist(ctx context.Context, msgs ...domain.Message) {
	for _, m := range msgs {
		if err := c.conv.Append(m); err != nil {
			fmt.Fprintf(c.errLog, "could not append message: %v\n", err)
		}
	}
	if err := c.conv.Persist(ctx); err != nil {
		fmt.Fprintf(c.errLog, "could not save conversation: %v\n", err)
	}
}

// localReply returns a canned reply for greetings and name
// introductions, bypassing the scope gate and the completion service.
func localReply(text string) (string, bool) {
	if isNameIntro(text) {
		if name := parseNameFromIntro(text); name != "" {
			return fmt.Sprintf("Nice to meet you, %s! I'm here to help you build a L'Oréal routine — select products and generate a routine, or ask about L'Oréal products.", name), true
		}
		return "Nice to meet you! I'm here to help you build a L'Oréal routine — select products and generate a routine, or ask about L'Oréal products.", true
	}
	if isGreeting(text) {
		return StartupWelcome, true
	}
	return "", false
}

func isGreeting(text string) bool {
	return greetingRe.MatchString(strings.ToLower(strings.TrimSpace(text)))
}

func isNameIntro(text string) bool {
	return nameIntroRe.MatchString(text)
}

// parseNameFromIntro extracts the introduced name, trimming trailing
// punctuation. Returns "" when no name follows the intro phrase.
func parseNameFromIntro(text string) string {
	m := nameParseRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(m[1]), ".!?")
}
