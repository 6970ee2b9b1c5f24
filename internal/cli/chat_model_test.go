package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xYup1terx/routine-builder/internal/domain"
	"github.com/xYup1terx/routine-builder/internal/session"
)

func TestChatModel_StartsWithHistory(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Controller.Bootstrap(context.Background())

	m := newChatModel(app)
	view := m.View()
	assert.Contains(t, view, "welcome")
	assert.Contains(t, view, "chat")
}

func TestChatModel_TurnRoundTrip(t *testing.T) {
	app, _, client := newTestApp(t)
	app.Controller.Bootstrap(context.Background())
	app.Controller.Selection().Toggle(domain.Product{Name: "Revitalift Serum"})

	m := newChatModel(app)
	_, cmd := m.handleInput("what skincare should I use at night?")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Thinking...")

	msg := cmd()
	done, ok := msg.(turnDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, session.OutcomeRendered, done.res.Outcome)
	assert.Equal(t, []string{"Revitalift Serum"}, done.res.Mentions)
	assert.Equal(t, 1, client.calls)

	m.Update(done)
	assert.False(t, m.busy)
	assert.Contains(t, m.View(), "Revitalift Serum")
}

func TestChatModel_IgnoresInputWhileBusy(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Controller.Bootstrap(context.Background())

	m := newChatModel(app)
	before := len(m.lines)
	m.busy = true
	_, cmd := m.handleInput("another question")
	assert.Nil(t, cmd)
	assert.Equal(t, before, len(m.lines))
}

func TestChatModel_SlashCommands(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Controller.Bootstrap(context.Background())

	m := newChatModel(app)

	_, cmd := m.handleInput("/selected")
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No products selected")

	_, cmd = m.handleInput("/quit")
	require.NotNil(t, cmd)

	// /routine with an empty selection reports the notice without a call.
	_, cmd = m.handleInput("/routine")
	require.NotNil(t, cmd)
	done, ok := cmd().(turnDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.True(t, done.res.Local)
	assert.True(t, strings.Contains(done.res.Reply, "select at least one product"))
}
