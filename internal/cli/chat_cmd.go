package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/xYup1terx/routine-builder/internal/cli/formatter"
	"github.com/xYup1terx/routine-builder/internal/domain"
	"github.com/xYup1terx/routine-builder/internal/session"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the routine assistant",
		Long: "Talk to the routine assistant. With a message argument (or when " +
			"stdin is not a terminal) the reply is printed and the command exits; " +
			"otherwise an interactive chat opens.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Controller.Bootstrap(cmd.Context())

			if len(args) > 0 {
				return runOneShot(cmd.Context(), app, strings.Join(args, " "))
			}
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("interactive chat needs a terminal; pass the message as an argument instead")
			}

			model := newChatModel(app)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}
}

func runOneShot(ctx context.Context, app *App, input string) error {
	res, err := app.Controller.Submit(ctx, input)
	if err != nil {
		return err
	}
	if res.Outcome == session.OutcomeErrored {
		return fmt.Errorf("completion failed: %s", res.Reply)
	}
	if res.Outcome == session.OutcomeIgnored {
		return nil
	}
	fmt.Fprintln(app.Out, formatter.FormatMessage(domain.RoleAssistant, res.Reply, res.Mentions))
	return nil
}

// turnDoneMsg carries the result of an asynchronous conversational turn
// back into the update loop.
type turnDoneMsg struct {
	res *session.TurnResult
	err error
}

// chatModel is the interactive chat view. The transcript is a slice of
// already-styled lines; the completion call runs as a tea.Cmd so the
// input stays responsive.
type chatModel struct {
	app   *App
	input textinput.Model
	lines []string
	busy  bool
}

func newChatModel(app *App) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	m := &chatModel{app: app, input: ti}
	for _, rm := range app.Controller.RenderedHistory() {
		m.lines = append(m.lines, formatter.FormatMessage(rm.Role, rm.Text, rm.Mentions))
	}
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if input == "" {
				return m, nil
			}
			return m.handleInput(input)
		}

	case turnDoneMsg:
		m.busy = false
		m.appendTurn(msg.res, msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString(formatter.Dim("Thinking..."))
		b.WriteString("\n")
	}

	prompt := formatter.StylePurple.Render("chat") + formatter.Dim("> ")
	b.WriteString(prompt)
	b.WriteString(m.input.View())
	return b.String()
}

func (m *chatModel) handleInput(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q", "quit", "exit":
		return m, tea.Quit
	case "/selected":
		m.lines = append(m.lines, formatter.FormatSelection(m.app.Controller.Selection().Items()))
		return m, nil
	case "/routine":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.lines = append(m.lines, formatter.Dim("Generating a routine..."))
		return m, func() tea.Msg {
			res, err := m.app.Controller.GenerateRoutine(context.Background())
			return turnDoneMsg{res: res, err: err}
		}
	}

	if m.busy {
		return m, nil
	}
	m.busy = true
	m.lines = append(m.lines, formatter.FormatMessage(domain.RoleUser, input, nil))
	return m, func() tea.Msg {
		res, err := m.app.Controller.Submit(context.Background(), input)
		return turnDoneMsg{res: res, err: err}
	}
}

func (m *chatModel) appendTurn(res *session.TurnResult, err error) {
	if err != nil {
		if errors.Is(err, session.ErrTurnInFlight) {
			m.lines = append(m.lines, formatter.Dim("Still waiting on the previous request."))
			return
		}
		m.lines = append(m.lines, formatter.StyleRed.Render("Error: "+err.Error()))
		return
	}

	switch res.Outcome {
	case session.OutcomeErrored:
		m.lines = append(m.lines, formatter.StyleRed.Render("Error: "+res.Reply))
	case session.OutcomeIgnored:
	default:
		m.lines = append(m.lines, formatter.FormatMessage(domain.RoleAssistant, res.Reply, res.Mentions))
	}
}
