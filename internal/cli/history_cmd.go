package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/xYup1terx/routine-builder/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the saved conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Controller.Bootstrap(cmd.Context())

			for _, m := range app.Controller.RenderedHistory() {
				fmt.Fprintln(app.Out, formatter.FormatMessage(m.Role, m.Text, m.Mentions))
			}
			return nil
		},
	}

	cmd.AddCommand(newHistoryClearCmd(app))

	return cmd
}

func newHistoryClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && isatty.IsTerminal(os.Stdin.Fd()) {
				confirmed := false
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title("Delete the saved conversation?").
							Affirmative("Yes").
							Negative("No").
							Value(&confirmed),
					),
				).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(app.Out, formatter.Dim("Kept the conversation."))
					return nil
				}
			}

			if err := app.Controller.Conversation().Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clearing conversation: %w", err)
			}
			fmt.Fprintln(app.Out, "Conversation cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
