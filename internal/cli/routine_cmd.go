package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xYup1terx/routine-builder/internal/cli/formatter"
	"github.com/xYup1terx/routine-builder/internal/session"
)

func newRoutineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "routine",
		Short: "Generate a routine from the selected products",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Controller.GenerateRoutine(cmd.Context())
			if err != nil {
				if errors.Is(err, session.ErrTurnInFlight) {
					return fmt.Errorf("a request is already running, try again in a moment")
				}
				return err
			}

			switch res.Outcome {
			case session.OutcomeErrored:
				return fmt.Errorf("routine generation failed: %s", res.Reply)
			default:
				if res.Local {
					fmt.Fprintln(app.Out, formatter.Dim(res.Reply))
					return nil
				}
				names := app.Controller.Selection().Names()
				fmt.Fprintln(app.Out, formatter.Header("Your Routine"))
				fmt.Fprintln(app.Out, formatter.HighlightMentions(res.Reply, names))
				return nil
			}
		},
	}
}
