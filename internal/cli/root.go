package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/xYup1terx/routine-builder/internal/catalog"
	"github.com/xYup1terx/routine-builder/internal/session"
)

// App holds references to the shared stores and services used by CLI
// commands.
type App struct {
	Catalog    *catalog.Source
	Controller *session.Controller
	Out        io.Writer
}

// NewRootCmd creates the top-level "routine-builder" command and
// registers all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "routine-builder",
		Short: "Product catalog browser and AI routine builder",
	}

	root.AddCommand(
		newProductsCmd(app),
		newSelectCmd(app),
		newRoutineCmd(app),
		newChatCmd(app),
		newHistoryCmd(app),
	)

	return root
}
