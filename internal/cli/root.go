package cli

import (
	"github.com/spf13/cobra"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/service/export"
)

// App holds the service interfaces used by CLI commands.
type App struct {
	Timesheets timesheet.Service
	Exports    export.Service
}

// NewRootCmd creates the top-level "timesheetctl" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timesheetctl",
		Short: "Timesheet aggregation and export from the command line",
	}

	root.AddCommand(
		newGenerateCmd(app),
		newExportCmd(app),
	)

	return root
}
