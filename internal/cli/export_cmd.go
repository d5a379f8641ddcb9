package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/service/export"
)

func newExportCmd(app *App) *cobra.Command {
	var companyID string
	var period string
	var format string
	var fields string
	var output string
	var status string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export timesheets to CSV or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := timesheet.TimesheetFilter{}
			if period != "" {
				periodStart, periodEnd, err := monthBounds(period)
				if err != nil {
					return err
				}
				filter.PeriodStart = &periodStart
				filter.PeriodEnd = &periodEnd
			}
			if status != "" {
				filter.Status = &status
			}

			result, err := app.Exports.Export(context.Background(), companyID, export.Request{
				Filter: filter,
				Format: export.Format(format),
				Fields: export.ParseFields(fields),
			})
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = result.Filename
			}
			if err := os.WriteFile(path, result.Content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			cmd.Printf("Wrote %s (%d bytes)\n", path, len(result.Content))
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID (required)")
	cmd.Flags().StringVar(&period, "period", "", "Calendar month, YYYY-MM")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&fields, "fields", "", "Comma list of export fields")
	cmd.Flags().StringVar(&output, "output", "", "Output file path")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: draft, approved, locked")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}
