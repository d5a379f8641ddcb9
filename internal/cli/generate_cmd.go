package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
)

func newGenerateCmd(app *App) *cobra.Command {
	var companyID string
	var period string
	var employeeID string
	var locationID string
	var overtimeThreshold int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate timesheets for a calendar month",
		RunE: func(cmd *cobra.Command, args []string) error {
			periodStart, periodEnd, err := monthBounds(period)
			if err != nil {
				return err
			}

			var threshold *int
			if cmd.Flags().Changed("overtime-threshold") {
				threshold = &overtimeThreshold
			}

			// A single tuple when both IDs are given, period-wide
			// discovery otherwise.
			if employeeID != "" && locationID != "" {
				result, err := app.Timesheets.Generate(context.Background(), companyID, timesheet.GenerateRequest{
					EmployeeID:               employeeID,
					LocationID:               locationID,
					PeriodStart:              periodStart,
					PeriodEnd:                periodEnd,
					OvertimeThresholdMinutes: threshold,
				})
				if err != nil {
					return err
				}
				printTimesheet(cmd, result)
				return nil
			}

			result, err := app.Timesheets.GenerateForPeriod(context.Background(), companyID, timesheet.GenerateForPeriodRequest{
				PeriodStart:              periodStart,
				PeriodEnd:                periodEnd,
				OvertimeThresholdMinutes: threshold,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Generated %d timesheet(s), %d failed\n", result.Succeeded, result.Failed)
			for _, failure := range result.Failures {
				cmd.Printf("  FAILED employee=%s location=%s: %s\n",
					failure.EmployeeID, failure.LocationID, failure.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID (required)")
	cmd.Flags().StringVar(&period, "period", "", "Calendar month, YYYY-MM (required)")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Limit to one employee ID")
	cmd.Flags().StringVar(&locationID, "location", "", "Limit to one location ID")
	cmd.Flags().IntVar(&overtimeThreshold, "overtime-threshold", 0, "Per-day overtime threshold in minutes")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

// monthBounds expands YYYY-MM into the month's first and last day.
func monthBounds(period string) (string, string, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return "", "", fmt.Errorf("invalid period %q, expected YYYY-MM", period)
	}
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

func printTimesheet(cmd *cobra.Command, ts timesheet.TimesheetResponse) {
	cmd.Printf("Timesheet %s (%s to %s) status=%s\n", ts.ID, ts.PeriodStart, ts.PeriodEnd, ts.Status)
	cmd.Printf("  regular=%dm overtime=%dm breaks=%dm planned=%dm variance=%dm days=%d\n",
		ts.Totals.RegularMinutes, ts.Totals.OvertimeMinutes, ts.Totals.BreakMinutes,
		ts.Totals.PlannedMinutes, ts.Totals.VarianceMinutes, ts.Totals.DaysWorked)
	if len(ts.Anomalies) > 0 {
		cmd.Printf("  %d anomaly(ies):\n", len(ts.Anomalies))
		for _, a := range ts.Anomalies {
			cmd.Printf("    %s at %s: %s\n", a.Code, a.At.Format(time.RFC3339), a.Detail)
		}
	}
}
