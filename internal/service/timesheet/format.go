package timesheet

import (
	"math"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
)

// DefaultHoursPrecision is the decimal precision used when converting
// minutes to hours for display and export.
const DefaultHoursPrecision = 2

// MinutesToHours converts minutes to hours rounded to the given number of
// decimal places.
func MinutesToHours(minutes int, precision int) float64 {
	if precision < 0 {
		precision = DefaultHoursPrecision
	}
	factor := math.Pow(10, float64(precision))
	return math.Round(float64(minutes)/60.0*factor) / factor
}

// HoursFromTotals converts Totals (minutes) into HoursTotals at the given
// precision. TotalHours is regular plus overtime.
func HoursFromTotals(t timesheet.Totals, precision int) timesheet.HoursTotals {
	return timesheet.HoursTotals{
		RegularHours:  MinutesToHours(t.RegularMinutes, precision),
		OvertimeHours: MinutesToHours(t.OvertimeMinutes, precision),
		BreakHours:    MinutesToHours(t.BreakMinutes, precision),
		PlannedHours:  MinutesToHours(t.PlannedMinutes, precision),
		VarianceHours: MinutesToHours(t.VarianceMinutes, precision),
		TotalHours:    MinutesToHours(t.RegularMinutes+t.OvertimeMinutes, precision),
	}
}
