package timesheet

import (
	"testing"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
)

func TestMinutesToHours(t *testing.T) {
	tests := []struct {
		name      string
		minutes   int
		precision int
		want      float64
	}{
		{"zero", 0, 2, 0},
		{"whole hours", 480, 2, 8},
		{"half hour", 90, 2, 1.5},
		{"rounds up", 100, 2, 1.67},
		{"rounds down", 110, 2, 1.83},
		{"one decimal", 100, 1, 1.7},
		{"negative variance", -30, 2, -0.5},
		{"negative precision falls back to default", 90, -1, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesToHours(tt.minutes, tt.precision)
			if got != tt.want {
				t.Errorf("MinutesToHours(%d, %d) = %v, want %v", tt.minutes, tt.precision, got, tt.want)
			}
		})
	}
}

func TestHoursFromTotals(t *testing.T) {
	totals := timesheet.Totals{
		RegularMinutes:  450,
		OvertimeMinutes: 90,
		BreakMinutes:    30,
		PlannedMinutes:  480,
		VarianceMinutes: 60,
	}

	hours := HoursFromTotals(totals, 2)

	if hours.RegularHours != 7.5 {
		t.Errorf("regular = %v, want 7.5", hours.RegularHours)
	}
	if hours.OvertimeHours != 1.5 {
		t.Errorf("overtime = %v, want 1.5", hours.OvertimeHours)
	}
	if hours.TotalHours != 9 {
		t.Errorf("total = %v, want 9", hours.TotalHours)
	}
	if hours.BreakHours != 0.5 {
		t.Errorf("break = %v, want 0.5", hours.BreakHours)
	}
	if hours.VarianceHours != 1 {
		t.Errorf("variance = %v, want 1", hours.VarianceHours)
	}
}
