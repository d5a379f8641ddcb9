package timesheet

import (
	"reflect"
	"testing"
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/shift"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
)

var (
	periodStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
)

func ev(kind punch.Kind, at time.Time) punch.Event {
	return punch.Event{
		ID:         "ev-" + at.Format("20060102150405"),
		Kind:       kind,
		OccurredAt: at,
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

func publishedShift(start, end time.Time) shift.PlannedShift {
	p := start.Add(-24 * time.Hour)
	return shift.PlannedShift{
		ID:          "sh-" + start.Format("20060102150405"),
		StartsAt:    start,
		EndsAt:      end,
		PublishedAt: &p,
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	agg := NewAggregator()

	totals, anomalies := agg.Aggregate(nil, nil, periodStart, periodEnd, AggregateOptions{})

	if totals != (timesheet.Totals{}) {
		t.Errorf("expected zero totals, got %+v", totals)
	}
	if len(anomalies) != 0 {
		t.Errorf("expected no anomalies, got %d", len(anomalies))
	}
}

func TestAggregateSingleDay(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(10, 9, 0)),
		ev(punch.KindClockOut, at(10, 17, 0)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals.RegularMinutes != 480 {
		t.Errorf("regular = %d, want 480", totals.RegularMinutes)
	}
	if totals.OvertimeMinutes != 0 {
		t.Errorf("overtime = %d, want 0", totals.OvertimeMinutes)
	}
	if totals.DaysWorked != 1 {
		t.Errorf("days worked = %d, want 1", totals.DaysWorked)
	}
	if len(anomalies) != 0 {
		t.Errorf("expected no anomalies, got %+v", anomalies)
	}
}

func TestAggregateOvertimeSplit(t *testing.T) {
	agg := NewAggregator()
	// 9.5 hours worked, default threshold 480.
	events := []punch.Event{
		ev(punch.KindClockIn, at(12, 8, 0)),
		ev(punch.KindClockOut, at(12, 17, 30)),
	}

	totals, _ := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals.RegularMinutes != 480 {
		t.Errorf("regular = %d, want 480", totals.RegularMinutes)
	}
	if totals.OvertimeMinutes != 90 {
		t.Errorf("overtime = %d, want 90", totals.OvertimeMinutes)
	}
}

func TestAggregateCustomThreshold(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(12, 8, 0)),
		ev(punch.KindClockOut, at(12, 16, 0)),
	}

	totals, _ := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{
		OvertimeThresholdMinutes: 420,
	})

	if totals.RegularMinutes != 420 {
		t.Errorf("regular = %d, want 420", totals.RegularMinutes)
	}
	if totals.OvertimeMinutes != 60 {
		t.Errorf("overtime = %d, want 60", totals.OvertimeMinutes)
	}
}

func TestAggregateBreakSubtraction(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(11, 9, 0)),
		ev(punch.KindBreakStart, at(11, 12, 0)),
		ev(punch.KindBreakEnd, at(11, 12, 30)),
		ev(punch.KindClockOut, at(11, 17, 0)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals.RegularMinutes != 450 {
		t.Errorf("regular = %d, want 450", totals.RegularMinutes)
	}
	if totals.BreakMinutes != 30 {
		t.Errorf("break = %d, want 30", totals.BreakMinutes)
	}
	if len(anomalies) != 0 {
		t.Errorf("expected no anomalies, got %+v", anomalies)
	}
}

func TestAggregateClockOutWhileOnBreakClosesBreak(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(11, 9, 0)),
		ev(punch.KindBreakStart, at(11, 16, 0)),
		ev(punch.KindClockOut, at(11, 17, 0)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals.RegularMinutes != 420 {
		t.Errorf("regular = %d, want 420", totals.RegularMinutes)
	}
	if totals.BreakMinutes != 60 {
		t.Errorf("break = %d, want 60", totals.BreakMinutes)
	}
	if len(anomalies) != 0 {
		t.Errorf("expected no anomalies, got %+v", anomalies)
	}
}

func TestAggregateVarianceIdentity(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(14, 9, 0)),
		ev(punch.KindClockOut, at(14, 17, 0)),
	}
	shifts := []shift.PlannedShift{
		publishedShift(at(14, 9, 0), at(14, 16, 0)),
	}

	totals, _ := agg.Aggregate(events, shifts, periodStart, periodEnd, AggregateOptions{})

	if totals.PlannedMinutes != 420 {
		t.Errorf("planned = %d, want 420", totals.PlannedMinutes)
	}
	want := totals.RegularMinutes + totals.OvertimeMinutes - totals.PlannedMinutes
	if totals.VarianceMinutes != want {
		t.Errorf("variance = %d, want %d", totals.VarianceMinutes, want)
	}
	if totals.VarianceMinutes != 60 {
		t.Errorf("variance = %d, want 60", totals.VarianceMinutes)
	}
}

func TestAggregateUnpublishedShiftIgnored(t *testing.T) {
	agg := NewAggregator()
	shifts := []shift.PlannedShift{
		{StartsAt: at(14, 9, 0), EndsAt: at(14, 17, 0)},
	}

	totals, _ := agg.Aggregate(nil, shifts, periodStart, periodEnd, AggregateOptions{})

	if totals.PlannedMinutes != 0 {
		t.Errorf("planned = %d, want 0 for draft shift", totals.PlannedMinutes)
	}
}

func TestAggregateShiftClippedToPeriod(t *testing.T) {
	agg := NewAggregator()
	// Overnight shift straddling the period end: only the part inside the
	// window counts.
	shifts := []shift.PlannedShift{
		publishedShift(
			time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 6, 0, 0, 0, time.UTC),
		),
	}

	totals, _ := agg.Aggregate(nil, shifts, periodStart, periodEnd, AggregateOptions{})

	if totals.PlannedMinutes != 120 {
		t.Errorf("planned = %d, want 120", totals.PlannedMinutes)
	}
}

func TestAggregateOutOfOrderEventSkipped(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(10, 9, 0)),
		ev(punch.KindClockOut, at(10, 17, 0)),
		ev(punch.KindClockIn, at(10, 16, 0)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals.RegularMinutes != 480 {
		t.Errorf("regular = %d, want 480", totals.RegularMinutes)
	}
	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %+v", anomalies)
	}
	if anomalies[0].Code != timesheet.AnomalyOutOfOrder {
		t.Errorf("anomaly code = %s, want %s", anomalies[0].Code, timesheet.AnomalyOutOfOrder)
	}
}

func TestAggregateInvalidTransitionsSkipped(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockOut, at(10, 8, 0)),
		ev(punch.KindClockIn, at(10, 9, 0)),
		ev(punch.KindClockIn, at(10, 10, 0)),
		ev(punch.KindBreakEnd, at(10, 11, 0)),
		ev(punch.KindClockOut, at(10, 17, 0)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals.RegularMinutes != 480 {
		t.Errorf("regular = %d, want 480", totals.RegularMinutes)
	}
	if len(anomalies) != 3 {
		t.Fatalf("expected 3 anomalies, got %+v", anomalies)
	}
	for _, an := range anomalies {
		if an.Code != timesheet.AnomalyInvalidTransition {
			t.Errorf("anomaly code = %s, want %s", an.Code, timesheet.AnomalyInvalidTransition)
		}
	}
}

func TestAggregateUnterminatedSessionClippedAtPeriodEnd(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(31, 20, 0)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	// Clipped at 2025-04-01T00:00, four hours after clock in.
	if totals.RegularMinutes != 240 {
		t.Errorf("regular = %d, want 240", totals.RegularMinutes)
	}
	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %+v", anomalies)
	}
	if anomalies[0].Code != timesheet.AnomalyUnterminatedSession {
		t.Errorf("anomaly code = %s, want %s", anomalies[0].Code, timesheet.AnomalyUnterminatedSession)
	}
}

func TestAggregateOpenSessionClippedAtEvaluationTime(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(15, 9, 0)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{
		EvaluatedAt: at(15, 12, 0),
	})

	if totals.RegularMinutes != 180 {
		t.Errorf("regular = %d, want 180", totals.RegularMinutes)
	}
	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %+v", anomalies)
	}
	if anomalies[0].Code != timesheet.AnomalySessionOpen {
		t.Errorf("anomaly code = %s, want %s", anomalies[0].Code, timesheet.AnomalySessionOpen)
	}
}

func TestAggregateSessionOutsidePeriodIgnored(t *testing.T) {
	agg := NewAggregator()
	// Clocked in the day before the period starts; the session resolves but
	// contributes nothing.
	events := []punch.Event{
		ev(punch.KindClockIn, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)),
		ev(punch.KindClockOut, time.Date(2025, 2, 28, 17, 0, 0, 0, time.UTC)),
	}

	totals, anomalies := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals != (timesheet.Totals{}) {
		t.Errorf("expected zero totals, got %+v", totals)
	}
	if len(anomalies) != 0 {
		t.Errorf("expected no anomalies, got %+v", anomalies)
	}
}

func TestAggregateOvernightSessionAttributedToClockInDay(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(10, 22, 0)),
		ev(punch.KindClockOut, at(11, 4, 0)),
	}

	totals, _ := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	if totals.RegularMinutes != 360 {
		t.Errorf("regular = %d, want 360", totals.RegularMinutes)
	}
	if totals.DaysWorked != 1 {
		t.Errorf("days worked = %d, want 1", totals.DaysWorked)
	}
}

func TestAggregateTimezoneDayBucketing(t *testing.T) {
	agg := NewAggregator()
	wib := time.FixedZone("WIB", 7*3600)

	// 2025-03-31T18:00Z is already 2025-04-01 01:00 in WIB, so the session's
	// local clock-in day falls outside a March period.
	events := []punch.Event{
		ev(punch.KindClockIn, time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC)),
		ev(punch.KindClockOut, time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC)),
	}

	totals, _ := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{Location: wib})
	if totals.RegularMinutes != 0 {
		t.Errorf("regular = %d, want 0 for session on local April 1", totals.RegularMinutes)
	}

	// The same instants bucket into March under UTC.
	totals, _ = agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})
	if totals.RegularMinutes != 240 {
		t.Errorf("regular = %d, want 240 under UTC bucketing", totals.RegularMinutes)
	}
}

func TestAggregateMultipleDays(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(3, 9, 0)),
		ev(punch.KindClockOut, at(3, 17, 0)),
		ev(punch.KindClockIn, at(4, 9, 0)),
		ev(punch.KindClockOut, at(4, 18, 0)),
		ev(punch.KindClockIn, at(5, 10, 0)),
		ev(punch.KindClockOut, at(5, 14, 0)),
	}

	totals, _ := agg.Aggregate(events, nil, periodStart, periodEnd, AggregateOptions{})

	// Day 3: 480 regular. Day 4: 480 regular + 60 overtime. Day 5: 240 regular.
	if totals.RegularMinutes != 1200 {
		t.Errorf("regular = %d, want 1200", totals.RegularMinutes)
	}
	if totals.OvertimeMinutes != 60 {
		t.Errorf("overtime = %d, want 60", totals.OvertimeMinutes)
	}
	if totals.DaysWorked != 3 {
		t.Errorf("days worked = %d, want 3", totals.DaysWorked)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	agg := NewAggregator()
	events := []punch.Event{
		ev(punch.KindClockIn, at(10, 9, 0)),
		ev(punch.KindBreakStart, at(10, 12, 0)),
		ev(punch.KindBreakEnd, at(10, 12, 45)),
		ev(punch.KindClockOut, at(10, 18, 30)),
	}
	shifts := []shift.PlannedShift{
		publishedShift(at(10, 9, 0), at(10, 17, 0)),
	}
	opts := AggregateOptions{EvaluatedAt: at(20, 0, 0)}

	t1, a1 := agg.Aggregate(events, shifts, periodStart, periodEnd, opts)
	t2, a2 := agg.Aggregate(events, shifts, periodStart, periodEnd, opts)

	if t1 != t2 {
		t.Errorf("totals differ across runs: %+v vs %+v", t1, t2)
	}
	if !reflect.DeepEqual(a1, a2) {
		t.Errorf("anomalies differ across runs: %+v vs %+v", a1, a2)
	}
}
