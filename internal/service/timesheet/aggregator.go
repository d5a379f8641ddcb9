package timesheet

import (
	"fmt"
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/shift"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
)

// DefaultOvertimeThresholdMinutes is the per-day overtime cutoff applied
// when no explicit threshold is configured. Product default, pending
// confirmation per location.
const DefaultOvertimeThresholdMinutes = 480

// AggregateOptions tunes one aggregation run.
type AggregateOptions struct {
	// OvertimeThresholdMinutes is the daily cutoff; minutes beyond it on a
	// single day count as overtime. Zero means DefaultOvertimeThresholdMinutes.
	OvertimeThresholdMinutes int

	// Location is the work site's timezone; all day bucketing happens in
	// it. Nil means UTC.
	Location *time.Location

	// EvaluatedAt is the instant the run is evaluated at. A trailing open
	// session is clipped at min(period end, EvaluatedAt); whether the clip
	// is an anomaly or just an open-session note depends on which side of
	// the period end EvaluatedAt falls. Zero means the period end, which
	// makes every trailing open session an anomaly.
	EvaluatedAt time.Time
}

// Aggregator converts ordered punch events plus planned shifts into period
// totals. It is pure: no I/O, no clock reads, safe for concurrent use.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// session state machine states
type sessionState int

const (
	stateNotStarted sessionState = iota
	stateClockedIn
	stateOnBreak
	stateClockedOut
)

func (s sessionState) String() string {
	switch s {
	case stateClockedIn:
		return "clocked_in"
	case stateOnBreak:
		return "on_break"
	case stateClockedOut:
		return "clocked_out"
	default:
		return "not_started"
	}
}

type openSession struct {
	inAt         time.Time
	breakMinutes int
	breakOpenAt  *time.Time
}

// Aggregate walks events in timestamp order through the session state
// machine, buckets worked minutes by local calendar day, splits each day at
// the overtime threshold and clips planned shifts to the period window.
//
// Events must already be scoped to one employee/location pair; callers pass
// events from a window one day wider than the period on each side so that
// sessions crossing the boundary resolve. A closed session is attributed in
// full to the local calendar day of its clock_in; sessions clocked in
// outside [periodStart, periodEnd] contribute nothing.
//
// Malformed transitions never abort the run: the offending event is skipped
// and recorded as an anomaly, and the remaining events still aggregate.
func (a *Aggregator) Aggregate(
	events []punch.Event,
	shifts []shift.PlannedShift,
	periodStart, periodEnd time.Time,
	opts AggregateOptions,
) (timesheet.Totals, []timesheet.Anomaly) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	threshold := opts.OvertimeThresholdMinutes
	if threshold <= 0 {
		threshold = DefaultOvertimeThresholdMinutes
	}

	windowStart := time.Date(periodStart.Year(), periodStart.Month(), periodStart.Day(), 0, 0, 0, 0, loc)
	windowEnd := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	firstDay := periodStart.Format("2006-01-02")
	lastDay := periodEnd.Format("2006-01-02")

	workedByDay := make(map[string]int)
	breakByDay := make(map[string]int)
	var anomalies []timesheet.Anomaly

	state := stateNotStarted
	var cur openSession

	settle := func(outAt time.Time) {
		if cur.breakOpenAt != nil {
			if outAt.After(*cur.breakOpenAt) {
				cur.breakMinutes += int(outAt.Sub(*cur.breakOpenAt) / time.Minute)
			}
			cur.breakOpenAt = nil
		}
		worked := int(outAt.Sub(cur.inAt)/time.Minute) - cur.breakMinutes
		if worked < 0 {
			worked = 0
		}
		day := cur.inAt.In(loc).Format("2006-01-02")
		if day >= firstDay && day <= lastDay {
			workedByDay[day] += worked
			breakByDay[day] += cur.breakMinutes
		}
		cur = openSession{}
	}

	var prevAt time.Time
	for _, ev := range events {
		if !prevAt.IsZero() && ev.OccurredAt.Before(prevAt) {
			anomalies = append(anomalies, timesheet.Anomaly{
				Code:   timesheet.AnomalyOutOfOrder,
				At:     ev.OccurredAt,
				Kind:   string(ev.Kind),
				Detail: fmt.Sprintf("%s at %s precedes previous event at %s", ev.Kind, ev.OccurredAt.Format(time.RFC3339), prevAt.Format(time.RFC3339)),
			})
			continue
		}

		valid := false
		switch ev.Kind {
		case punch.KindClockIn:
			if state == stateNotStarted || state == stateClockedOut {
				cur = openSession{inAt: ev.OccurredAt}
				state = stateClockedIn
				valid = true
			}
		case punch.KindBreakStart:
			if state == stateClockedIn {
				at := ev.OccurredAt
				cur.breakOpenAt = &at
				state = stateOnBreak
				valid = true
			}
		case punch.KindBreakEnd:
			if state == stateOnBreak {
				if ev.OccurredAt.After(*cur.breakOpenAt) {
					cur.breakMinutes += int(ev.OccurredAt.Sub(*cur.breakOpenAt) / time.Minute)
				}
				cur.breakOpenAt = nil
				state = stateClockedIn
				valid = true
			}
		case punch.KindClockOut:
			if state == stateClockedIn || state == stateOnBreak {
				settle(ev.OccurredAt)
				state = stateClockedOut
				valid = true
			}
		}

		if !valid {
			anomalies = append(anomalies, timesheet.Anomaly{
				Code:   timesheet.AnomalyInvalidTransition,
				At:     ev.OccurredAt,
				Kind:   string(ev.Kind),
				Detail: fmt.Sprintf("%s while %s", ev.Kind, state),
			})
			continue
		}
		prevAt = ev.OccurredAt
	}

	// Trailing open session: clip at the period end, or at the evaluation
	// time when the period is still running.
	if state == stateClockedIn || state == stateOnBreak {
		clipAt := windowEnd
		code := timesheet.AnomalyUnterminatedSession
		detail := "session open past period end; clipped at period boundary"
		if !opts.EvaluatedAt.IsZero() && opts.EvaluatedAt.Before(windowEnd) {
			clipAt = opts.EvaluatedAt
			code = timesheet.AnomalySessionOpen
			detail = "session still open; clipped at evaluation time"
		}
		inAt := cur.inAt
		if clipAt.After(cur.inAt) {
			settle(clipAt)
		}
		anomalies = append(anomalies, timesheet.Anomaly{
			Code:   code,
			At:     inAt,
			Kind:   string(punch.KindClockIn),
			Detail: detail,
		})
	}

	var totals timesheet.Totals
	for _, worked := range workedByDay {
		if worked <= 0 {
			continue
		}
		regular := worked
		if regular > threshold {
			regular = threshold
		}
		totals.RegularMinutes += regular
		totals.OvertimeMinutes += worked - regular
		totals.DaysWorked++
	}
	for _, b := range breakByDay {
		totals.BreakMinutes += b
	}

	for _, s := range shifts {
		if !s.Published() {
			continue
		}
		start := s.StartsAt
		if start.Before(windowStart) {
			start = windowStart
		}
		end := s.EndsAt
		if end.After(windowEnd) {
			end = windowEnd
		}
		if end.After(start) {
			totals.PlannedMinutes += int(end.Sub(start) / time.Minute)
		}
	}

	totals.VarianceMinutes = (totals.RegularMinutes + totals.OvertimeMinutes) - totals.PlannedMinutes

	return totals, anomalies
}
