package services

import (
	"time"

	"github.com/barron/scheduler/pkg/application/dto"
)

// ClockLayout is the wall-clock format used on the wire.
const ClockLayout = "2006-01-02 15:04"

// Calendar projects schedule hours onto wall-clock time. The engine plans in
// abstract hours from a zero origin; the calendar decides what those hours
// mean: either a continuous 24/7 clock or a working-day window.
type Calendar struct {
	Start        time.Time
	HoursPerDay  float64 // 0 or >= 24 fills each work day
	DayStartHour int
	WorkDays     map[time.Weekday]bool // empty means every day works
}

// ContinuousCalendar runs around the clock from the given start.
func ContinuousCalendar(start time.Time) Calendar {
	return Calendar{Start: start}
}

// continuous is true only when nothing interrupts the clock: full days and
// no work-day restriction. A 24h/day plant closed on weekends still needs
// the day walk.
func (c Calendar) continuous() bool {
	return (c.HoursPerDay <= 0 || c.HoursPerDay >= 24) && len(c.WorkDays) == 0
}

func (c Calendar) workDay(d time.Weekday) bool {
	if len(c.WorkDays) == 0 {
		return true
	}
	return c.WorkDays[d]
}

// At converts an elapsed schedule hour into wall-clock time, walking day by
// day and skipping non-working days and off-shift hours.
func (c Calendar) At(elapsedHours float64) time.Time {
	if c.continuous() {
		return c.Start.Add(hoursToDuration(elapsedHours))
	}

	cursor := c.Start
	remaining := elapsedHours
	for {
		if !c.workDay(cursor.Weekday()) {
			cursor = nextMidnight(cursor)
			continue
		}
		shiftStart := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), c.DayStartHour, 0, 0, 0, cursor.Location())
		if cursor.Before(shiftStart) {
			cursor = shiftStart
		}
		shiftEnd := shiftStart.Add(hoursToDuration(c.HoursPerDay))
		// A shift never crosses midnight; the next day decides for itself
		// whether it works.
		if midnight := nextMidnight(cursor); shiftEnd.After(midnight) {
			shiftEnd = midnight
		}
		available := shiftEnd.Sub(cursor).Hours()
		if available <= 0 {
			cursor = nextMidnight(cursor)
			continue
		}
		if remaining <= available {
			return cursor.Add(hoursToDuration(remaining))
		}
		remaining -= available
		cursor = nextMidnight(cursor)
	}
}

// Annotate fills the wall-clock fields of every schedule item, both in the
// flat sequence and in the per-machine grouping.
func (c Calendar) Annotate(result *dto.ScheduleResult) {
	if result == nil || c.Start.IsZero() {
		return
	}
	for i := range result.Schedule {
		result.Schedule[i].StartClock = c.At(result.Schedule[i].Start).Format(ClockLayout)
		result.Schedule[i].EndClock = c.At(result.Schedule[i].End).Format(ClockLayout)
	}
	for machine := range result.ByMachine {
		items := result.ByMachine[machine]
		for i := range items {
			items[i].StartClock = c.At(items[i].Start).Format(ClockLayout)
			items[i].EndClock = c.At(items[i].End).Format(ClockLayout)
		}
	}
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

func nextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
