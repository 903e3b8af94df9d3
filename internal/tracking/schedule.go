package tracking

import (
	"time"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
)

// EntriesPerAssignment is the fixed size of every generated schedule.
const EntriesPerAssignment = 8

// Checkpoint is one slot of the cadence, relative to the assigned date.
type Checkpoint struct {
	WeekNumber  int
	MonthNumber int
	OffsetDays  int
}

// Cadence returns the eight checkpoints in week order.
func Cadence() []Checkpoint {
	cps := make([]Checkpoint, 0, EntriesPerAssignment)

	// month 1: weekly
	for week := 1; week <= 4; week++ {
		cps = append(cps, Checkpoint{WeekNumber: week, MonthNumber: 1, OffsetDays: 7 * week})
	}
	// month 2: bi-weekly after day 28
	for i := 1; i <= 2; i++ {
		cps = append(cps, Checkpoint{WeekNumber: 4 + 2*i, MonthNumber: 2, OffsetDays: 28 + 14*i})
	}
	// month 3: bi-weekly after day 56
	for i := 1; i <= 2; i++ {
		cps = append(cps, Checkpoint{WeekNumber: 8 + 2*i, MonthNumber: 3, OffsetDays: 56 + 14*i})
	}

	return cps
}

// BuildSchedule constructs the pending entries for an assignment. It does not persist anything.
func BuildSchedule(assignmentID string, assignedDate time.Time) []model.ScheduleEntry {
	anchor := DateOnly(assignedDate)
	cadence := Cadence()

	entries := make([]model.ScheduleEntry, 0, len(cadence))
	for _, cp := range cadence {
		entries = append(entries, model.ScheduleEntry{
			AssignmentID: assignmentID,
			WeekNumber:   cp.WeekNumber,
			MonthNumber:  cp.MonthNumber,
			DueDate:      anchor.AddDate(0, 0, cp.OffsetDays),
			UploadStatus: model.UploadPending,
		})
	}
	return entries
}

// DateOnly drops the clock part, keeping the calendar date t has in its own location.
// The result is midnight UTC so that date columns round-trip unchanged.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOnly(now.In(loc))
}
