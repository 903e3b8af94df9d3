package tracking

import (
	"time"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
)

// Stats checkpoint counts for one assignment.
type Stats struct {
	Total         int
	Completed     int
	Pending       int
	Overdue       int
	NextDueDate   *time.Time // earliest pending due date; nil when nothing is pending
	DaysRemaining *int       // calendar days from today to NextDueDate; negative when already late
}

// ComputeStats counts entries by status. today is the local calendar date
// (see Today), not a raw instant. Entries are expected in week order.
func ComputeStats(entries []model.ScheduleEntry, today time.Time) Stats {
	var st Stats
	st.Total = len(entries)

	for i := range entries {
		e := &entries[i]
		switch e.UploadStatus {
		case model.UploadCompleted:
			st.Completed++
		case model.UploadOverdue:
			st.Overdue++
		case model.UploadPending:
			st.Pending++
			if st.NextDueDate == nil || e.DueDate.Before(*st.NextDueDate) {
				due := e.DueDate
				st.NextDueDate = &due
			}
		}
	}

	if st.NextDueDate != nil {
		days := DaysUntil(*st.NextDueDate, today)
		st.DaysRemaining = &days
	}
	return st
}

// DaysUntil counts calendar days from today to due. Both are reduced to their
// dates first, so the clock part of either argument never shifts the result.
func DaysUntil(due, today time.Time) int {
	return int(DateOnly(due).Sub(DateOnly(today)) / (24 * time.Hour))
}

// CompletionPercentage is round-half-up(100 * completed / total), 0 for an empty schedule.
func CompletionPercentage(st Stats) int {
	if st.Total <= 0 {
		return 0
	}
	pct := (200*st.Completed + st.Total) / (2 * st.Total)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
