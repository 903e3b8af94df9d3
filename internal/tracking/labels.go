package tracking

import (
	"fmt"
	"sort"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
)

// WeekLabel is the display name of a checkpoint.
// Month 1 keeps "Week N"; months 2 and 3 count their two bi-weekly photos.
func WeekLabel(weekNumber, monthNumber int) string {
	if monthNumber <= 1 {
		return fmt.Sprintf("Week %d", weekNumber)
	}
	n := (weekNumber - 4*(monthNumber-1)) / 2
	return fmt.Sprintf("Bi-weekly Photo %d", n)
}

// MonthTitle is the heading of a month bucket.
func MonthTitle(monthNumber int) string {
	return fmt.Sprintf("Month %d", monthNumber)
}

// LabeledEntry an entry with its display label.
type LabeledEntry struct {
	Label string
	Entry model.ScheduleEntry
}

// MonthGroup entries of one tracking month.
type MonthGroup struct {
	MonthNumber int
	Title       string
	Entries     []LabeledEntry
}

// GroupByMonth buckets entries by month, each bucket in week order.
// Months without entries are omitted.
func GroupByMonth(entries []model.ScheduleEntry) []MonthGroup {
	sorted := make([]model.ScheduleEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MonthNumber != sorted[j].MonthNumber {
			return sorted[i].MonthNumber < sorted[j].MonthNumber
		}
		return sorted[i].WeekNumber < sorted[j].WeekNumber
	})

	var groups []MonthGroup
	for _, e := range sorted {
		if len(groups) == 0 || groups[len(groups)-1].MonthNumber != e.MonthNumber {
			groups = append(groups, MonthGroup{MonthNumber: e.MonthNumber, Title: MonthTitle(e.MonthNumber)})
		}
		g := &groups[len(groups)-1]
		g.Entries = append(g.Entries, LabeledEntry{
			Label: WeekLabel(e.WeekNumber, e.MonthNumber),
			Entry: e,
		})
	}
	return groups
}
