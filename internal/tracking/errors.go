package tracking

import "errors"

var (
	// ErrNotFound no pending checkpoint is left to complete.
	ErrNotFound = errors.New("no pending schedule entry")
	// ErrDuplicateSchedule the assignment already has a generated schedule.
	ErrDuplicateSchedule = errors.New("schedule already generated for assignment")
)
