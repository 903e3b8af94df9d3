package errors

import "errors"

// ErrOptimisticLock a conditional update matched no row: the record changed underneath the caller.
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")
