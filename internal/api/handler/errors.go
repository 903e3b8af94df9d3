package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/service"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/tracking"
	pkgerrors "github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/errors"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/response"
)

// handleServiceError maps service errors to response codes.
// 21xxx assignments, 22xxx photos, 23xxx tracking.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 21001, "assignment not found")
	case errors.Is(err, service.ErrInvalidAssignedDate):
		response.BadRequest(c, 21002, "assigned_date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrAssignmentExists):
		response.Conflict(c, 21003, "plant already assigned to this child")
	case errors.Is(err, service.ErrAssignmentNotActive):
		response.Conflict(c, 21004, "assignment is no longer active")
	case errors.Is(err, tracking.ErrDuplicateSchedule):
		response.Conflict(c, 21005, "schedule already generated")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 21006, "assignment was modified concurrently, retry")
	case errors.Is(err, service.ErrPhotoNotFound):
		response.NotFound(c, 22001, "photo not found")
	case errors.Is(err, service.ErrPhotoAlreadyLinked):
		response.Conflict(c, 22002, "photo already completes a checkpoint")
	case errors.Is(err, tracking.ErrNotFound):
		response.NotFound(c, 23001, "no pending checkpoint")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
