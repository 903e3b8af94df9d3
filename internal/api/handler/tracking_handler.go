package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/dto"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/service"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/response"
)

// TrackingHandler checkpoint tracking endpoints
type TrackingHandler struct {
	svc service.TrackingService
}

// NewTrackingHandler creates a TrackingHandler.
func NewTrackingHandler(svc service.TrackingService) *TrackingHandler {
	return &TrackingHandler{svc: svc}
}

// GetTracking month-grouped checkpoints with stats
// GET /api/v1/assignments/:id/tracking
func (h *TrackingHandler) GetTracking(c *gin.Context) {
	result, err := h.svc.GetTracking(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// GetStats
// GET /api/v1/assignments/:id/stats
func (h *TrackingHandler) GetStats(c *gin.Context) {
	st, err := h.svc.GetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, service.ToStatsResponse(*st))
}

// Sweep marks overdue checkpoints as of a date, today by default. Future dates are rejected.
// POST /api/v1/tracking/sweep
func (h *TrackingHandler) Sweep(c *gin.Context) {
	var req dto.SweepRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "invalid request parameters")
			return
		}
	}

	today := h.svc.Today()
	asOf := today
	if req.AsOf != "" {
		d, err := time.Parse(dto.DateLayout, req.AsOf)
		if err != nil {
			response.BadRequest(c, 23002, "as_of must be YYYY-MM-DD")
			return
		}
		// overdue entries never return to pending
		if d.After(today) {
			response.BadRequest(c, 23002, "as_of must not be later than today")
			return
		}
		asOf = d
	}

	n, err := h.svc.MarkOverdue(c.Request.Context(), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, dto.SweepResponse{AsOf: asOf.Format(dto.DateLayout), Affected: n})
}
