package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/dto"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/service"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/response"
)

// AssignmentHandler plant assignment endpoints
type AssignmentHandler struct {
	svc service.AssignmentService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(svc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

// CreateAssignment creates an assignment with its checkpoint schedule
// POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// GetAssignment
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// ListAssignments assignments of one mother
// GET /api/v1/assignments?mother_id=
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	list, total, err := h.svc.ListByMother(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// UpdateAssignmentStatus
// PUT /api/v1/assignments/:id/status
func (h *AssignmentHandler) UpdateAssignmentStatus(c *gin.Context) {
	var req dto.UpdateAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
