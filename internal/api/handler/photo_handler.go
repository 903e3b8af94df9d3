package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/dto"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/service"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/response"
)

// PhotoHandler growth photo endpoints
type PhotoHandler struct {
	svc service.PhotoService
}

// NewPhotoHandler creates a PhotoHandler.
func NewPhotoHandler(svc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// UploadPhoto registers a stored photo and credits the next checkpoint
// POST /api/v1/assignments/:id/photos
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	var req dto.UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.Upload(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListPhotos
// GET /api/v1/assignments/:id/photos
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetPhoto
// GET /api/v1/photos/:id
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}
