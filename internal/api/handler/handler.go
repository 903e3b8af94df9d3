package handler

import (
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/service"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/jwt"
)

// Handler groups every HTTP handler.
type Handler struct {
	Assignment *AssignmentHandler
	Photo      *PhotoHandler
	Tracking   *TrackingHandler
	Auth       *AuthHandler
}

// NewHandler builds the handlers over svc. revoker may be nil.
func NewHandler(svc *service.Service, jwtMgr *jwt.Manager, revoker Revoker) *Handler {
	return &Handler{
		Assignment: NewAssignmentHandler(svc.Assignment),
		Photo:      NewPhotoHandler(svc.Photo),
		Tracking:   NewTrackingHandler(svc.Tracking),
		Auth:       NewAuthHandler(jwtMgr, revoker),
	}
}
