package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/repository"
)

// Service groups every service behind one handle.
type Service struct {
	Tracking   TrackingService
	Assignment AssignmentService
	Photo      PhotoService
}

// NewService wires the services. loc decides which calendar day "today" is.
func NewService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) *Service {
	tracking := NewTrackingService(repo, loc, logger)
	return &Service{
		Tracking:   tracking,
		Assignment: NewAssignmentService(repo, logger),
		Photo:      NewPhotoService(repo, tracking, logger),
	}
}
