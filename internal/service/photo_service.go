package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/dto"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/metrics"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/repository"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/tracking"
)

// ── photo errors ──

var ErrPhotoNotFound = errors.New("photo not found")

// PhotoService registers growth photos and credits them to checkpoints.
type PhotoService interface {
	// Upload saves the photo metadata, then links it to the next pending checkpoint.
	// The linkage is best-effort: the photo stays saved when no checkpoint is left.
	Upload(ctx context.Context, assignmentID string, req *dto.UploadPhotoRequest, callerID string) (*dto.PhotoUploadResponse, error)
	Get(ctx context.Context, photoID string) (*dto.PhotoResponse, error)
	List(ctx context.Context, assignmentID string) ([]dto.PhotoResponse, error)
}

type photoService struct {
	repo     *repository.Repository
	tracking TrackingService
	logger   *zap.Logger
	now      func() time.Time
}

// NewPhotoService creates a PhotoService.
func NewPhotoService(repo *repository.Repository, tracking TrackingService, logger *zap.Logger) PhotoService {
	return &photoService{repo: repo, tracking: tracking, logger: logger, now: time.Now}
}

// ════════════════════════════════════════════════════════════
// Upload
// ════════════════════════════════════════════════════════════

func (s *photoService) Upload(ctx context.Context, assignmentID string, req *dto.UploadPhotoRequest, callerID string) (*dto.PhotoUploadResponse, error) {
	assignment, err := s.repo.PlantAssignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("get assignment failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}
	if assignment.Status == model.AssignmentReplaced {
		return nil, ErrAssignmentNotActive
	}

	uploadedAt := s.now()
	if req.UploadedAt != nil {
		uploadedAt = *req.UploadedAt
	}

	photo := &model.PlantPhoto{
		AssignmentID: assignmentID,
		FilePath:     req.FilePath,
		Caption:      req.Caption,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		UploadedAt:   uploadedAt,
	}
	photo.CreatedBy = &callerID
	photo.UpdatedBy = &callerID

	if err := s.repo.PlantPhoto.Create(ctx, photo); err != nil {
		s.logger.Error("save photo failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	resp := &dto.PhotoUploadResponse{Photo: toPhotoResponse(photo)}

	entry, err := s.tracking.CompleteNextPending(ctx, assignmentID, photo.PhotoID, photo.UploadedAt, photo.Caption)
	switch {
	case err == nil:
		er := toEntryResponse(entry)
		resp.Entry = &er
		s.completeIfFinished(ctx, assignment, callerID)
	case errors.Is(err, tracking.ErrNotFound):
		resp.Extra = true
		metrics.ExtraPhotos.Inc()
		s.logger.Warn("no pending checkpoint for photo",
			zap.String("assignment_id", assignmentID),
			zap.String("photo_id", photo.PhotoID),
		)
	default:
		// the photo row stays; only the checkpoint link is lost
		s.logger.Warn("photo saved without checkpoint link",
			zap.String("assignment_id", assignmentID),
			zap.String("photo_id", photo.PhotoID),
			zap.Error(err),
		)
	}

	return resp, nil
}

// completeIfFinished closes an active assignment once every checkpoint is completed.
func (s *photoService) completeIfFinished(ctx context.Context, assignment *model.PlantAssignment, callerID string) {
	if assignment.Status != model.AssignmentActive {
		return
	}

	st, err := s.tracking.GetStats(ctx, assignment.AssignmentID)
	if err != nil {
		s.logger.Warn("auto-complete check failed", zap.String("assignment_id", assignment.AssignmentID), zap.Error(err))
		return
	}
	if st.Total == 0 || st.Completed != st.Total {
		return
	}

	assignment.Status = model.AssignmentCompleted
	assignment.UpdatedBy = &callerID
	if err := s.repo.PlantAssignment.UpdateStatus(ctx, assignment); err != nil {
		s.logger.Warn("auto-complete assignment failed", zap.String("assignment_id", assignment.AssignmentID), zap.Error(err))
		return
	}
	s.logger.Info("assignment completed", zap.String("assignment_id", assignment.AssignmentID))
}

// ════════════════════════════════════════════════════════════
// Get / List
// ════════════════════════════════════════════════════════════

func (s *photoService) Get(ctx context.Context, photoID string) (*dto.PhotoResponse, error) {
	photo, err := s.repo.PlantPhoto.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		s.logger.Error("get photo failed", zap.String("photo_id", photoID), zap.Error(err))
		return nil, err
	}
	resp := toPhotoResponse(photo)
	return &resp, nil
}

func (s *photoService) List(ctx context.Context, assignmentID string) ([]dto.PhotoResponse, error) {
	if _, err := s.repo.PlantAssignment.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	photos, err := s.repo.PlantPhoto.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("list photos failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		result = append(result, toPhotoResponse(&photos[i]))
	}
	return result, nil
}
