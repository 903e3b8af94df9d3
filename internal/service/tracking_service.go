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

// ── tracking errors ──

var (
	ErrAssignmentNotFound = errors.New("plant assignment not found")
	ErrPhotoAlreadyLinked = errors.New("photo already completes another checkpoint")
)

// TrackingService drives the checkpoint schedule of plant assignments.
type TrackingService interface {
	// GenerateSchedule creates the eight checkpoints of an assignment in one transaction.
	GenerateSchedule(ctx context.Context, assignmentID string, assignedDate time.Time) ([]model.ScheduleEntry, error)
	// CompleteNextPending credits a photo to the earliest-due pending checkpoint.
	// Returns tracking.ErrNotFound when nothing is pending.
	CompleteNextPending(ctx context.Context, assignmentID, photoID string, uploadDate time.Time, remarks string) (*model.ScheduleEntry, error)
	// MarkOverdue moves every pending checkpoint due before asOf's date to overdue.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	// GetStats counts the checkpoints of an assignment.
	GetStats(ctx context.Context, assignmentID string) (*tracking.Stats, error)
	// GetTracking is the grouped, labelled view shown to mothers.
	GetTracking(ctx context.Context, assignmentID string) (*dto.TrackingResponse, error)
	// Today is the current calendar date in the tracking timezone.
	Today() time.Time
}

type trackingService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewTrackingService creates a TrackingService.
func NewTrackingService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) TrackingService {
	if loc == nil {
		loc = time.UTC
	}
	return &trackingService{repo: repo, loc: loc, logger: logger, now: time.Now}
}

func (s *trackingService) Today() time.Time {
	return tracking.Today(s.now(), s.loc)
}

// ════════════════════════════════════════════════════════════
// GenerateSchedule
// ════════════════════════════════════════════════════════════

func (s *trackingService) GenerateSchedule(ctx context.Context, assignmentID string, assignedDate time.Time) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		entries, err = generateSchedule(ctx, tx, assignmentID, assignedDate)
		return err
	})
	if err != nil {
		if !errors.Is(err, tracking.ErrDuplicateSchedule) && !errors.Is(err, ErrAssignmentNotFound) {
			s.logger.Error("generate schedule failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		}
		return nil, err
	}

	metrics.SchedulesGenerated.Inc()
	return entries, nil
}

// generateSchedule inserts the schedule through repo. Callers bind repo to their
// own transaction so the assignment and its schedule commit together.
func generateSchedule(ctx context.Context, repo *repository.Repository, assignmentID string, assignedDate time.Time) ([]model.ScheduleEntry, error) {
	n, err := repo.ScheduleEntry.CountByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, tracking.ErrDuplicateSchedule
	}

	entries := tracking.BuildSchedule(assignmentID, assignedDate)
	if err := repo.ScheduleEntry.BatchCreate(ctx, entries); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, tracking.ErrDuplicateSchedule
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return entries, nil
}

// ════════════════════════════════════════════════════════════
// CompleteNextPending
// ════════════════════════════════════════════════════════════

func (s *trackingService) CompleteNextPending(ctx context.Context, assignmentID, photoID string, uploadDate time.Time, remarks string) (*model.ScheduleEntry, error) {
	var completed *model.ScheduleEntry
	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.ScheduleEntry.GetByPhotoID(ctx, photoID); err == nil {
			return ErrPhotoAlreadyLinked
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry, err := tx.ScheduleEntry.ClaimNextPending(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tracking.ErrNotFound
			}
			return err
		}

		pid := photoID
		completedAt := uploadDate
		entry.PhotoID = &pid
		entry.CompletedDate = &completedAt
		entry.Remarks = remarks

		if err := tx.ScheduleEntry.Complete(ctx, entry); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPhotoAlreadyLinked
			}
			return err
		}
		completed = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, tracking.ErrNotFound) && !errors.Is(err, ErrPhotoAlreadyLinked) {
			s.logger.Error("complete checkpoint failed",
				zap.String("assignment_id", assignmentID),
				zap.String("photo_id", photoID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	metrics.CheckpointsCompleted.Inc()
	return completed, nil
}

// ════════════════════════════════════════════════════════════
// MarkOverdue
// ════════════════════════════════════════════════════════════

func (s *trackingService) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	day := tracking.DateOnly(asOf)
	n, err := s.repo.ScheduleEntry.MarkOverdueBefore(ctx, day)
	if err != nil {
		s.logger.Error("overdue sweep failed", zap.String("as_of", day.Format(dto.DateLayout)), zap.Error(err))
		return 0, err
	}
	if n > 0 {
		metrics.CheckpointsOverdue.Add(float64(n))
		s.logger.Info("checkpoints marked overdue", zap.String("as_of", day.Format(dto.DateLayout)), zap.Int64("count", n))
	}
	return n, nil
}

// ════════════════════════════════════════════════════════════
// GetStats / GetTracking
// ════════════════════════════════════════════════════════════

func (s *trackingService) GetStats(ctx context.Context, assignmentID string) (*tracking.Stats, error) {
	entries, err := s.repo.ScheduleEntry.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("list schedule entries failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}
	st := tracking.ComputeStats(entries, s.Today())
	return &st, nil
}

func (s *trackingService) GetTracking(ctx context.Context, assignmentID string) (*dto.TrackingResponse, error) {
	assignment, err := s.repo.PlantAssignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("get assignment failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	// statuses must be current before they are shown; a failed sweep only leaves them stale
	if _, err := s.MarkOverdue(ctx, s.Today()); err != nil {
		s.logger.Warn("serving tracking view without fresh overdue statuses", zap.String("assignment_id", assignmentID))
	}

	entries, err := s.repo.ScheduleEntry.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("list schedule entries failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	st := tracking.ComputeStats(entries, s.Today())
	return &dto.TrackingResponse{
		AssignmentID: assignment.AssignmentID,
		AssignedDate: assignment.AssignedDate.Format(dto.DateLayout),
		Status:       assignment.Status,
		Stats:        ToStatsResponse(st),
		Months:       toMonthResponses(tracking.GroupByMonth(entries)),
	}, nil
}
