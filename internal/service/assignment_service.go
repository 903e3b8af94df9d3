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

// ── assignment errors ──

var (
	ErrInvalidAssignedDate = errors.New("assigned_date must be a YYYY-MM-DD date")
	ErrAssignmentExists    = errors.New("plant is already assigned to this child")
	ErrAssignmentNotActive = errors.New("assignment is no longer active")
)

// AssignmentService plant assignment operations
type AssignmentService interface {
	// Create stores the assignment and generates its schedule atomically.
	Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	ListByMother(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error)
	// UpdateStatus moves an active assignment to replaced or completed.
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateAssignmentStatusRequest, callerID string) (*dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Create
// ════════════════════════════════════════════════════════════

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignedDate, err := time.Parse(dto.DateLayout, req.AssignedDate)
	if err != nil {
		return nil, ErrInvalidAssignedDate
	}

	assignment := &model.PlantAssignment{
		MotherID:     req.MotherID,
		ChildID:      req.ChildID,
		PlantID:      req.PlantID,
		AssignedDate: tracking.DateOnly(assignedDate),
		Status:       model.AssignmentActive,
	}
	assignment.CreatedBy = &callerID
	assignment.UpdatedBy = &callerID

	var entries []model.ScheduleEntry
	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.PlantAssignment.Create(ctx, assignment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAssignmentExists
			}
			return err
		}
		var err error
		entries, err = generateSchedule(ctx, tx, assignment.AssignmentID, assignment.AssignedDate)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrAssignmentExists) {
			s.logger.Error("create assignment failed", zap.String("child_id", req.ChildID), zap.Error(err))
		}
		return nil, err
	}

	metrics.SchedulesGenerated.Inc()
	s.logger.Info("assignment created",
		zap.String("assignment_id", assignment.AssignmentID),
		zap.String("assigned_date", req.AssignedDate),
		zap.String("operator", callerID),
	)

	resp := toAssignmentResponse(assignment, entries)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Get / ListByMother
// ════════════════════════════════════════════════════════════

func (s *assignmentService) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ScheduleEntry.ListByAssignment(ctx, id)
	if err != nil {
		s.logger.Error("list schedule entries failed", zap.String("assignment_id", id), zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(assignment, entries)
	return &resp, nil
}

func (s *assignmentService) ListByMother(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error) {
	assignments, total, err := s.repo.PlantAssignment.ListByMother(ctx, req.MotherID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("mother_id", req.MotherID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, toAssignmentResponse(&assignments[i], nil))
	}
	return result, total, nil
}

// ════════════════════════════════════════════════════════════
// UpdateStatus
// ════════════════════════════════════════════════════════════

func (s *assignmentService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateAssignmentStatusRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	if assignment.Status != req.Status {
		if assignment.Status != model.AssignmentActive {
			return nil, ErrAssignmentNotActive
		}
		assignment.Status = req.Status
		assignment.UpdatedBy = &callerID
		if err := s.repo.PlantAssignment.UpdateStatus(ctx, assignment); err != nil {
			s.logger.Error("update assignment status failed", zap.String("assignment_id", id), zap.Error(err))
			return nil, err
		}
		s.logger.Info("assignment status changed",
			zap.String("assignment_id", id),
			zap.String("status", req.Status),
			zap.String("operator", callerID),
		)
	}

	resp := toAssignmentResponse(assignment, nil)
	return &resp, nil
}

func (s *assignmentService) getAssignment(ctx context.Context, id string) (*model.PlantAssignment, error) {
	assignment, err := s.repo.PlantAssignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("get assignment failed", zap.String("assignment_id", id), zap.Error(err))
		return nil, err
	}
	return assignment, nil
}
