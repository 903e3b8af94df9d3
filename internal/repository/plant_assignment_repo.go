package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
	pkgerrors "github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/errors"
)

// PlantAssignmentRepository plant assignment data access
type PlantAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.PlantAssignment) error
	GetByID(ctx context.Context, id string) (*model.PlantAssignment, error)
	ListByMother(ctx context.Context, motherID string, offset, limit int) ([]model.PlantAssignment, int64, error)
	UpdateStatus(ctx context.Context, assignment *model.PlantAssignment) error
}

type plantAssignmentRepo struct {
	db *gorm.DB
}

func NewPlantAssignmentRepo(db *gorm.DB) PlantAssignmentRepository {
	return &plantAssignmentRepo{db: db}
}

func (r *plantAssignmentRepo) Create(ctx context.Context, assignment *model.PlantAssignment) error {
	return r.db.WithContext(ctx).Omit("Entries").Create(assignment).Error
}

func (r *plantAssignmentRepo) GetByID(ctx context.Context, id string) (*model.PlantAssignment, error) {
	var assignment model.PlantAssignment
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *plantAssignmentRepo) ListByMother(ctx context.Context, motherID string, offset, limit int) ([]model.PlantAssignment, int64, error) {
	var assignments []model.PlantAssignment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.PlantAssignment{}).
		Where("mother_id = ?", motherID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("assigned_date DESC, created_at DESC").
		Find(&assignments).Error
	return assignments, total, err
}

// UpdateStatus writes the status guarded by the row version.
func (r *plantAssignmentRepo) UpdateStatus(ctx context.Context, assignment *model.PlantAssignment) error {
	oldVersion := assignment.Version
	result := r.db.WithContext(ctx).
		Model(&model.PlantAssignment{}).
		Where("assignment_id = ? AND version = ?", assignment.AssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"status":     assignment.Status,
			"updated_by": assignment.UpdatedBy,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	assignment.Version = oldVersion + 1
	return nil
}
