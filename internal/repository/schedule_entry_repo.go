package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
	pkgerrors "github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/errors"
)

// ScheduleEntryRepository checkpoint data access
type ScheduleEntryRepository interface {
	// BatchCreate inserts a whole schedule in one statement.
	BatchCreate(ctx context.Context, entries []model.ScheduleEntry) error
	CountByAssignment(ctx context.Context, assignmentID string) (int64, error)
	// ListByAssignment returns every entry ordered by week number.
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.ScheduleEntry, error)
	// ClaimNextPending row-locks the earliest-due pending entry. Rows locked by
	// concurrent claims are skipped. Must run inside a transaction.
	ClaimNextPending(ctx context.Context, assignmentID string) (*model.ScheduleEntry, error)
	// Complete moves a pending entry to completed; ErrOptimisticLock if it is no longer pending.
	Complete(ctx context.Context, entry *model.ScheduleEntry) error
	// MarkOverdueBefore flips every pending entry due before asOf to overdue.
	MarkOverdueBefore(ctx context.Context, asOf time.Time) (int64, error)
	GetByPhotoID(ctx context.Context, photoID string) (*model.ScheduleEntry, error)
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) BatchCreate(ctx context.Context, entries []model.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *scheduleEntryRepo) CountByAssignment(ctx context.Context, assignmentID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ScheduleEntry{}).
		Where("assignment_id = ?", assignmentID).
		Count(&n).Error
	return n, err
}

func (r *scheduleEntryRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("week_number ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ClaimNextPending(ctx context.Context, assignmentID string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("assignment_id = ? AND upload_status = ?", assignmentID, model.UploadPending).
		Order("due_date ASC, week_number ASC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleEntryRepo) Complete(ctx context.Context, entry *model.ScheduleEntry) error {
	result := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("entry_id = ? AND upload_status = ?", entry.EntryID, model.UploadPending).
		Updates(map[string]interface{}{
			"upload_status":  model.UploadCompleted,
			"photo_id":       entry.PhotoID,
			"completed_date": entry.CompletedDate,
			"remarks":        entry.Remarks,
			"updated_by":     entry.UpdatedBy,
			"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	entry.UploadStatus = model.UploadCompleted
	return nil
}

func (r *scheduleEntryRepo) MarkOverdueBefore(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("upload_status = ? AND due_date < ?", model.UploadPending, asOf.Format("2006-01-02")).
		Updates(map[string]interface{}{
			"upload_status": model.UploadOverdue,
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		})
	return result.RowsAffected, result.Error
}

func (r *scheduleEntryRepo) GetByPhotoID(ctx context.Context, photoID string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
