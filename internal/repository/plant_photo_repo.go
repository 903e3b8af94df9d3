package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
)

// PlantPhotoRepository photo metadata data access
type PlantPhotoRepository interface {
	Create(ctx context.Context, photo *model.PlantPhoto) error
	GetByID(ctx context.Context, id string) (*model.PlantPhoto, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.PlantPhoto, error)
}

type plantPhotoRepo struct {
	db *gorm.DB
}

func NewPlantPhotoRepo(db *gorm.DB) PlantPhotoRepository {
	return &plantPhotoRepo{db: db}
}

func (r *plantPhotoRepo) Create(ctx context.Context, photo *model.PlantPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *plantPhotoRepo) GetByID(ctx context.Context, id string) (*model.PlantPhoto, error) {
	var photo model.PlantPhoto
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", id).
		First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *plantPhotoRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.PlantPhoto, error) {
	var photos []model.PlantPhoto
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("uploaded_at ASC").
		Find(&photos).Error
	return photos, err
}
