package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository groups every repository behind one handle.
type Repository struct {
	PlantAssignment PlantAssignmentRepository
	ScheduleEntry   ScheduleEntryRepository
	PlantPhoto      PlantPhotoRepository
	Tx              Transactor
}

// Transactor runs fn with a Repository bound to a single database transaction.
// fn returning an error rolls the transaction back.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *Repository) error) error
}

// NewRepository builds the gorm-backed Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		PlantAssignment: NewPlantAssignmentRepo(db),
		ScheduleEntry:   NewScheduleEntryRepo(db),
		PlantPhoto:      NewPlantPhotoRepo(db),
		Tx:              &gormTransactor{db: db},
	}
}

type gormTransactor struct {
	db *gorm.DB
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
