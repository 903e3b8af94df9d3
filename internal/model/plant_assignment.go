package model

import "time"

// Assignment status values
const (
	AssignmentActive    = "active"
	AssignmentReplaced  = "replaced"
	AssignmentCompleted = "completed"
)

// PlantAssignment one plant handed to one child/mother (plant_assignments)
type PlantAssignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	MotherID     string    `gorm:"type:uuid;not null"                             json:"mother_id"`
	ChildID      string    `gorm:"type:uuid;not null"                             json:"child_id"`
	PlantID      string    `gorm:"type:uuid;not null"                             json:"plant_id"`
	AssignedDate time.Time `gorm:"type:date;not null"                             json:"assigned_date"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | replaced | completed
	VersionedModel

	Entries []ScheduleEntry `gorm:"foreignKey:AssignmentID" json:"entries,omitempty"`
}

func (PlantAssignment) TableName() string { return "plant_assignments" }
