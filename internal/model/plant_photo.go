package model

import "time"

// PlantPhoto metadata of an uploaded growth photo (plant_photos).
// The file itself lives in external storage; FilePath is a reference.
type PlantPhoto struct {
	PhotoID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"photo_id"`
	AssignmentID string    `gorm:"type:uuid;not null"                             json:"assignment_id"`
	FilePath     string    `gorm:"type:varchar(500);not null"                     json:"file_path"`
	Caption      string    `gorm:"type:varchar(500);not null;default:''"          json:"caption"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	UploadedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"uploaded_at"`
	BaseModel
}

func (PlantPhoto) TableName() string { return "plant_photos" }
