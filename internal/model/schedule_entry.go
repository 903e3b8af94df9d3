package model

import "time"

// Upload status values
const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
	UploadOverdue   = "overdue"
)

// ScheduleEntry one expected photo checkpoint (schedule_entries)
type ScheduleEntry struct {
	EntryID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	AssignmentID  string     `gorm:"type:uuid;not null"                             json:"assignment_id"`
	WeekNumber    int        `gorm:"type:smallint;not null"                         json:"week_number"`  // 1,2,3,4,6,8,10,12
	MonthNumber   int        `gorm:"type:smallint;not null"                         json:"month_number"` // 1..3
	DueDate       time.Time  `gorm:"type:date;not null"                             json:"due_date"`
	UploadStatus  string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"upload_status"` // pending | completed | overdue
	PhotoID       *string    `gorm:"type:uuid"                                      json:"photo_id,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Remarks       string     `gorm:"type:text;not null;default:''"                  json:"remarks"`
	BaseModel
}

func (ScheduleEntry) TableName() string { return "schedule_entries" }
