package dto

import "time"

// ── tracking DTOs ──

// UploadPhotoRequest metadata of a photo already stored by the upload service
type UploadPhotoRequest struct {
	FilePath   string     `json:"file_path"   binding:"required,max=500"`
	Caption    string     `json:"caption"     binding:"max=500"`
	Latitude   *float64   `json:"latitude"    binding:"omitempty,min=-90,max=90"`
	Longitude  *float64   `json:"longitude"   binding:"omitempty,min=-180,max=180"`
	UploadedAt *time.Time `json:"uploaded_at"`
}

// SweepRequest on-demand overdue sweep
type SweepRequest struct {
	AsOf string `json:"as_of"` // YYYY-MM-DD, defaults to today
}

// ── responses ──

// ScheduleEntryResponse one checkpoint
type ScheduleEntryResponse struct {
	ID            string  `json:"id"`
	WeekNumber    int     `json:"week_number"`
	MonthNumber   int     `json:"month_number"`
	Label         string  `json:"label"`
	DueDate       string  `json:"due_date"`
	UploadStatus  string  `json:"upload_status"`
	PhotoID       *string `json:"photo_id,omitempty"`
	CompletedDate *string `json:"completed_date,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
}

// StatsResponse checkpoint statistics
type StatsResponse struct {
	Total                int     `json:"total"`
	Completed            int     `json:"completed"`
	Pending              int     `json:"pending"`
	Overdue              int     `json:"overdue"`
	CompletionPercentage int     `json:"completion_percentage"`
	NextDueDate          *string `json:"next_due_date"`
	DaysRemaining        *int    `json:"days_remaining"`
}

// MonthResponse checkpoints of one tracking month
type MonthResponse struct {
	MonthNumber int                     `json:"month_number"`
	Title       string                  `json:"title"`
	Entries     []ScheduleEntryResponse `json:"entries"`
}

// TrackingResponse mother-facing tracking view
type TrackingResponse struct {
	AssignmentID string          `json:"assignment_id"`
	AssignedDate string          `json:"assigned_date"`
	Status       string          `json:"status"`
	Stats        StatsResponse   `json:"stats"`
	Months       []MonthResponse `json:"months"`
}

// PhotoResponse photo metadata
type PhotoResponse struct {
	ID           string   `json:"id"`
	AssignmentID string   `json:"assignment_id"`
	FilePath     string   `json:"file_path"`
	Caption      string   `json:"caption,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	UploadedAt   string   `json:"uploaded_at"`
}

// PhotoUploadResponse result of a photo upload. Extra is set when no
// pending checkpoint was left for the photo to complete.
type PhotoUploadResponse struct {
	Photo PhotoResponse          `json:"photo"`
	Entry *ScheduleEntryResponse `json:"entry,omitempty"`
	Extra bool                   `json:"extra"`
}

// SweepResponse overdue sweep result
type SweepResponse struct {
	AsOf     string `json:"as_of"`
	Affected int64  `json:"affected"`
}
