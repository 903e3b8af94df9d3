package dto

// ── plant assignment DTOs ──

// CreateAssignmentRequest create an assignment and its tracking schedule
type CreateAssignmentRequest struct {
	MotherID     string `json:"mother_id"     binding:"required,uuid"`
	ChildID      string `json:"child_id"      binding:"required,uuid"`
	PlantID      string `json:"plant_id"      binding:"required,uuid"`
	AssignedDate string `json:"assigned_date" binding:"required"` // YYYY-MM-DD
}

// UpdateAssignmentStatusRequest change assignment status
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active replaced completed"`
}

// AssignmentListRequest assignments of one mother
type AssignmentListRequest struct {
	MotherID string `form:"mother_id" binding:"required,uuid"`
	PaginationRequest
}

// ── responses ──

// AssignmentResponse assignment with optional schedule
type AssignmentResponse struct {
	ID           string                  `json:"id"`
	MotherID     string                  `json:"mother_id"`
	ChildID      string                  `json:"child_id"`
	PlantID      string                  `json:"plant_id"`
	AssignedDate string                  `json:"assigned_date"`
	Status       string                  `json:"status"`
	Schedule     []ScheduleEntryResponse `json:"schedule,omitempty"`
	CreatedAt    string                  `json:"created_at"`
	UpdatedAt    string                  `json:"updated_at"`
}
