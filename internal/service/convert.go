package service

import (
	"time"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/dto"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/tracking"
)

func toEntryResponse(e *model.ScheduleEntry) dto.ScheduleEntryResponse {
	resp := dto.ScheduleEntryResponse{
		ID:           e.EntryID,
		WeekNumber:   e.WeekNumber,
		MonthNumber:  e.MonthNumber,
		Label:        tracking.WeekLabel(e.WeekNumber, e.MonthNumber),
		DueDate:      e.DueDate.Format(dto.DateLayout),
		UploadStatus: e.UploadStatus,
		PhotoID:      e.PhotoID,
		Remarks:      e.Remarks,
	}
	if e.CompletedDate != nil {
		s := e.CompletedDate.Format(time.RFC3339)
		resp.CompletedDate = &s
	}
	return resp
}

func toEntryResponses(entries []model.ScheduleEntry) []dto.ScheduleEntryResponse {
	result := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toEntryResponse(&entries[i]))
	}
	return result
}

func toAssignmentResponse(a *model.PlantAssignment, entries []model.ScheduleEntry) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:           a.AssignmentID,
		MotherID:     a.MotherID,
		ChildID:      a.ChildID,
		PlantID:      a.PlantID,
		AssignedDate: a.AssignedDate.Format(dto.DateLayout),
		Status:       a.Status,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if len(entries) > 0 {
		resp.Schedule = toEntryResponses(entries)
	}
	return resp
}

// ToStatsResponse renders stats with their completion percentage.
func ToStatsResponse(st tracking.Stats) dto.StatsResponse {
	resp := dto.StatsResponse{
		Total:                st.Total,
		Completed:            st.Completed,
		Pending:              st.Pending,
		Overdue:              st.Overdue,
		CompletionPercentage: tracking.CompletionPercentage(st),
		DaysRemaining:        st.DaysRemaining,
	}
	if st.NextDueDate != nil {
		s := st.NextDueDate.Format(dto.DateLayout)
		resp.NextDueDate = &s
	}
	return resp
}

func toMonthResponses(groups []tracking.MonthGroup) []dto.MonthResponse {
	result := make([]dto.MonthResponse, 0, len(groups))
	for _, g := range groups {
		m := dto.MonthResponse{
			MonthNumber: g.MonthNumber,
			Title:       g.Title,
			Entries:     make([]dto.ScheduleEntryResponse, 0, len(g.Entries)),
		}
		for i := range g.Entries {
			m.Entries = append(m.Entries, toEntryResponse(&g.Entries[i].Entry))
		}
		result = append(result, m)
	}
	return result
}

func toPhotoResponse(p *model.PlantPhoto) dto.PhotoResponse {
	return dto.PhotoResponse{
		ID:           p.PhotoID,
		AssignmentID: p.AssignmentID,
		FilePath:     p.FilePath,
		Caption:      p.Caption,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		UploadedAt:   p.UploadedAt.Format(time.RFC3339),
	}
}
