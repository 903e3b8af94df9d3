package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/tracking"
)

// ── test helpers ──

func setupTestTrackingService(now time.Time) (*trackingService, *mockEnv) {
	env := newMockEnv()
	svc := NewTrackingService(env.repo, time.UTC, zap.NewNop()).(*trackingService)
	svc.now = fixedClock(now)
	return svc, env
}

// setupScheduled seeds an assignment on 2024-01-01 with its full schedule.
func setupScheduled(t *testing.T, now time.Time) (*trackingService, *mockEnv, string) {
	t.Helper()
	svc, env := setupTestTrackingService(now)
	env.seedAssignment("a-1", date(2024, 1, 1))
	if _, err := svc.GenerateSchedule(context.Background(), "a-1", date(2024, 1, 1)); err != nil {
		t.Fatalf("GenerateSchedule should succeed: %v", err)
	}
	return svc, env, "a-1"
}

// ── GenerateSchedule ──

func TestTrackingService_GenerateSchedule_Dates(t *testing.T) {
	_, env, id := setupScheduled(t, date(2024, 1, 1))

	entries, _ := env.entries.ListByAssignment(context.Background(), id)
	want := []string{
		"2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29",
		"2024-02-12", "2024-02-26", "2024-03-11", "2024-03-25",
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if got := e.DueDate.Format("2006-01-02"); got != want[i] {
			t.Errorf("week %d: expected due %s, got %s", e.WeekNumber, want[i], got)
		}
		if e.UploadStatus != model.UploadPending || e.PhotoID != nil || e.CompletedDate != nil {
			t.Errorf("week %d: expected a blank pending entry, got %+v", e.WeekNumber, e)
		}
	}
}

func TestTrackingService_GenerateSchedule_Duplicate(t *testing.T) {
	svc, env, id := setupScheduled(t, date(2024, 1, 1))

	_, err := svc.GenerateSchedule(context.Background(), id, date(2024, 1, 1))
	if !errors.Is(err, tracking.ErrDuplicateSchedule) {
		t.Fatalf("expected ErrDuplicateSchedule, got: %v", err)
	}
	if n, _ := env.entries.CountByAssignment(context.Background(), id); n != 8 {
		t.Errorf("expected the schedule to stay at 8 entries, got %d", n)
	}
}

func TestTrackingService_GenerateSchedule_FailureLeavesNoEntries(t *testing.T) {
	svc, env := setupTestTrackingService(date(2024, 1, 1))
	env.seedAssignment("a-1", date(2024, 1, 1))
	env.entries.batchErr = errors.New("connection reset")

	if _, err := svc.GenerateSchedule(context.Background(), "a-1", date(2024, 1, 1)); err == nil {
		t.Fatal("expected the batch failure to surface")
	}
	if n, _ := env.entries.CountByAssignment(context.Background(), "a-1"); n != 0 {
		t.Errorf("expected no entries after a failed generation, got %d", n)
	}
}

// ── CompleteNextPending ──

func TestTrackingService_CompleteNextPending_EarliestFirst(t *testing.T) {
	svc, _, id := setupScheduled(t, date(2024, 1, 1))
	ctx := context.Background()

	wantWeeks := []int{1, 2, 3, 4, 6, 8, 10, 12}
	for i, week := range wantWeeks {
		// upload timestamps run backwards; ordering must follow due dates only
		uploaded := date(2024, 6, 30).AddDate(0, 0, -i)
		entry, err := svc.CompleteNextPending(ctx, id, fmt.Sprintf("photo-%d", i), uploaded, "looks healthy")
		if err != nil {
			t.Fatalf("completion %d should succeed: %v", i+1, err)
		}
		if entry.WeekNumber != week {
			t.Errorf("completion %d: expected week %d, got %d", i+1, week, entry.WeekNumber)
		}
		if entry.UploadStatus != model.UploadCompleted {
			t.Errorf("expected status completed, got %s", entry.UploadStatus)
		}
		if entry.CompletedDate == nil || !entry.CompletedDate.Equal(uploaded) {
			t.Errorf("expected completed_date %v, got %v", uploaded, entry.CompletedDate)
		}
		if entry.Remarks != "looks healthy" {
			t.Errorf("expected remarks to be copied, got %q", entry.Remarks)
		}
	}
}

func TestTrackingService_CompleteNextPending_AllCompleted(t *testing.T) {
	svc, env, id := setupScheduled(t, date(2024, 1, 1))
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if _, err := svc.CompleteNextPending(ctx, id, fmt.Sprintf("photo-%d", i), date(2024, 1, 8), ""); err != nil {
			t.Fatalf("completion %d should succeed: %v", i+1, err)
		}
	}
	before := env.entries.snapshot()

	_, err := svc.CompleteNextPending(ctx, id, "photo-extra", date(2024, 4, 1), "")
	if !errors.Is(err, tracking.ErrNotFound) {
		t.Fatalf("expected tracking.ErrNotFound, got: %v", err)
	}
	if !reflect.DeepEqual(before, env.entries.snapshot()) {
		t.Error("no entry should change when nothing is pending")
	}
}

func TestTrackingService_CompleteNextPending_SkipsOverdue(t *testing.T) {
	svc, _, id := setupScheduled(t, date(2024, 1, 20))
	ctx := context.Background()

	n, err := svc.MarkOverdue(ctx, date(2024, 1, 20))
	if err != nil {
		t.Fatalf("MarkOverdue should succeed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected weeks 1 and 2 to become overdue, got %d rows", n)
	}

	entry, err := svc.CompleteNextPending(ctx, id, "photo-1", date(2024, 1, 20), "")
	if err != nil {
		t.Fatalf("CompleteNextPending should succeed: %v", err)
	}
	if entry.WeekNumber != 3 {
		t.Errorf("expected week 3, got %d", entry.WeekNumber)
	}
}

func TestTrackingService_CompleteNextPending_PhotoAlreadyLinked(t *testing.T) {
	svc, _, id := setupScheduled(t, date(2024, 1, 1))
	ctx := context.Background()

	if _, err := svc.CompleteNextPending(ctx, id, "photo-1", date(2024, 1, 8), ""); err != nil {
		t.Fatalf("first completion should succeed: %v", err)
	}
	_, err := svc.CompleteNextPending(ctx, id, "photo-1", date(2024, 1, 9), "")
	if !errors.Is(err, ErrPhotoAlreadyLinked) {
		t.Fatalf("expected ErrPhotoAlreadyLinked, got: %v", err)
	}
}

func TestTrackingService_CompleteNextPending_ConcurrentUploads(t *testing.T) {
	svc, env, id := setupScheduled(t, date(2024, 1, 1))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CompleteNextPending(ctx, id, fmt.Sprintf("photo-%d", i), date(2024, 1, 8), "")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("every concurrent upload should claim its own checkpoint: %v", err)
		}
	}

	photos := make(map[string]bool)
	entries, _ := env.entries.ListByAssignment(ctx, id)
	for _, e := range entries {
		if e.UploadStatus != model.UploadCompleted || e.PhotoID == nil {
			t.Errorf("week %d not completed", e.WeekNumber)
			continue
		}
		if photos[*e.PhotoID] {
			t.Errorf("photo %s linked twice", *e.PhotoID)
		}
		photos[*e.PhotoID] = true
	}
}

// ── MarkOverdue ──

func TestTrackingService_MarkOverdue_Idempotent(t *testing.T) {
	svc, _, _ := setupScheduled(t, date(2024, 2, 1))
	ctx := context.Background()

	first, err := svc.MarkOverdue(ctx, date(2024, 2, 1))
	if err != nil {
		t.Fatalf("MarkOverdue should succeed: %v", err)
	}
	if first != 4 {
		t.Errorf("expected the four month-1 checkpoints, got %d", first)
	}

	second, err := svc.MarkOverdue(ctx, date(2024, 2, 1))
	if err != nil {
		t.Fatalf("second MarkOverdue should succeed: %v", err)
	}
	if second != 0 {
		t.Errorf("expected 0 rows on the second pass, got %d", second)
	}
}

func TestTrackingService_MarkOverdue_DueTodayStaysPending(t *testing.T) {
	svc, env, id := setupScheduled(t, date(2024, 1, 8))

	n, _ := svc.MarkOverdue(context.Background(), time.Date(2024, 1, 8, 23, 59, 0, 0, time.UTC))
	if n != 0 {
		t.Errorf("an entry due today is not overdue yet, got %d rows", n)
	}
	entries, _ := env.entries.ListByAssignment(context.Background(), id)
	if entries[0].UploadStatus != model.UploadPending {
		t.Errorf("expected week 1 pending, got %s", entries[0].UploadStatus)
	}
}

// ── GetStats ──

func TestTrackingService_GetStats_Mixed(t *testing.T) {
	svc, env, id := setupScheduled(t, date(2024, 2, 20))
	for _, w := range []int{1, 2, 3} {
		env.entries.setStatus(id, w, model.UploadCompleted)
	}
	for _, w := range []int{4, 6} {
		env.entries.setStatus(id, w, model.UploadOverdue)
	}

	st, err := svc.GetStats(context.Background(), id)
	if err != nil {
		t.Fatalf("GetStats should succeed: %v", err)
	}
	if st.Total != 8 || st.Completed != 3 || st.Pending != 3 || st.Overdue != 2 {
		t.Errorf("unexpected counts: %+v", st)
	}
	if got := tracking.CompletionPercentage(*st); got != 38 {
		t.Errorf("expected 38%%, got %d", got)
	}
	if st.NextDueDate == nil || !st.NextDueDate.Equal(date(2024, 2, 26)) {
		t.Errorf("expected next due 2024-02-26, got %v", st.NextDueDate)
	}
	if st.DaysRemaining == nil || *st.DaysRemaining != 6 {
		t.Errorf("expected 6 days remaining, got %v", st.DaysRemaining)
	}
}

func TestTrackingService_GetStats_NoSchedule(t *testing.T) {
	svc, env := setupTestTrackingService(date(2024, 1, 1))
	env.seedAssignment("a-1", date(2024, 1, 1))

	st, err := svc.GetStats(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("GetStats should succeed: %v", err)
	}
	if st.Total != 0 || tracking.CompletionPercentage(*st) != 0 || st.NextDueDate != nil || st.DaysRemaining != nil {
		t.Errorf("expected an empty report, got %+v", st)
	}
}

func TestTrackingService_GetStats_DaysRemainingUsesLocalDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		// 01:30 local on 2024-01-08, the week-1 due date
		{"due today locally", time.Date(2024, 1, 7, 20, 0, 0, 0, time.UTC), 0},
		// 01:30 local on 2024-01-09, before any sweep ran
		{"one day late locally", time.Date(2024, 1, 8, 20, 0, 0, 0, time.UTC), -1},
		{"late evening the day before", time.Date(2024, 1, 7, 17, 0, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newMockEnv()
			svc := NewTrackingService(env.repo, ist, zap.NewNop()).(*trackingService)
			svc.now = fixedClock(tt.now)
			env.seedAssignment("a-1", date(2024, 1, 1))
			if _, err := svc.GenerateSchedule(context.Background(), "a-1", date(2024, 1, 1)); err != nil {
				t.Fatalf("GenerateSchedule should succeed: %v", err)
			}

			st, err := svc.GetStats(context.Background(), "a-1")
			if err != nil {
				t.Fatalf("GetStats should succeed: %v", err)
			}
			if st.NextDueDate == nil || !st.NextDueDate.Equal(date(2024, 1, 8)) {
				t.Fatalf("expected next due 2024-01-08, got %v", st.NextDueDate)
			}
			if st.DaysRemaining == nil || *st.DaysRemaining != tt.want {
				t.Errorf("expected %d days remaining, got %v", tt.want, st.DaysRemaining)
			}
		})
	}
}

// ── GetTracking ──

func TestTrackingService_GetTracking(t *testing.T) {
	svc, _, id := setupScheduled(t, time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC))

	resp, err := svc.GetTracking(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTracking should succeed: %v", err)
	}
	if resp.Stats.Overdue != 2 || resp.Stats.Pending != 6 {
		t.Errorf("expected the view to sweep first, got %+v", resp.Stats)
	}
	if len(resp.Months) != 3 {
		t.Fatalf("expected 3 month groups, got %d", len(resp.Months))
	}

	wantLabels := [][]string{
		{"Week 1", "Week 2", "Week 3", "Week 4"},
		{"Bi-weekly Photo 1", "Bi-weekly Photo 2"},
		{"Bi-weekly Photo 1", "Bi-weekly Photo 2"},
	}
	for i, m := range resp.Months {
		if m.MonthNumber != i+1 {
			t.Errorf("expected month %d, got %d", i+1, m.MonthNumber)
		}
		var labels []string
		for _, e := range m.Entries {
			labels = append(labels, e.Label)
		}
		if !reflect.DeepEqual(labels, wantLabels[i]) {
			t.Errorf("month %d: expected labels %v, got %v", i+1, wantLabels[i], labels)
		}
	}
	if resp.Stats.NextDueDate == nil || *resp.Stats.NextDueDate != "2024-01-22" {
		t.Errorf("expected next due 2024-01-22, got %v", resp.Stats.NextDueDate)
	}
}

func TestTrackingService_GetTracking_NotFound(t *testing.T) {
	svc, _ := setupTestTrackingService(date(2024, 1, 1))

	_, err := svc.GetTracking(context.Background(), "missing")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got: %v", err)
	}
}
