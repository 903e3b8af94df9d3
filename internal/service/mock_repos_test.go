package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/model"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/repository"
	pkgerrors "github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/errors"
)

// ── Mock PlantAssignmentRepository ──

type mockAssignmentRepo struct {
	mu          sync.Mutex
	seq         int
	assignments map[string]*model.PlantAssignment
	failGet     error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.PlantAssignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.PlantAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.assignments {
		if existing.ChildID == a.ChildID && existing.PlantID == a.PlantID {
			return gorm.ErrDuplicatedKey
		}
	}
	if a.AssignmentID == "" {
		m.seq++
		a.AssignmentID = fmt.Sprintf("assignment-%d", m.seq)
	}
	a.Version = 1
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.PlantAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByMother(_ context.Context, motherID string, offset, limit int) ([]model.PlantAssignment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.PlantAssignment
	for _, a := range m.assignments {
		if a.MotherID == motherID {
			all = append(all, *a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AssignmentID < all[j].AssignmentID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAssignmentRepo) UpdateStatus(_ context.Context, a *model.PlantAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.assignments[a.AssignmentID]
	if !ok || stored.Version != a.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = a.Status
	stored.UpdatedBy = a.UpdatedBy
	stored.Version++
	a.Version = stored.Version
	return nil
}

func (m *mockAssignmentRepo) get(id string) *model.PlantAssignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignments[id]
}

func (m *mockAssignmentRepo) snapshot() map[string]model.PlantAssignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[string]model.PlantAssignment, len(m.assignments))
	for id, a := range m.assignments {
		snap[id] = *a
	}
	return snap
}

func (m *mockAssignmentRepo) restore(snap map[string]model.PlantAssignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = make(map[string]*model.PlantAssignment, len(snap))
	for id, a := range snap {
		cp := a
		m.assignments[id] = &cp
	}
}

// ── Mock ScheduleEntryRepository ──

type mockEntryRepo struct {
	mu       sync.Mutex
	seq      int
	entries  []model.ScheduleEntry
	batchErr error
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{}
}

func (m *mockEntryRepo) BatchCreate(_ context.Context, entries []model.ScheduleEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batchErr != nil {
		return m.batchErr
	}
	for _, e := range entries {
		for _, existing := range m.entries {
			if existing.AssignmentID == e.AssignmentID && existing.WeekNumber == e.WeekNumber {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	for i := range entries {
		if entries[i].EntryID == "" {
			m.seq++
			entries[i].EntryID = fmt.Sprintf("entry-%d", m.seq)
		}
		m.entries = append(m.entries, entries[i])
	}
	return nil
}

func (m *mockEntryRepo) CountByAssignment(_ context.Context, assignmentID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.entries {
		if e.AssignmentID == assignmentID {
			n++
		}
	}
	return n, nil
}

func (m *mockEntryRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.AssignmentID == assignmentID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WeekNumber < result[j].WeekNumber })
	return result, nil
}

func (m *mockEntryRepo) ClaimNextPending(_ context.Context, assignmentID string) (*model.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var next *model.ScheduleEntry
	for i := range m.entries {
		e := &m.entries[i]
		if e.AssignmentID != assignmentID || e.UploadStatus != model.UploadPending {
			continue
		}
		if next == nil || e.DueDate.Before(next.DueDate) ||
			(e.DueDate.Equal(next.DueDate) && e.WeekNumber < next.WeekNumber) {
			next = e
		}
	}
	if next == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *next
	return &cp, nil
}

func (m *mockEntryRepo) Complete(_ context.Context, entry *model.ScheduleEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.PhotoID != nil {
		for _, e := range m.entries {
			if e.PhotoID != nil && *e.PhotoID == *entry.PhotoID && e.EntryID != entry.EntryID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	for i := range m.entries {
		e := &m.entries[i]
		if e.EntryID != entry.EntryID {
			continue
		}
		if e.UploadStatus != model.UploadPending {
			return pkgerrors.ErrOptimisticLock
		}
		e.UploadStatus = model.UploadCompleted
		e.PhotoID = entry.PhotoID
		e.CompletedDate = entry.CompletedDate
		e.Remarks = entry.Remarks
		entry.UploadStatus = model.UploadCompleted
		return nil
	}
	return pkgerrors.ErrOptimisticLock
}

func (m *mockEntryRepo) MarkOverdueBefore(_ context.Context, asOf time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.entries {
		e := &m.entries[i]
		if e.UploadStatus == model.UploadPending && e.DueDate.Before(asOf) {
			e.UploadStatus = model.UploadOverdue
			n++
		}
	}
	return n, nil
}

func (m *mockEntryRepo) GetByPhotoID(_ context.Context, photoID string) (*model.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.PhotoID != nil && *e.PhotoID == photoID {
			cp := e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// setStatus forces the status of one week of an assignment.
func (m *mockEntryRepo) setStatus(assignmentID string, week int, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].AssignmentID == assignmentID && m.entries[i].WeekNumber == week {
			m.entries[i].UploadStatus = status
		}
	}
}

func (m *mockEntryRepo) snapshot() []model.ScheduleEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ScheduleEntry(nil), m.entries...)
}

func (m *mockEntryRepo) restore(snap []model.ScheduleEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = snap
}

// ── Mock PlantPhotoRepository ──

type mockPhotoRepo struct {
	mu     sync.Mutex
	seq    int
	photos map[string]*model.PlantPhoto
}

func newMockPhotoRepo() *mockPhotoRepo {
	return &mockPhotoRepo{photos: make(map[string]*model.PlantPhoto)}
}

func (m *mockPhotoRepo) Create(_ context.Context, p *model.PlantPhoto) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.PhotoID == "" {
		m.seq++
		p.PhotoID = fmt.Sprintf("photo-%d", m.seq)
	}
	cp := *p
	m.photos[p.PhotoID] = &cp
	return nil
}

func (m *mockPhotoRepo) GetByID(_ context.Context, id string) (*model.PlantPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.photos[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPhotoRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.PlantPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.PlantPhoto
	for _, p := range m.photos {
		if p.AssignmentID == assignmentID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UploadedAt.Before(result[j].UploadedAt) })
	return result, nil
}

// ── Mock Transactor ──

// mockTransactor runs transactions one at a time and restores every
// store when fn fails.
type mockTransactor struct {
	mu          sync.Mutex
	repo        *repository.Repository
	assignments *mockAssignmentRepo
	entries     *mockEntryRepo
}

func (m *mockTransactor) Transaction(_ context.Context, fn func(tx *repository.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	assignments := m.assignments.snapshot()
	entries := m.entries.snapshot()
	if err := fn(m.repo); err != nil {
		m.assignments.restore(assignments)
		m.entries.restore(entries)
		return err
	}
	return nil
}

// ── test environment ──

type mockEnv struct {
	repo        *repository.Repository
	assignments *mockAssignmentRepo
	entries     *mockEntryRepo
	photos      *mockPhotoRepo
}

func newMockEnv() *mockEnv {
	env := &mockEnv{
		assignments: newMockAssignmentRepo(),
		entries:     newMockEntryRepo(),
		photos:      newMockPhotoRepo(),
	}
	env.repo = &repository.Repository{
		PlantAssignment: env.assignments,
		ScheduleEntry:   env.entries,
		PlantPhoto:      env.photos,
	}
	env.repo.Tx = &mockTransactor{repo: env.repo, assignments: env.assignments, entries: env.entries}
	return env
}

// seedAssignment stores an active assignment without a schedule.
func (e *mockEnv) seedAssignment(id string, assignedDate time.Time) *model.PlantAssignment {
	a := &model.PlantAssignment{
		AssignmentID: id,
		MotherID:     "mother-1",
		ChildID:      "child-" + id,
		PlantID:      "plant-1",
		AssignedDate: assignedDate,
		Status:       model.AssignmentActive,
	}
	_ = e.assignments.Create(context.Background(), a)
	return a
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixedClock pins now for services that read the clock.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
