package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceStore struct {
	rows      map[string]*attendance.DailyAttendance // keyed by employeeID
	upserts   []attendance.DailyAttendance
	lateMarks int
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{rows: make(map[string]*attendance.DailyAttendance)}
}

func (f *fakeAttendanceStore) Upsert(ctx context.Context, att attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	f.upserts = append(f.upserts, att)
	return att, nil
}

func (f *fakeAttendanceStore) Update(ctx context.Context, att attendance.DailyAttendance) error {
	return nil
}

func (f *fakeAttendanceStore) GetByID(ctx context.Context, id string, companyID string) (attendance.DailyAttendance, error) {
	return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceStore) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.DailyAttendance, error) {
	return f.rows[employeeID], nil
}

func (f *fakeAttendanceStore) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.DailyAttendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceStore) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, companyID string) ([]attendance.DailyAttendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceStore) ListRange(ctx context.Context, companyID string, start, end time.Time) ([]attendance.DailyAttendance, error) {
	return nil, nil
}

func (f *fakeAttendanceStore) LockRange(ctx context.Context, companyID string, start, end time.Time) (int64, int64, error) {
	return 0, 0, nil
}

func (f *fakeAttendanceStore) CountLateMarksInMonth(ctx context.Context, employeeID string, date time.Time, companyID string) (int, error) {
	return f.lateMarks, nil
}

type fakePunchStore struct {
	punches []punch.Punch
}

func (f *fakePunchStore) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	return p, nil
}

func (f *fakePunchStore) ListForAttendanceDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]punch.Punch, error) {
	return f.punches, nil
}

func (f *fakePunchStore) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]punch.Punch, error) {
	return nil, nil
}

func (f *fakePunchStore) List(ctx context.Context, companyID string, filter punch.PunchFilter) ([]punch.Punch, error) {
	return nil, nil
}

type stubResolver struct {
	assignment mapping.ResolvedAssignment
}

func (s *stubResolver) Resolve(ctx context.Context, employeeID string, companyID string, date time.Time) (mapping.ResolvedAssignment, error) {
	return s.assignment, nil
}

type stubClosureRepo struct{}

func (s *stubClosureRepo) Create(ctx context.Context, c period.PeriodClosure) (period.PeriodClosure, error) {
	return c, nil
}

func (s *stubClosureRepo) List(ctx context.Context, companyID string) ([]period.PeriodClosure, error) {
	return nil, nil
}

func (s *stubClosureRepo) IsClosed(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return false, nil
}

type serviceFixture struct {
	svc        attendance.AttendanceService
	store      *fakeAttendanceStore
	punchStore *fakePunchStore
}

func newServiceFixture(assignment mapping.ResolvedAssignment) *serviceFixture {
	store := newFakeAttendanceStore()
	punchStore := &fakePunchStore{}
	svc := NewAttendanceService(store, punchStore, &stubResolver{assignment: assignment}, &stubClosureRepo{})
	return &serviceFixture{svc: svc, store: store, punchStore: punchStore}
}

func fullDayPunches(date time.Time) []punch.Punch {
	return []punch.Punch{
		punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
		punchAt("emp-1", date, at(date, 18, 0), punch.DirectionOut),
	}
}

func TestComputeEmployeeDay_NewRowStartsPending(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f := newServiceFixture(mapping.ResolvedAssignment{Shift: dayShift(), Policy: standardPolicy()})
	f.punchStore.punches = fullDayPunches(date)

	row, err := f.svc.ComputeEmployeeDay(context.Background(), "company-1", "emp-1", date)

	require.NoError(t, err)
	assert.Equal(t, attendance.ProcessingStatusPending, row.ProcessingStatus)
	assert.Equal(t, attendance.StatusPresent, row.Status)
}

func TestProcessEmployeeDay_MarksRowProcessed(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f := newServiceFixture(mapping.ResolvedAssignment{Shift: dayShift(), Policy: standardPolicy()})
	f.punchStore.punches = fullDayPunches(date)

	_, err := f.svc.ProcessEmployeeDay(context.Background(), "company-1", "emp-1", date)

	require.NoError(t, err)
	require.Len(t, f.store.upserts, 1)
	assert.Equal(t, attendance.ProcessingStatusProcessed, f.store.upserts[0].ProcessingStatus)
	assert.Equal(t, attendance.StatusPresent, f.store.upserts[0].Status)
}

// A regularised row already marked processed keeps its processing status and
// source through a plain recomputation.
func TestComputeEmployeeDay_KeepsProcessedRegularisedRow(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f := newServiceFixture(mapping.ResolvedAssignment{Shift: dayShift(), Policy: standardPolicy()})
	firstIn := at(date, 9, 0)
	lastOut := at(date, 18, 0)
	f.store.rows["emp-1"] = &attendance.DailyAttendance{
		ID:               "att-1",
		CompanyID:        "company-1",
		EmployeeID:       "emp-1",
		Date:             date,
		FirstIn:          &firstIn,
		LastOut:          &lastOut,
		Source:           attendance.SourceRegularised,
		ProcessingStatus: attendance.ProcessingStatusProcessed,
	}

	row, err := f.svc.ComputeEmployeeDay(context.Background(), "company-1", "emp-1", date)

	require.NoError(t, err)
	assert.Equal(t, "att-1", row.ID)
	assert.Equal(t, attendance.SourceRegularised, row.Source)
	assert.Equal(t, attendance.ProcessingStatusProcessed, row.ProcessingStatus)
}

func TestProcessEmployeeDay_LockedRowRefused(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f := newServiceFixture(mapping.ResolvedAssignment{Shift: dayShift(), Policy: standardPolicy()})
	f.store.rows["emp-1"] = &attendance.DailyAttendance{ID: "att-1", IsLocked: true}

	_, err := f.svc.ProcessEmployeeDay(context.Background(), "company-1", "emp-1", date)

	assert.ErrorIs(t, err, attendance.ErrRecordLocked)
	assert.Empty(t, f.store.upserts)
}

func TestComputeEmployeeDay_ExcessLateMarksTagged(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cappedPolicy := standardPolicy()
	cappedPolicy.MaxLateMarksPerMonth = 3
	f := newServiceFixture(mapping.ResolvedAssignment{Shift: dayShift(), Policy: cappedPolicy})
	f.store.lateMarks = 3
	f.punchStore.punches = []punch.Punch{
		punchAt("emp-1", date, at(date, 9, 30), punch.DirectionIn),
		punchAt("emp-1", date, at(date, 18, 30), punch.DirectionOut),
	}

	row, err := f.svc.ComputeEmployeeDay(context.Background(), "company-1", "emp-1", date)

	require.NoError(t, err)
	assert.True(t, row.IsLate)
	assert.True(t, row.ExceptionTags.Contains(attendance.TagExcessLateMarks))
}

func TestComputeEmployeeDay_LateMarksWithinCap(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cappedPolicy := standardPolicy()
	cappedPolicy.MaxLateMarksPerMonth = 3
	f := newServiceFixture(mapping.ResolvedAssignment{Shift: dayShift(), Policy: cappedPolicy})
	f.store.lateMarks = 1
	f.punchStore.punches = []punch.Punch{
		punchAt("emp-1", date, at(date, 9, 30), punch.DirectionIn),
		punchAt("emp-1", date, at(date, 18, 30), punch.DirectionOut),
	}

	row, err := f.svc.ComputeEmployeeDay(context.Background(), "company-1", "emp-1", date)

	require.NoError(t, err)
	assert.True(t, row.IsLate)
	assert.False(t, row.ExceptionTags.Contains(attendance.TagExcessLateMarks))
}
