package period

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret-key"), nil)

func identityCtx(t *testing.T) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "admin-1",
		"company_id":  "company-1",
		"role":        "admin",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeClosureRepo struct {
	closures []period.PeriodClosure
}

func (f *fakeClosureRepo) Create(ctx context.Context, c period.PeriodClosure) (period.PeriodClosure, error) {
	c.ID = "closure-1"
	c.ClosedAt = time.Now()
	f.closures = append(f.closures, c)
	return c, nil
}

func (f *fakeClosureRepo) List(ctx context.Context, companyID string) ([]period.PeriodClosure, error) {
	return f.closures, nil
}

func (f *fakeClosureRepo) IsClosed(ctx context.Context, companyID string, date time.Time) (bool, error) {
	for _, c := range f.closures {
		if c.Contains(date) {
			return true, nil
		}
	}
	return false, nil
}

type fakeAttendanceRepo struct {
	rows []attendance.DailyAttendance
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, att attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.DailyAttendance) error {
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.DailyAttendance, error) {
	return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.DailyAttendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.DailyAttendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, companyID string) ([]attendance.DailyAttendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListRange(ctx context.Context, companyID string, start, end time.Time) ([]attendance.DailyAttendance, error) {
	return f.rows, nil
}

func (f *fakeAttendanceRepo) LockRange(ctx context.Context, companyID string, start, end time.Time) (int64, int64, error) {
	var locked int64
	for i := range f.rows {
		if !f.rows[i].IsLocked {
			f.rows[i].IsLocked = true
			locked++
		}
	}
	return locked, int64(len(f.rows)), nil
}

func (f *fakeAttendanceRepo) CountLateMarksInMonth(ctx context.Context, employeeID string, date time.Time, companyID string) (int, error) {
	return 0, nil
}

type fakeAttendanceService struct {
	failFor  map[string]error // employeeID -> error
	calls    int
	statuses []attendance.ProcessingStatus
}

func (f *fakeAttendanceService) ComputeEmployeeDay(ctx context.Context, companyID string, employeeID string, date time.Time) (attendance.DailyAttendance, error) {
	return f.compute(employeeID, companyID, date, attendance.ProcessingStatusPending)
}

func (f *fakeAttendanceService) ProcessEmployeeDay(ctx context.Context, companyID string, employeeID string, date time.Time) (attendance.DailyAttendance, error) {
	return f.compute(employeeID, companyID, date, attendance.ProcessingStatusProcessed)
}

func (f *fakeAttendanceService) compute(employeeID, companyID string, date time.Time, status attendance.ProcessingStatus) (attendance.DailyAttendance, error) {
	f.calls++
	if err, ok := f.failFor[employeeID]; ok {
		return attendance.DailyAttendance{}, err
	}
	f.statuses = append(f.statuses, status)
	return attendance.DailyAttendance{CompanyID: companyID, EmployeeID: employeeID, Date: date, ProcessingStatus: status}, nil
}

func (f *fakeAttendanceService) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (f *fakeAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (f *fakeAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) ManualEdit(ctx context.Context, req attendance.ManualEditRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) RecomputeDay(ctx context.Context, req attendance.ComputeDayRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestProcess_RecomputesRange(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{rows: []attendance.DailyAttendance{
		{EmployeeID: "emp-1", Date: day(1)},
		{EmployeeID: "emp-2", Date: day(1)},
		{EmployeeID: "emp-1", Date: day(2)},
	}}
	attendanceSvc := &fakeAttendanceService{}
	svc := NewPeriodService(nil, &fakeClosureRepo{}, attendanceRepo, attendanceSvc)

	result, err := svc.Process(identityCtx(t), period.RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-02"})

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	// Finalisation recomputes through the processing path, so every row
	// comes out marked processed.
	require.Len(t, attendanceSvc.statuses, 3)
	for _, status := range attendanceSvc.statuses {
		assert.Equal(t, attendance.ProcessingStatusProcessed, status)
	}
}

// Locked rows are skipped without touching the aggregator; one failing row
// never aborts the rest of the batch.
func TestProcess_PartialOutcomes(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{rows: []attendance.DailyAttendance{
		{EmployeeID: "emp-locked", Date: day(1), IsLocked: true},
		{EmployeeID: "emp-bad", Date: day(1)},
		{EmployeeID: "emp-ok", Date: day(1)},
	}}
	attendanceSvc := &fakeAttendanceService{failFor: map[string]error{
		"emp-bad": errors.New("mapping resolution failed"),
	}}
	svc := NewPeriodService(nil, &fakeClosureRepo{}, attendanceRepo, attendanceSvc)

	result, err := svc.Process(identityCtx(t), period.RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-01"})

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	// The locked row never reached the aggregator.
	assert.Equal(t, 2, attendanceSvc.calls)
}

func TestProcess_LockedDuringRecomputeCountsSkipped(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{rows: []attendance.DailyAttendance{
		{EmployeeID: "emp-1", Date: day(1)},
	}}
	attendanceSvc := &fakeAttendanceService{failFor: map[string]error{
		"emp-1": attendance.ErrRecordLocked,
	}}
	svc := NewPeriodService(nil, &fakeClosureRepo{}, attendanceRepo, attendanceSvc)

	result, err := svc.Process(identityCtx(t), period.RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-01"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
}

func TestProcess_EmptyRange(t *testing.T) {
	svc := NewPeriodService(nil, &fakeClosureRepo{}, &fakeAttendanceRepo{}, &fakeAttendanceService{})

	result, err := svc.Process(identityCtx(t), period.RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-31"})

	require.NoError(t, err)
	assert.Equal(t, period.ProcessResult{}, result)
}

func TestProcess_InvalidRange(t *testing.T) {
	svc := NewPeriodService(nil, &fakeClosureRepo{}, &fakeAttendanceRepo{}, &fakeAttendanceService{})

	_, err := svc.Process(identityCtx(t), period.RangeRequest{StartDate: "2026-03-31", EndDate: "2026-03-01"})

	assert.Error(t, err)
}

func TestLock_InvalidRange(t *testing.T) {
	svc := NewPeriodService(nil, &fakeClosureRepo{}, &fakeAttendanceRepo{}, &fakeAttendanceService{})

	_, err := svc.Lock(identityCtx(t), period.RangeRequest{StartDate: "not-a-date", EndDate: "2026-03-01"})

	assert.Error(t, err)
}

func newLockedService(closureRepo *fakeClosureRepo, attendanceRepo *fakeAttendanceRepo) period.PeriodService {
	svc := NewPeriodService(nil, closureRepo, attendanceRepo, &fakeAttendanceService{})
	svc.(*PeriodServiceImpl).runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return svc
}

func TestLock_LocksRangeAndRecordsClosure(t *testing.T) {
	closureRepo := &fakeClosureRepo{}
	attendanceRepo := &fakeAttendanceRepo{rows: []attendance.DailyAttendance{
		{EmployeeID: "emp-1", Date: day(1)},
		{EmployeeID: "emp-2", Date: day(1)},
		{EmployeeID: "emp-1", Date: day(2), IsLocked: true},
	}}
	svc := newLockedService(closureRepo, attendanceRepo)

	result, err := svc.Lock(identityCtx(t), period.RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-02"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalRows)
	assert.Equal(t, int64(2), result.NewlyLocked)
	assert.Equal(t, int64(1), result.AlreadyLocked)

	require.Len(t, closureRepo.closures, 1)
	closure := closureRepo.closures[0]
	assert.Equal(t, "company-1", closure.CompanyID)
	assert.Equal(t, "admin-1", closure.ClosedBy)
	assert.Equal(t, day(1), closure.StartDate)
	assert.Equal(t, day(2), closure.EndDate)
}

// Relocking an already-closed range is observable but harmless: nothing new
// locks and the closure ledger gains another entry.
func TestLock_RelockIsIdempotent(t *testing.T) {
	closureRepo := &fakeClosureRepo{}
	attendanceRepo := &fakeAttendanceRepo{rows: []attendance.DailyAttendance{
		{EmployeeID: "emp-1", Date: day(1)},
		{EmployeeID: "emp-2", Date: day(1)},
	}}
	svc := newLockedService(closureRepo, attendanceRepo)
	req := period.RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-01"}

	first, err := svc.Lock(identityCtx(t), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.NewlyLocked)

	second, err := svc.Lock(identityCtx(t), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.TotalRows)
	assert.Equal(t, int64(0), second.NewlyLocked)
	assert.Equal(t, int64(2), second.AlreadyLocked)
}

func TestLock_EmptyRange(t *testing.T) {
	closureRepo := &fakeClosureRepo{}
	svc := newLockedService(closureRepo, &fakeAttendanceRepo{})

	result, err := svc.Lock(identityCtx(t), period.RangeRequest{StartDate: "2026-03-01", EndDate: "2026-03-31"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalRows)
	assert.Equal(t, int64(0), result.NewlyLocked)
	// The closure is still recorded so the range refuses future edits.
	assert.Len(t, closureRepo.closures, 1)
}
