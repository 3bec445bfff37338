package punch

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret-key"), nil)

func identityCtx(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{
		"user_id":     "user-" + employeeID,
		"employee_id": employeeID,
		"company_id":  "company-1",
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakePunchRepo struct {
	created []punch.Punch
}

func (f *fakePunchRepo) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	p.ID = "punch-1"
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePunchRepo) ListForAttendanceDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]punch.Punch, error) {
	return nil, nil
}

func (f *fakePunchRepo) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]punch.Punch, error) {
	return nil, nil
}

func (f *fakePunchRepo) List(ctx context.Context, companyID string, filter punch.PunchFilter) ([]punch.Punch, error) {
	return f.created, nil
}

type fakeGeoFenceRepo struct {
	fences []punch.GeoFenceLocation
}

func (f *fakeGeoFenceRepo) Create(ctx context.Context, g punch.GeoFenceLocation) (punch.GeoFenceLocation, error) {
	return g, nil
}

func (f *fakeGeoFenceRepo) GetByID(ctx context.Context, id string, companyID string) (punch.GeoFenceLocation, error) {
	return punch.GeoFenceLocation{}, punch.ErrGeoFenceNotFound
}

func (f *fakeGeoFenceRepo) ListActive(ctx context.Context, companyID string) ([]punch.GeoFenceLocation, error) {
	return f.fences, nil
}

func (f *fakeGeoFenceRepo) List(ctx context.Context, companyID string) ([]punch.GeoFenceLocation, error) {
	return f.fences, nil
}

func (f *fakeGeoFenceRepo) Update(ctx context.Context, g punch.GeoFenceLocation) error { return nil }

func (f *fakeGeoFenceRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

type fakeClosureRepo struct {
	closed bool
}

func (f *fakeClosureRepo) Create(ctx context.Context, c period.PeriodClosure) (period.PeriodClosure, error) {
	return c, nil
}

func (f *fakeClosureRepo) List(ctx context.Context, companyID string) ([]period.PeriodClosure, error) {
	return nil, nil
}

func (f *fakeClosureRepo) IsClosed(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return f.closed, nil
}

func floatPtr(v float64) *float64 { return &v }

// Bengaluru office used as the fence anchor in the tests below.
var officeFence = punch.GeoFenceLocation{
	ID:           "fence-1",
	Name:         "HQ",
	Latitude:     12.9716,
	Longitude:    77.5946,
	RadiusMeters: 200,
	IsActive:     true,
}

func recordRequest() punch.RecordPunchRequest {
	return punch.RecordPunchRequest{
		Date:      "2026-03-02",
		Timestamp: "2026-03-02T09:00:00Z",
		Direction: string(punch.DirectionIn),
		Source:    string(punch.SourceMobile),
	}
}

func TestRecord_WithinFence(t *testing.T) {
	svc := NewPunchService(&fakePunchRepo{}, &fakeGeoFenceRepo{fences: []punch.GeoFenceLocation{officeFence}}, &fakeClosureRepo{})

	req := recordRequest()
	req.Latitude = floatPtr(12.9717)
	req.Longitude = floatPtr(77.5947)
	resp, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), req)

	require.NoError(t, err)
	assert.Equal(t, string(punch.GeoStatusCaptured), resp.GeoStatus)
}

// An out-of-range fix is graded, not rejected: the punch still lands.
func TestRecord_OutOfRange(t *testing.T) {
	repo := &fakePunchRepo{}
	svc := NewPunchService(repo, &fakeGeoFenceRepo{fences: []punch.GeoFenceLocation{officeFence}}, &fakeClosureRepo{})

	req := recordRequest()
	req.Latitude = floatPtr(13.0827) // Chennai, ~290 km away
	req.Longitude = floatPtr(80.2707)
	resp, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), req)

	require.NoError(t, err)
	assert.Equal(t, string(punch.GeoStatusOutOfRange), resp.GeoStatus)
	assert.Len(t, repo.created, 1)
}

func TestRecord_LocationDenied(t *testing.T) {
	svc := NewPunchService(&fakePunchRepo{}, &fakeGeoFenceRepo{fences: []punch.GeoFenceLocation{officeFence}}, &fakeClosureRepo{})

	req := recordRequest()
	req.LocationDenied = true
	resp, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), req)

	require.NoError(t, err)
	assert.Equal(t, string(punch.GeoStatusDenied), resp.GeoStatus)
}

func TestRecord_NoCoordinates(t *testing.T) {
	svc := NewPunchService(&fakePunchRepo{}, &fakeGeoFenceRepo{fences: []punch.GeoFenceLocation{officeFence}}, &fakeClosureRepo{})

	resp, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), recordRequest())

	require.NoError(t, err)
	assert.Equal(t, string(punch.GeoStatusNotCaptured), resp.GeoStatus)
}

// Without configured fences every fix is acceptable.
func TestRecord_NoFencesConfigured(t *testing.T) {
	svc := NewPunchService(&fakePunchRepo{}, &fakeGeoFenceRepo{}, &fakeClosureRepo{})

	req := recordRequest()
	req.Latitude = floatPtr(12.9716)
	req.Longitude = floatPtr(77.5946)
	resp, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), req)

	require.NoError(t, err)
	assert.Equal(t, string(punch.GeoStatusCaptured), resp.GeoStatus)
}

func TestRecord_ClosedPeriodRejected(t *testing.T) {
	svc := NewPunchService(&fakePunchRepo{}, &fakeGeoFenceRepo{}, &fakeClosureRepo{closed: true})

	_, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), recordRequest())

	assert.ErrorIs(t, err, period.ErrPeriodClosed)
}

func TestRecord_OnBehalfRequiresAdmin(t *testing.T) {
	repo := &fakePunchRepo{}
	svc := NewPunchService(repo, &fakeGeoFenceRepo{}, &fakeClosureRepo{})

	req := recordRequest()
	req.EmployeeID = "emp-2"
	req.Source = string(punch.SourceBiometric)

	_, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), req)
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)

	resp, err := svc.Record(identityCtx(t, "admin-1", user.RoleAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, "emp-2", resp.EmployeeID)
}

func TestGetMyPunches_ScopedToCaller(t *testing.T) {
	repo := &fakePunchRepo{}
	svc := NewPunchService(repo, &fakeGeoFenceRepo{}, &fakeClosureRepo{})

	_, err := svc.Record(identityCtx(t, "emp-1", user.RoleEmployee), recordRequest())
	require.NoError(t, err)

	punches, err := svc.GetMyPunches(identityCtx(t, "emp-1", user.RoleEmployee), punch.PunchFilter{})

	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, "emp-1", punches[0].EmployeeID)
}
