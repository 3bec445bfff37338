package mapping

import (
	"context"
	"testing"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/employee"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMappingRepo struct {
	candidates []mapping.AttendanceMapping
}

func (f *fakeMappingRepo) Create(ctx context.Context, m mapping.AttendanceMapping) (mapping.AttendanceMapping, error) {
	return m, nil
}

func (f *fakeMappingRepo) GetByID(ctx context.Context, id string, companyID string) (mapping.AttendanceMapping, error) {
	return mapping.AttendanceMapping{}, mapping.ErrMappingNotFound
}

func (f *fakeMappingRepo) List(ctx context.Context, companyID string) ([]mapping.AttendanceMapping, error) {
	return f.candidates, nil
}

func (f *fakeMappingRepo) Update(ctx context.Context, m mapping.AttendanceMapping) error {
	return nil
}

func (f *fakeMappingRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func (f *fakeMappingRepo) ListCandidates(ctx context.Context, companyID string, refs mapping.ScopeRefs, date time.Time) ([]mapping.AttendanceMapping, error) {
	var out []mapping.AttendanceMapping
	for _, c := range f.candidates {
		if c.EffectiveFrom.After(date) {
			continue
		}
		switch c.Scope {
		case mapping.ScopeEmployee:
			if c.ScopeRefID == refs.EmployeeID {
				out = append(out, c)
			}
		case mapping.ScopeDesignation:
			if refs.DesignationID != nil && c.ScopeRefID == *refs.DesignationID {
				out = append(out, c)
			}
		case mapping.ScopeDepartment:
			if refs.DepartmentID != nil && c.ScopeRefID == *refs.DepartmentID {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) IsManagerOf(ctx context.Context, managerID string, employeeID string, companyID string) (bool, error) {
	return false, nil
}

type fakePolicyRepo struct {
	policies map[string]policy.AttendancePolicy
}

func (f *fakePolicyRepo) Create(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	return p, nil
}

func (f *fakePolicyRepo) GetByID(ctx context.Context, id string, companyID string) (policy.AttendancePolicy, error) {
	p, ok := f.policies[id]
	if !ok {
		return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
	}
	return p, nil
}

func (f *fakePolicyRepo) List(ctx context.Context, companyID string) ([]policy.AttendancePolicy, error) {
	return nil, nil
}

func (f *fakePolicyRepo) Update(ctx context.Context, p policy.AttendancePolicy) error { return nil }

func (f *fakePolicyRepo) Delete(ctx context.Context, id string, companyID string) error { return nil }

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	return s, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) List(ctx context.Context, companyID string) ([]shift.Shift, error) {
	return nil, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) error { return nil }

func (f *fakeShiftRepo) Delete(ctx context.Context, id string, companyID string) error { return nil }

func (f *fakeShiftRepo) IsReferencedByLockedAttendance(ctx context.Context, id string, companyID string) (bool, error) {
	return false, nil
}

type fakePatternRepo struct {
	patterns map[string]shift.WeeklyOffPattern
}

func (f *fakePatternRepo) Create(ctx context.Context, p shift.WeeklyOffPattern) (shift.WeeklyOffPattern, error) {
	return p, nil
}

func (f *fakePatternRepo) GetByID(ctx context.Context, id string, companyID string) (shift.WeeklyOffPattern, error) {
	p, ok := f.patterns[id]
	if !ok {
		return shift.WeeklyOffPattern{}, shift.ErrPatternNotFound
	}
	return p, nil
}

func (f *fakePatternRepo) List(ctx context.Context, companyID string) ([]shift.WeeklyOffPattern, error) {
	return nil, nil
}

func (f *fakePatternRepo) Update(ctx context.Context, p shift.WeeklyOffPattern) error { return nil }

func (f *fakePatternRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func strPtr(s string) *string { return &s }

func newResolverFixture(candidates []mapping.AttendanceMapping) mapping.MappingService {
	designation := "designation-1"
	department := "department-1"
	return NewMappingService(
		&fakeMappingRepo{candidates: candidates},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": {
				ID:            "emp-1",
				CompanyID:     "company-1",
				FullName:      "Asha Verma",
				DesignationID: &designation,
				DepartmentID:  &department,
			},
		}},
		&fakePolicyRepo{policies: map[string]policy.AttendancePolicy{
			"policy-1": {ID: "policy-1", Name: "Standard", FullDayMins: 480, HalfDayMins: 240},
		}},
		&fakeShiftRepo{shifts: map[string]shift.Shift{
			"shift-1": {ID: "shift-1", Name: "General", StartTime: "09:00", EndTime: "18:00"},
		}},
		&fakePatternRepo{},
	)
}

func TestResolve_EmployeeScopeWins(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	earlier := date.AddDate(0, -1, 0)

	svc := newResolverFixture([]mapping.AttendanceMapping{
		{ID: "m-dept", Scope: mapping.ScopeDepartment, ScopeRefID: "department-1", ShiftID: strPtr("shift-1"), EffectiveFrom: earlier},
		{ID: "m-desig", Scope: mapping.ScopeDesignation, ScopeRefID: "designation-1", ShiftID: strPtr("shift-1"), EffectiveFrom: earlier},
		{ID: "m-emp", Scope: mapping.ScopeEmployee, ScopeRefID: "emp-1", PolicyID: strPtr("policy-1"), ShiftID: strPtr("shift-1"), EffectiveFrom: earlier},
	})

	resolved, err := svc.Resolve(context.Background(), "emp-1", "company-1", date)

	require.NoError(t, err)
	require.NotNil(t, resolved.Mapping)
	assert.Equal(t, "m-emp", resolved.Mapping.ID)
	require.NotNil(t, resolved.Policy)
	assert.Equal(t, "policy-1", resolved.Policy.ID)
	require.NotNil(t, resolved.Shift)
	assert.Equal(t, "shift-1", resolved.Shift.ID)
}

func TestResolve_DesignationBeatsDepartment(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	earlier := date.AddDate(0, -1, 0)

	svc := newResolverFixture([]mapping.AttendanceMapping{
		{ID: "m-dept", Scope: mapping.ScopeDepartment, ScopeRefID: "department-1", EffectiveFrom: earlier},
		{ID: "m-desig", Scope: mapping.ScopeDesignation, ScopeRefID: "designation-1", EffectiveFrom: earlier},
	})

	resolved, err := svc.Resolve(context.Background(), "emp-1", "company-1", date)

	require.NoError(t, err)
	require.NotNil(t, resolved.Mapping)
	assert.Equal(t, "m-desig", resolved.Mapping.ID)
}

// Within one scope the most recent effective date wins, so reassignments
// take effect without deleting history.
func TestResolve_LatestEffectiveFromWins(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	svc := newResolverFixture([]mapping.AttendanceMapping{
		{ID: "m-old", Scope: mapping.ScopeEmployee, ScopeRefID: "emp-1", EffectiveFrom: date.AddDate(0, -2, 0)},
		{ID: "m-new", Scope: mapping.ScopeEmployee, ScopeRefID: "emp-1", EffectiveFrom: date.AddDate(0, -1, 0)},
	})

	resolved, err := svc.Resolve(context.Background(), "emp-1", "company-1", date)

	require.NoError(t, err)
	require.NotNil(t, resolved.Mapping)
	assert.Equal(t, "m-new", resolved.Mapping.ID)
}

func TestResolve_FutureMappingIgnored(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	svc := newResolverFixture([]mapping.AttendanceMapping{
		{ID: "m-future", Scope: mapping.ScopeEmployee, ScopeRefID: "emp-1", EffectiveFrom: date.AddDate(0, 1, 0)},
	})

	resolved, err := svc.Resolve(context.Background(), "emp-1", "company-1", date)

	require.NoError(t, err)
	assert.Nil(t, resolved.Mapping)
}

func TestResolve_NoMappingIsNotAnError(t *testing.T) {
	svc := newResolverFixture(nil)

	resolved, err := svc.Resolve(context.Background(), "emp-1", "company-1", time.Now())

	require.NoError(t, err)
	assert.Nil(t, resolved.Mapping)
	assert.Nil(t, resolved.Policy)
	assert.Nil(t, resolved.Shift)
	assert.Nil(t, resolved.WeeklyOff)
}

func TestResolve_UnknownEmployee(t *testing.T) {
	svc := newResolverFixture(nil)

	resolved, err := svc.Resolve(context.Background(), "emp-unknown", "company-1", time.Now())

	require.NoError(t, err)
	assert.Nil(t, resolved.Mapping)
}
