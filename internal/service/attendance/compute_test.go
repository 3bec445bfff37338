package attendance

import (
	"testing"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayShift() *shift.Shift {
	return &shift.Shift{
		ID:        "shift-1",
		CompanyID: "company-1",
		Name:      "General",
		StartTime: "09:00",
		EndTime:   "18:00",
	}
}

func standardPolicy() *policy.AttendancePolicy {
	return &policy.AttendancePolicy{
		ID:            "policy-1",
		CompanyID:     "company-1",
		Name:          "Standard",
		FullDayMins:   480,
		HalfDayMins:   240,
		GraceLateMins: 15,
	}
}

func at(date time.Time, hour, min int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, time.UTC)
}

func punchAt(employeeID string, date time.Time, ts time.Time, dir punch.Direction) punch.Punch {
	return punch.Punch{
		CompanyID:  "company-1",
		EmployeeID: employeeID,
		Date:       date,
		Timestamp:  ts,
		Direction:  dir,
		Source:     punch.SourceWeb,
	}
}

func TestComputeDay_LateWithFullDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 20), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 18, 10), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.True(t, result.IsLate)
	assert.Equal(t, 20, result.LateMins)
	assert.Equal(t, 530, result.TotalWorkMins)
	assert.Equal(t, 0, result.OTMins)
	assert.Empty(t, result.ExceptionTags)
}

func TestComputeDay_Idempotent(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 20), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 13, 0), punch.DirectionOut),
			punchAt("emp-1", date, at(date, 14, 0), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 18, 10), punch.DirectionOut),
		},
	}

	first := ComputeDay(in)
	second := ComputeDay(in)

	assert.Equal(t, first, second)
}

func TestComputeDay_WithinGrace(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 10), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 18, 0), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.False(t, result.IsLate)
	assert.Equal(t, 0, result.LateMins)
}

// Shift-level grace wins over the policy grace when both are set.
func TestComputeDay_ShiftGracePrecedence(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	shiftGrace := 5
	s := dayShift()
	s.GraceLateMins = &shiftGrace

	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      s,
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 10), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 18, 0), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.True(t, result.IsLate)
	assert.Equal(t, 10, result.LateMins)
}

func TestComputeDay_NoPunches(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     standardPolicy(),
	}

	result := ComputeDay(in)
	assert.Equal(t, attendance.StatusAbsent, result.Status)
	assert.Nil(t, result.FirstIn)
	assert.Nil(t, result.LastOut)

	in.HasApprovedLeave = true
	result = ComputeDay(in)
	assert.Equal(t, attendance.StatusLeave, result.Status)
}

func TestComputeDay_HolidayShortCircuits(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     standardPolicy(),
		IsHoliday:  true,
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 18, 0), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.Equal(t, attendance.StatusHoliday, result.Status)
	assert.Equal(t, attendance.DayTypeHoliday, result.DayType)
	assert.Equal(t, 0, result.TotalWorkMins)
	assert.False(t, result.IsLate)
}

func TestComputeDay_WeeklyOff(t *testing.T) {
	// 2026-03-01 is a Sunday.
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     standardPolicy(),
		WeeklyOff: &shift.WeeklyOffPattern{
			PatternType: shift.PatternTypeFixed,
			Rules:       shift.OffRules{DaysOff: []int{0}},
		},
	}

	result := ComputeDay(in)

	assert.Equal(t, attendance.StatusWeeklyOff, result.Status)
	assert.Equal(t, attendance.DayTypeWeeklyOff, result.DayType)
}

// A night shift's OUT punch lands on the next calendar day but still belongs
// to the shift's start date.
func TestComputeDay_NextDayShiftAttribution(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	nextDay := date.AddDate(0, 0, 1)
	night := &shift.Shift{
		ID:        "shift-night",
		CompanyID: "company-1",
		Name:      "Night",
		StartTime: "22:00",
		EndTime:   "06:00",
		IsNextDay: true,
		ShiftType: shift.ShiftTypeNight,
	}

	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      night,
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 22, 5), punch.DirectionIn),
			punchAt("emp-1", nextDay, at(nextDay, 5, 50), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	require.NotNil(t, result.FirstIn)
	require.NotNil(t, result.LastOut)
	assert.Equal(t, at(date, 22, 5), *result.FirstIn)
	assert.Equal(t, at(nextDay, 5, 50), *result.LastOut)
	assert.Equal(t, 465, result.TotalWorkMins)
	assert.Equal(t, attendance.StatusHalfDay, result.Status)
}

// A punch after the night shift's end window belongs to the next attendance
// date, not this one.
func TestComputeDay_NextDayShiftCutoff(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	nextDay := date.AddDate(0, 0, 1)
	night := &shift.Shift{
		ID:        "shift-night",
		CompanyID: "company-1",
		StartTime: "22:00",
		EndTime:   "06:00",
		IsNextDay: true,
	}

	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      night,
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 22, 5), punch.DirectionIn),
			punchAt("emp-1", nextDay, at(nextDay, 9, 0), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	require.NotNil(t, result.FirstIn)
	assert.Nil(t, result.LastOut)
}

func TestComputeDay_HalfDayStatus(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 13, 30), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.Equal(t, 270, result.TotalWorkMins)
	assert.Equal(t, attendance.StatusHalfDay, result.Status)
}

// Below the half-day threshold the status stays present; the shortfall
// surfaces as a Short Hours tag instead.
func TestComputeDay_ShortHoursTag(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := standardPolicy()
	p.Exceptions.ShortHours = policy.ExceptionRule{Enabled: true}

	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     p,
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 12, 0), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.Equal(t, 180, result.TotalWorkMins)
	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.Contains(t, result.ExceptionTags, attendance.TagShortHours)
}

func TestComputeDay_EarlyExitTag(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := standardPolicy()
	p.Exceptions.EarlyExit = policy.ExceptionRule{Enabled: true, GraceMins: 10}

	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     p,
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 17, 30), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)
	assert.Contains(t, result.ExceptionTags, attendance.TagEarlyExit)

	// Leaving inside the grace window carries no tag.
	in.Punches[1] = punchAt("emp-1", date, at(date, 17, 55), punch.DirectionOut)
	result = ComputeDay(in)
	assert.Empty(t, result.ExceptionTags)
}

func TestComputeDay_Overtime(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := standardPolicy()
	p.Overtime = policy.OvertimeSettings{
		IsApplicable:    true,
		MinOTMinsPerDay: 30,
		MaxOTMinsPerDay: 120,
	}

	base := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      dayShift(),
		Policy:     p,
	}

	// 20 minutes over the scheduled window is below the daily minimum.
	base.Punches = []punch.Punch{
		punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
		punchAt("emp-1", date, at(date, 18, 20), punch.DirectionOut),
	}
	assert.Equal(t, 0, ComputeDay(base).OTMins)

	// 60 minutes over counts in full.
	base.Punches = []punch.Punch{
		punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
		punchAt("emp-1", date, at(date, 19, 0), punch.DirectionOut),
	}
	assert.Equal(t, 60, ComputeDay(base).OTMins)

	// 3 hours over is capped at the daily maximum.
	base.Punches = []punch.Punch{
		punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
		punchAt("emp-1", date, at(date, 21, 0), punch.DirectionOut),
	}
	assert.Equal(t, 120, ComputeDay(base).OTMins)
}

func TestComputeDay_UnscheduledDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 10, 0), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 16, 0), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.False(t, result.IsLate)
	assert.Equal(t, 0, result.OTMins)
	assert.Empty(t, result.ExceptionTags)
	assert.Nil(t, result.ShiftID)
}

func TestComputeDay_BreakDeduction(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s := dayShift()
	s.BreakDurationMins = 60

	in := ComputeInput{
		CompanyID:  "company-1",
		EmployeeID: "emp-1",
		Date:       date,
		Shift:      s,
		Policy:     standardPolicy(),
		Punches: []punch.Punch{
			punchAt("emp-1", date, at(date, 9, 0), punch.DirectionIn),
			punchAt("emp-1", date, at(date, 18, 0), punch.DirectionOut),
		},
	}

	result := ComputeDay(in)

	assert.Equal(t, 480, result.TotalWorkMins)
	assert.Equal(t, attendance.StatusPresent, result.Status)
}
