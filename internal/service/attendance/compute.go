package attendance

import (
	"sort"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
)

// ComputeInput is everything the daily aggregation needs. ComputeDay is a
// pure function of this struct: same input, same output, so finalisation can
// safely re-process any range.
type ComputeInput struct {
	CompanyID  string
	EmployeeID string
	Date       time.Time
	Punches    []punch.Punch
	Shift      *shift.Shift
	Policy     *policy.AttendancePolicy
	WeeklyOff  *shift.WeeklyOffPattern
	// IsHoliday comes from the company holiday calendar, an external
	// master.
	IsHoliday        bool
	HasApprovedLeave bool
}

// ComputeDay derives one DailyAttendance row from the day's punches and the
// resolved shift/policy. A nil shift or policy means the day is unscheduled:
// no lateness or overtime is evaluated, but the day is still
// absence-eligible.
func ComputeDay(in ComputeInput) attendance.DailyAttendance {
	date := truncateToDay(in.Date)

	att := attendance.DailyAttendance{
		CompanyID:        in.CompanyID,
		EmployeeID:       in.EmployeeID,
		Date:             date,
		DayType:          attendance.DayTypeWorking,
		ProcessingStatus: attendance.ProcessingStatusPending,
		Source:           attendance.SourceSystem,
	}
	if in.Shift != nil {
		att.ShiftID = &in.Shift.ID
	}

	// Weekly-off/holiday days short-circuit: status is forced and the
	// worked-minute/exception computation is skipped. Punches stay in the
	// ledger for audit.
	if in.IsHoliday {
		att.DayType = attendance.DayTypeHoliday
		att.Status = attendance.StatusHoliday
		return att
	}
	if in.WeeklyOff != nil && in.WeeklyOff.IsOffDay(date) {
		att.DayType = attendance.DayTypeWeeklyOff
		att.Status = attendance.StatusWeeklyOff
		return att
	}

	firstIn, lastOut := punchWindow(date, in.Punches, in.Shift)
	att.FirstIn = firstIn
	att.LastOut = lastOut

	if firstIn == nil {
		if in.HasApprovedLeave {
			att.Status = attendance.StatusLeave
		} else {
			att.Status = attendance.StatusAbsent
		}
		return att
	}

	spanMins := 0
	if lastOut != nil && lastOut.After(*firstIn) {
		spanMins = int(lastOut.Sub(*firstIn).Minutes())
	}
	workMins := spanMins
	if in.Shift != nil {
		workMins -= in.Shift.BreakDurationMins
	}
	if workMins < 0 {
		workMins = 0
	}
	att.TotalWorkMins = workMins

	att.Status = statusFor(workMins, in.Policy)

	lateBy := 0
	if in.Shift != nil {
		lateBy = minutesAfter(*firstIn, in.Shift.StartOn(date))
		grace := lateGraceMins(in.Shift, in.Policy)
		if lateBy > grace {
			att.IsLate = true
			att.LateMins = lateBy
		}
	}

	att.OTMins = overtimeMins(spanMins, workMins, in.Shift, in.Policy)
	att.ExceptionTags = exceptionTags(workMins, lateBy, lastOut, date, in.Shift, in.Policy)

	return att
}

// punchWindow picks the earliest IN and latest OUT belonging to the
// attendance date. For next-day shifts, punches on the following calendar
// day before the shift end still belong to this date.
func punchWindow(date time.Time, punches []punch.Punch, s *shift.Shift) (*time.Time, *time.Time) {
	nextDay := date.AddDate(0, 0, 1)
	cutoffMins := 0
	if s != nil && s.IsNextDay {
		cutoffMins = s.EndMinuteOfDay() - 24*60
	}

	relevant := make([]punch.Punch, 0, len(punches))
	for _, p := range punches {
		pDate := truncateToDay(p.Date)
		switch {
		case pDate.Equal(date):
			relevant = append(relevant, p)
		case pDate.Equal(nextDay) && cutoffMins > 0:
			if minuteOfDay(p.Timestamp) <= cutoffMins {
				relevant = append(relevant, p)
			}
		}
	}
	sort.Slice(relevant, func(i, j int) bool {
		return relevant[i].Timestamp.Before(relevant[j].Timestamp)
	})

	var firstIn, lastOut *time.Time
	for i := range relevant {
		p := relevant[i]
		switch p.Direction {
		case punch.DirectionIn:
			if firstIn == nil {
				ts := p.Timestamp
				firstIn = &ts
			}
		case punch.DirectionOut:
			ts := p.Timestamp
			lastOut = &ts
		}
	}
	return firstIn, lastOut
}

func statusFor(workMins int, p *policy.AttendancePolicy) attendance.Status {
	if p == nil {
		// Unscheduled day with a punch: presence is all we can say.
		return attendance.StatusPresent
	}
	switch {
	case workMins >= p.FullDayMins:
		return attendance.StatusPresent
	case workMins >= p.HalfDayMins:
		return attendance.StatusHalfDay
	default:
		// Below half-day stays present; the shortfall surfaces as a
		// Short Hours exception tag instead of a status change.
		return attendance.StatusPresent
	}
}

// lateGraceMins applies the shift-level grace, falling back to the policy
// grace when the shift does not define one.
func lateGraceMins(s *shift.Shift, p *policy.AttendancePolicy) int {
	if s != nil && s.GraceLateMins != nil {
		return *s.GraceLateMins
	}
	if p != nil {
		return p.GraceLateMins
	}
	return 0
}

func overtimeMins(spanMins, workMins int, s *shift.Shift, p *policy.AttendancePolicy) int {
	if s == nil || p == nil || !p.Overtime.IsApplicable {
		return 0
	}
	basis := workMins
	if p.Overtime.IncludeBreaks {
		basis = spanMins
	}
	ot := basis - s.ScheduledWorkMins()
	if ot <= 0 {
		return 0
	}
	// Below the daily minimum, overtime is recorded as zero, not partial.
	if ot < p.Overtime.MinOTMinsPerDay {
		return 0
	}
	if p.Overtime.MaxOTMinsPerDay > 0 && ot > p.Overtime.MaxOTMinsPerDay {
		return p.Overtime.MaxOTMinsPerDay
	}
	return ot
}

// exceptionTags evaluates the policy's three exception sub-rules
// independently, in a fixed order so recomputation is byte-identical.
func exceptionTags(workMins, lateBy int, lastOut *time.Time, date time.Time, s *shift.Shift, p *policy.AttendancePolicy) attendance.ExceptionTags {
	if p == nil {
		return nil
	}
	var tags attendance.ExceptionTags

	if rule := p.Exceptions.LateComing; rule.Enabled && s != nil && lateBy > rule.GraceMins {
		tags = append(tags, attendance.TagLateComing)
	}

	if rule := p.Exceptions.EarlyExit; rule.Enabled && s != nil && lastOut != nil {
		earlyBy := minutesAfter(s.EndOn(date), *lastOut)
		grace := rule.GraceMins
		if s.GraceEarlyMins != nil {
			grace = *s.GraceEarlyMins
		}
		if earlyBy > grace {
			tags = append(tags, attendance.TagEarlyExit)
		}
	}

	if rule := p.Exceptions.ShortHours; rule.Enabled && workMins+rule.GraceMins < p.HalfDayMins {
		tags = append(tags, attendance.TagShortHours)
	}

	return tags
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// minutesAfter returns how many whole minutes t is past ref, zero when t is
// not after ref.
func minutesAfter(t, ref time.Time) int {
	d := t.Sub(ref)
	if d <= 0 {
		return 0
	}
	return int(d.Minutes())
}
