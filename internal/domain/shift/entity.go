package shift

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type ShiftType string

const (
	ShiftTypeRegular    ShiftType = "regular"
	ShiftTypeRotational ShiftType = "rotational"
	ShiftTypeNight      ShiftType = "night"
)

// Shift is a company-level shift timing master record. Start and end times
// are wall-clock "HH:MM" strings; IsNextDay marks shifts that end on the
// following calendar day.
type Shift struct {
	ID                string
	CompanyID         string
	Name              string
	Code              string
	StartTime         string // "HH:MM"
	EndTime           string // "HH:MM"
	IsNextDay         bool
	BreakDurationMins int
	GraceLateMins     *int
	GraceEarlyMins    *int
	ShiftType         ShiftType
	EffectiveFrom     time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// parseClock returns the minute-of-day for an "HH:MM" string.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return h*60 + m, nil
}

// StartMinuteOfDay returns the shift start as minutes past midnight.
func (s Shift) StartMinuteOfDay() int {
	v, err := parseClock(s.StartTime)
	if err != nil {
		return 0
	}
	return v
}

// EndMinuteOfDay returns the shift end as minutes past midnight of the
// shift's start date. For next-day shifts this exceeds 1440.
func (s Shift) EndMinuteOfDay() int {
	v, err := parseClock(s.EndTime)
	if err != nil {
		return 0
	}
	if s.IsNextDay {
		v += 24 * 60
	}
	return v
}

// ScheduledWorkMins is the expected working minutes for the shift: the
// timing window minus the break allowance, never negative.
func (s Shift) ScheduledWorkMins() int {
	window := s.EndMinuteOfDay() - s.StartMinuteOfDay()
	if window < 0 {
		window = 0
	}
	worked := window - s.BreakDurationMins
	if worked < 0 {
		return 0
	}
	return worked
}

// StartOn anchors the shift start to a concrete calendar date.
func (s Shift) StartOn(date time.Time) time.Time {
	mins := s.StartMinuteOfDay()
	return time.Date(date.Year(), date.Month(), date.Day(), mins/60, mins%60, 0, 0, date.Location())
}

// EndOn anchors the shift end to a concrete calendar date, rolling into the
// next day for next-day shifts.
func (s Shift) EndOn(date time.Time) time.Time {
	mins := s.EndMinuteOfDay()
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(mins) * time.Minute)
}

type PatternType string

const (
	PatternTypeFixed      PatternType = "fixed"
	PatternTypeAlternate  PatternType = "alternate"
	PatternTypeRotational PatternType = "rotational"
)

// OffRules holds the JSONB rule payload of a weekly-off pattern.
type OffRules struct {
	// DaysOff are weekdays (0=Sunday .. 6=Saturday) that are non-working.
	DaysOff []int `json:"days_off"`
	// WeeksOfMonth restricts alternate patterns to specific week-of-month
	// indices (1-based). Ignored for fixed patterns.
	WeeksOfMonth []int `json:"weeks_of_month,omitempty"`
}

// Value implements driver.Valuer for database storage
func (r OffRules) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for database retrieval
func (r *OffRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan OffRules: invalid type")
	}
	return json.Unmarshal(bytes, r)
}

// WeeklyOffPattern defines which calendar days are non-working by default.
type WeeklyOffPattern struct {
	ID          string
	CompanyID   string
	Name        string
	PatternType PatternType
	Rules       OffRules
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// weekOfMonth returns the 1-based week index of the date within its month.
func weekOfMonth(date time.Time) int {
	return (date.Day()-1)/7 + 1
}

// IsOffDay reports whether the date is a weekly off under this pattern.
// Rotational patterns carry their rotation state outside the engine and are
// evaluated like fixed patterns here.
func (p WeeklyOffPattern) IsOffDay(date time.Time) bool {
	weekday := int(date.Weekday())
	dayMatches := false
	for _, d := range p.Rules.DaysOff {
		if d == weekday {
			dayMatches = true
			break
		}
	}
	if !dayMatches {
		return false
	}

	if p.PatternType == PatternTypeAlternate {
		if len(p.Rules.WeeksOfMonth) == 0 {
			return false
		}
		week := weekOfMonth(date)
		for _, w := range p.Rules.WeeksOfMonth {
			if w == week {
				return true
			}
		}
		return false
	}

	return true
}
