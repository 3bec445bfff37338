package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type DayType string

const (
	DayTypeWorking   DayType = "working"
	DayTypeWeeklyOff DayType = "weekly_off"
	DayTypeHoliday   DayType = "holiday"
)

type Status string

const (
	StatusPresent   Status = "present"
	StatusAbsent    Status = "absent"
	StatusHalfDay   Status = "half_day"
	StatusLeave     Status = "leave"
	StatusHoliday   Status = "holiday"
	StatusWeeklyOff Status = "weekly_off"
)

type ProcessingStatus string

const (
	ProcessingStatusPending   ProcessingStatus = "pending"
	ProcessingStatusProcessed ProcessingStatus = "processed"
)

// RecordSource tells how the row reached its current values.
type RecordSource string

const (
	SourceSystem      RecordSource = "system"
	SourceManual      RecordSource = "manual"
	SourceRegularised RecordSource = "regularised"
)

// Exception tags accumulated by policy evaluation. Evaluated independently;
// a day can carry any combination.
const (
	TagLateComing      = "Late Coming"
	TagEarlyExit       = "Early Exit"
	TagShortHours      = "Short Hours"
	TagExcessLateMarks = "Excess Late Marks"
)

// ExceptionTags is the JSONB tag list on a daily attendance row.
type ExceptionTags []string

// Value implements driver.Valuer for database storage
func (t ExceptionTags) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(t))
}

// Scan implements sql.Scanner for database retrieval
func (t *ExceptionTags) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ExceptionTags: invalid type")
	}
	return json.Unmarshal(bytes, (*[]string)(t))
}

func (t ExceptionTags) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// DailyAttendance is the single derived row per (employee, date). A locked
// row cannot be mutated by any engine path.
type DailyAttendance struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	Date             time.Time
	ShiftID          *string
	FirstIn          *time.Time
	LastOut          *time.Time
	TotalWorkMins    int
	DayType          DayType
	Status           Status
	IsLate           bool
	LateMins         int
	OTMins           int
	ExceptionTags    ExceptionTags
	ProcessingStatus ProcessingStatus
	IsLocked         bool
	Source           RecordSource
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}
