package policy

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// OvertimeSettings is the JSONB overtime sub-configuration of a policy.
type OvertimeSettings struct {
	IsApplicable    bool `json:"is_applicable"`
	MinOTMinsPerDay int  `json:"min_ot_mins_per_day"`
	MaxOTMinsPerDay int  `json:"max_ot_mins_per_day"` // 0 means no cap
	IncludeBreaks   bool `json:"include_breaks"`
}

// Value implements driver.Valuer for database storage
func (o OvertimeSettings) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan implements sql.Scanner for database retrieval
func (o *OvertimeSettings) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan OvertimeSettings: invalid type")
	}
	return json.Unmarshal(bytes, o)
}

// ExceptionRule is one enable-flag/threshold pair of the policy's exception
// sub-rules.
type ExceptionRule struct {
	Enabled    bool `json:"enabled"`
	GraceMins  int  `json:"grace_mins"`
	MonthlyCap int  `json:"monthly_cap"` // advisory, 0 means no cap
}

// ExceptionRules is the JSONB exception sub-configuration of a policy.
type ExceptionRules struct {
	LateComing ExceptionRule `json:"late_coming"`
	EarlyExit  ExceptionRule `json:"early_exit"`
	ShortHours ExceptionRule `json:"short_hours"`
}

// Value implements driver.Valuer for database storage
func (e ExceptionRules) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan implements sql.Scanner for database retrieval
func (e *ExceptionRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ExceptionRules: invalid type")
	}
	return json.Unmarshal(bytes, e)
}

// AttendancePolicy is the company-level rule set that turns a day's punches
// into a status, lateness flags, overtime and exception tags.
type AttendancePolicy struct {
	ID                   string
	CompanyID            string
	Name                 string
	FullDayMins          int
	HalfDayMins          int
	GraceLateMins        int
	MaxLateMarksPerMonth int
	Overtime             OvertimeSettings
	Exceptions           ExceptionRules
	EffectiveFrom        time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
