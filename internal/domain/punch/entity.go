package punch

import "time"

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

type Source string

const (
	SourceWeb       Source = "web"
	SourceMobile    Source = "mobile"
	SourceBiometric Source = "biometric"
	SourceManual    Source = "manual"
)

// GeoStatus classifies the GPS fix of a punch against the company's
// geofences. It never blocks the punch itself.
type GeoStatus string

const (
	GeoStatusCaptured    GeoStatus = "captured"
	GeoStatusDenied      GeoStatus = "denied"
	GeoStatusOutOfRange  GeoStatus = "out_of_range"
	GeoStatusNotCaptured GeoStatus = "not_captured"
)

// Punch is one raw IN/OUT event in the append-only ledger. Punches are never
// mutated; corrections happen on the daily attendance record.
type Punch struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time // attendance calendar date the device reported
	Timestamp  time.Time
	Direction  Direction
	Source     Source
	Latitude   *float64
	Longitude  *float64
	GeoStatus  GeoStatus
	CreatedAt  time.Time
}

// GeoFenceLocation is an office location used only to classify punch GPS
// status.
type GeoFenceLocation struct {
	ID           string
	CompanyID    string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
