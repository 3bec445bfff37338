package punch

import (
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type RecordPunchRequest struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"`
	Timestamp  string   `json:"timestamp"`
	Direction  string   `json:"direction"`
	Source     string   `json:"source"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	// LocationDenied marks a device that refused the GPS permission prompt.
	LocationDenied bool `json:"location_denied"`
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be an ISO8601 datetime"})
	}
	if !validator.IsInSlice(r.Direction, []string{string(DirectionIn), string(DirectionOut)}) {
		errs = append(errs, validator.ValidationError{Field: "direction", Message: "direction must be IN or OUT"})
	}
	if !validator.IsInSlice(r.Source, []string{string(SourceWeb), string(SourceMobile), string(SourceBiometric), string(SourceManual)}) {
		errs = append(errs, validator.ValidationError{Field: "source", Message: "source must be web, mobile, biometric or manual"})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Source     *string
	Limit      int
	Page       int
}

type PunchResponse struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"`
	Timestamp  string   `json:"timestamp"`
	Direction  string   `json:"direction"`
	Source     string   `json:"source"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	GeoStatus  string   `json:"geo_status"`
}

type CreateGeoFenceRequest struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     *bool   `json:"is_active"`
}

func (r *CreateGeoFenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius_meters must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateGeoFenceRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *int     `json:"radius_meters"`
	IsActive     *bool    `json:"is_active"`
}

func (r *UpdateGeoFenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius_meters must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeoFenceResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
}
