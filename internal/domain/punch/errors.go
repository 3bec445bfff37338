package punch

import "errors"

var (
	ErrPunchNotFound    = errors.New("punch not found")
	ErrGeoFenceNotFound = errors.New("geofence location not found")
)
