package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrRecordLocked guards finalised rows. Only an administrative unlock
	// could clear it, and no such operation exists in the engine.
	ErrRecordLocked = errors.New("attendance record is locked")
)
