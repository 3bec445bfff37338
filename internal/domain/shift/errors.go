package shift

import "errors"

var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrPatternNotFound = errors.New("weekly off pattern not found")

	// ErrShiftReferencedByLockedPeriod guards shift masters referenced by
	// locked attendance rows against mutation.
	ErrShiftReferencedByLockedPeriod = errors.New("shift is referenced by a locked attendance period")
)
