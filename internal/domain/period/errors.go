package period

import "errors"

var (
	// ErrPeriodClosed is the distinguishable policy-conflict error for any
	// mutation targeting a date inside a closed period. Callers surface it
	// as "period locked", never as a generic failure.
	ErrPeriodClosed = errors.New("attendance period is closed for this date")

	ErrClosureNotFound = errors.New("period closure not found")
)
