package regularisation

import "errors"

var (
	ErrRequestNotFound = errors.New("regularisation request not found")

	// ErrInvalidTransition covers every attempt to move a request against
	// the linear state machine, including acting on a terminal request.
	ErrInvalidTransition = errors.New("regularisation request cannot make this transition")

	// ErrActiveRequestExists enforces one active request per employee-day.
	// A second submission is a conflict, never a silent queue.
	ErrActiveRequestExists = errors.New("an active regularisation request already exists for this date")

	ErrNotRequestOwner = errors.New("regularisation request belongs to another employee")

	ErrNotReportingManager = errors.New("only the reporting manager can act on this request")
)
