package shift

import "context"

// ShiftService manages shift timing masters and weekly-off patterns. Masters
// referenced by locked attendance rows are immutable.
type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error

	CreatePattern(ctx context.Context, req CreateWeeklyOffPatternRequest) (WeeklyOffPatternResponse, error)
	GetPattern(ctx context.Context, id string) (WeeklyOffPatternResponse, error)
	ListPatterns(ctx context.Context) ([]WeeklyOffPatternResponse, error)
	UpdatePattern(ctx context.Context, req UpdateWeeklyOffPatternRequest) (WeeklyOffPatternResponse, error)
	DeletePattern(ctx context.Context, id string) error
}
