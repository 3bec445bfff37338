package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	patternRepo shift.WeeklyOffPatternRepository
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	patternRepo shift.WeeklyOffPatternRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		ShiftRepository: shiftRepo,
		patternRepo:     patternRepo,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		CompanyID:         identity.CompanyID,
		Name:              req.Name,
		Code:              req.Code,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		IsNextDay:         req.IsNextDay,
		BreakDurationMins: req.BreakDurationMins,
		GraceLateMins:     req.GraceLateMins,
		GraceEarlyMins:    req.GraceEarlyMins,
		ShiftType:         shift.ShiftType(req.ShiftType),
		EffectiveFrom:     effectiveFrom,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return mapShiftToResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return mapShiftToResponse(sh), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.ShiftRepository.List(ctx, identity.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}
	return responses, nil
}

// UpdateShift implements shift.ShiftService. Shifts referenced by locked
// attendance rows are immutable; historical computations must stay
// reproducible.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	referenced, err := s.ShiftRepository.IsReferencedByLockedAttendance(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to check locked references: %w", err)
	}
	if referenced {
		return shift.ShiftResponse{}, shift.ErrShiftReferencedByLockedPeriod
	}

	if req.Name != nil {
		sh.Name = *req.Name
	}
	if req.StartTime != nil {
		sh.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sh.EndTime = *req.EndTime
	}
	if req.IsNextDay != nil {
		sh.IsNextDay = *req.IsNextDay
	}
	if req.BreakDurationMins != nil {
		sh.BreakDurationMins = *req.BreakDurationMins
	}
	if req.GraceLateMins != nil {
		sh.GraceLateMins = req.GraceLateMins
	}
	if req.GraceEarlyMins != nil {
		sh.GraceEarlyMins = req.GraceEarlyMins
	}
	if req.ShiftType != nil {
		sh.ShiftType = shift.ShiftType(*req.ShiftType)
	}

	if err := s.ShiftRepository.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return mapShiftToResponse(sh), nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.ShiftRepository.GetByID(ctx, id, identity.CompanyID); err != nil {
		return err
	}

	referenced, err := s.ShiftRepository.IsReferencedByLockedAttendance(ctx, id, identity.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to check locked references: %w", err)
	}
	if referenced {
		return shift.ErrShiftReferencedByLockedPeriod
	}

	if err := s.ShiftRepository.Delete(ctx, id, identity.CompanyID); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// CreatePattern implements shift.ShiftService.
func (s *ShiftServiceImpl) CreatePattern(ctx context.Context, req shift.CreateWeeklyOffPatternRequest) (shift.WeeklyOffPatternResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.WeeklyOffPatternResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return shift.WeeklyOffPatternResponse{}, err
	}

	created, err := s.patternRepo.Create(ctx, shift.WeeklyOffPattern{
		CompanyID:   identity.CompanyID,
		Name:        req.Name,
		PatternType: shift.PatternType(req.PatternType),
		Rules: shift.OffRules{
			DaysOff:      req.DaysOff,
			WeeksOfMonth: req.WeeksOfMonth,
		},
	})
	if err != nil {
		return shift.WeeklyOffPatternResponse{}, fmt.Errorf("failed to create weekly off pattern: %w", err)
	}
	return mapPatternToResponse(created), nil
}

// GetPattern implements shift.ShiftService.
func (s *ShiftServiceImpl) GetPattern(ctx context.Context, id string) (shift.WeeklyOffPatternResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return shift.WeeklyOffPatternResponse{}, err
	}

	pattern, err := s.patternRepo.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return shift.WeeklyOffPatternResponse{}, err
	}
	return mapPatternToResponse(pattern), nil
}

// ListPatterns implements shift.ShiftService.
func (s *ShiftServiceImpl) ListPatterns(ctx context.Context) ([]shift.WeeklyOffPatternResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patterns, err := s.patternRepo.List(ctx, identity.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly off patterns: %w", err)
	}

	responses := make([]shift.WeeklyOffPatternResponse, 0, len(patterns))
	for _, pattern := range patterns {
		responses = append(responses, mapPatternToResponse(pattern))
	}
	return responses, nil
}

// UpdatePattern implements shift.ShiftService. Pattern type is immutable
// once created; a different rotation scheme is a new pattern.
func (s *ShiftServiceImpl) UpdatePattern(ctx context.Context, req shift.UpdateWeeklyOffPatternRequest) (shift.WeeklyOffPatternResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.WeeklyOffPatternResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return shift.WeeklyOffPatternResponse{}, err
	}

	pattern, err := s.patternRepo.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return shift.WeeklyOffPatternResponse{}, err
	}

	if req.Name != nil {
		pattern.Name = *req.Name
	}
	if len(req.DaysOff) > 0 {
		pattern.Rules.DaysOff = req.DaysOff
	}
	if len(req.WeeksOfMonth) > 0 {
		pattern.Rules.WeeksOfMonth = req.WeeksOfMonth
	}

	if err := s.patternRepo.Update(ctx, pattern); err != nil {
		return shift.WeeklyOffPatternResponse{}, fmt.Errorf("failed to update weekly off pattern: %w", err)
	}
	return mapPatternToResponse(pattern), nil
}

// DeletePattern implements shift.ShiftService.
func (s *ShiftServiceImpl) DeletePattern(ctx context.Context, id string) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.patternRepo.GetByID(ctx, id, identity.CompanyID); err != nil {
		return err
	}
	if err := s.patternRepo.Delete(ctx, id, identity.CompanyID); err != nil {
		return fmt.Errorf("failed to delete weekly off pattern: %w", err)
	}
	return nil
}

func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:                sh.ID,
		Name:              sh.Name,
		Code:              sh.Code,
		StartTime:         sh.StartTime,
		EndTime:           sh.EndTime,
		IsNextDay:         sh.IsNextDay,
		BreakDurationMins: sh.BreakDurationMins,
		GraceLateMins:     sh.GraceLateMins,
		GraceEarlyMins:    sh.GraceEarlyMins,
		ShiftType:         string(sh.ShiftType),
		EffectiveFrom:     sh.EffectiveFrom.Format("2006-01-02"),
	}
}

func mapPatternToResponse(p shift.WeeklyOffPattern) shift.WeeklyOffPatternResponse {
	return shift.WeeklyOffPatternResponse{
		ID:           p.ID,
		Name:         p.Name,
		PatternType:  string(p.PatternType),
		DaysOff:      p.Rules.DaysOff,
		WeeksOfMonth: p.Rules.WeeksOfMonth,
	}
}
