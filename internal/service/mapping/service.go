package mapping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/employee"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type MappingServiceImpl struct {
	mapping.MappingRepository
	employee.EmployeeRepository
	policyRepo  policy.PolicyRepository
	shiftRepo   shift.ShiftRepository
	patternRepo shift.WeeklyOffPatternRepository
}

func NewMappingService(
	mappingRepo mapping.MappingRepository,
	employeeRepo employee.EmployeeRepository,
	policyRepo policy.PolicyRepository,
	shiftRepo shift.ShiftRepository,
	patternRepo shift.WeeklyOffPatternRepository,
) mapping.MappingService {
	return &MappingServiceImpl{
		MappingRepository:  mappingRepo,
		EmployeeRepository: employeeRepo,
		policyRepo:         policyRepo,
		shiftRepo:          shiftRepo,
		patternRepo:        patternRepo,
	}
}

// Resolve implements mapping.Resolver. Precedence is an explicit ranked
// lookup: Employee beats Designation beats Department; within a scope the
// latest effective_from on or before the date wins. Absence of a mapping is
// a valid unscheduled state, never an error.
func (s *MappingServiceImpl) Resolve(ctx context.Context, employeeID string, companyID string, date time.Time) (mapping.ResolvedAssignment, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return mapping.ResolvedAssignment{}, nil
		}
		return mapping.ResolvedAssignment{}, fmt.Errorf("failed to get employee: %w", err)
	}

	refs := mapping.ScopeRefs{
		EmployeeID:    emp.ID,
		DesignationID: emp.DesignationID,
		DepartmentID:  emp.DepartmentID,
	}
	candidates, err := s.MappingRepository.ListCandidates(ctx, companyID, refs, date)
	if err != nil {
		return mapping.ResolvedAssignment{}, fmt.Errorf("failed to list mapping candidates: %w", err)
	}

	best := pickMapping(candidates)
	if best == nil {
		return mapping.ResolvedAssignment{}, nil
	}

	resolved := mapping.ResolvedAssignment{Mapping: best}

	if best.PolicyID != nil {
		p, err := s.policyRepo.GetByID(ctx, *best.PolicyID, companyID)
		if err == nil {
			resolved.Policy = &p
		} else if !errors.Is(err, policy.ErrPolicyNotFound) {
			return mapping.ResolvedAssignment{}, fmt.Errorf("failed to get policy: %w", err)
		}
	}
	if best.ShiftID != nil {
		sh, err := s.shiftRepo.GetByID(ctx, *best.ShiftID, companyID)
		if err == nil {
			resolved.Shift = &sh
		} else if !errors.Is(err, shift.ErrShiftNotFound) {
			return mapping.ResolvedAssignment{}, fmt.Errorf("failed to get shift: %w", err)
		}
	}
	if best.WeeklyOffPatternID != nil {
		p, err := s.patternRepo.GetByID(ctx, *best.WeeklyOffPatternID, companyID)
		if err == nil {
			resolved.WeeklyOff = &p
		} else if !errors.Is(err, shift.ErrPatternNotFound) {
			return mapping.ResolvedAssignment{}, fmt.Errorf("failed to get weekly off pattern: %w", err)
		}
	}

	return resolved, nil
}

// pickMapping selects the winning candidate: lowest scope priority first,
// then the latest effective date.
func pickMapping(candidates []mapping.AttendanceMapping) *mapping.AttendanceMapping {
	var best *mapping.AttendanceMapping
	for i := range candidates {
		c := &candidates[i]
		if best == nil {
			best = c
			continue
		}
		if c.Scope.Priority() < best.Scope.Priority() {
			best = c
			continue
		}
		if c.Scope.Priority() == best.Scope.Priority() && c.EffectiveFrom.After(best.EffectiveFrom) {
			best = c
		}
	}
	return best
}

// CreateMapping implements mapping.MappingService.
func (s *MappingServiceImpl) CreateMapping(ctx context.Context, req mapping.CreateMappingRequest) (mapping.MappingResponse, error) {
	if err := req.Validate(); err != nil {
		return mapping.MappingResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return mapping.MappingResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	entity := mapping.AttendanceMapping{
		CompanyID:          identity.CompanyID,
		Scope:              mapping.Scope(req.Scope),
		ScopeRefID:         req.ScopeRefID,
		PolicyID:           req.PolicyID,
		ShiftID:            req.ShiftID,
		WeeklyOffPatternID: req.WeeklyOffPatternID,
		EffectiveFrom:      effectiveFrom,
	}

	created, err := s.MappingRepository.Create(ctx, entity)
	if err != nil {
		return mapping.MappingResponse{}, fmt.Errorf("failed to create mapping: %w", err)
	}
	return mapToResponse(created), nil
}

// GetMapping implements mapping.MappingService.
func (s *MappingServiceImpl) GetMapping(ctx context.Context, id string) (mapping.MappingResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return mapping.MappingResponse{}, err
	}

	m, err := s.MappingRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, mapping.ErrMappingNotFound) {
			return mapping.MappingResponse{}, mapping.ErrMappingNotFound
		}
		return mapping.MappingResponse{}, fmt.Errorf("failed to get mapping: %w", err)
	}
	return mapToResponse(m), nil
}

// ListMappings implements mapping.MappingService.
func (s *MappingServiceImpl) ListMappings(ctx context.Context) ([]mapping.MappingResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	mappings, err := s.MappingRepository.List(ctx, identity.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}

	responses := make([]mapping.MappingResponse, 0, len(mappings))
	for _, m := range mappings {
		responses = append(responses, mapToResponse(m))
	}
	return responses, nil
}

// UpdateMapping implements mapping.MappingService.
func (s *MappingServiceImpl) UpdateMapping(ctx context.Context, req mapping.UpdateMappingRequest) (mapping.MappingResponse, error) {
	if err := req.Validate(); err != nil {
		return mapping.MappingResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return mapping.MappingResponse{}, err
	}

	m, err := s.MappingRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		if errors.Is(err, mapping.ErrMappingNotFound) {
			return mapping.MappingResponse{}, mapping.ErrMappingNotFound
		}
		return mapping.MappingResponse{}, fmt.Errorf("failed to get mapping: %w", err)
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	m.PolicyID = req.PolicyID
	m.ShiftID = req.ShiftID
	m.WeeklyOffPatternID = req.WeeklyOffPatternID
	m.EffectiveFrom = effectiveFrom

	if err := s.MappingRepository.Update(ctx, m); err != nil {
		return mapping.MappingResponse{}, fmt.Errorf("failed to update mapping: %w", err)
	}
	return mapToResponse(m), nil
}

// DeleteMapping implements mapping.MappingService.
func (s *MappingServiceImpl) DeleteMapping(ctx context.Context, id string) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.MappingRepository.Delete(ctx, id, identity.CompanyID); err != nil {
		if errors.Is(err, mapping.ErrMappingNotFound) {
			return mapping.ErrMappingNotFound
		}
		return fmt.Errorf("failed to delete mapping: %w", err)
	}
	return nil
}

// ResolveForDate implements mapping.MappingService.
func (s *MappingServiceImpl) ResolveForDate(ctx context.Context, employeeID string, dateStr string) (mapping.ResolveResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return mapping.ResolveResponse{}, err
	}

	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return mapping.ResolveResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	resolved, err := s.Resolve(ctx, employeeID, identity.CompanyID, date)
	if err != nil {
		return mapping.ResolveResponse{}, err
	}

	resp := mapping.ResolveResponse{
		EmployeeID: employeeID,
		Date:       dateStr,
	}
	if resolved.Mapping != nil {
		scope := string(resolved.Mapping.Scope)
		resp.Scope = &scope
	}
	if resolved.Policy != nil {
		resp.PolicyID = &resolved.Policy.ID
		resp.PolicyName = &resolved.Policy.Name
	}
	if resolved.Shift != nil {
		resp.ShiftID = &resolved.Shift.ID
		resp.ShiftName = &resolved.Shift.Name
	}
	if resolved.WeeklyOff != nil {
		resp.WeeklyOffPatternID = &resolved.WeeklyOff.ID
		resp.IsWeeklyOff = resolved.WeeklyOff.IsOffDay(date)
	}
	return resp, nil
}

func mapToResponse(m mapping.AttendanceMapping) mapping.MappingResponse {
	return mapping.MappingResponse{
		ID:                 m.ID,
		Scope:              string(m.Scope),
		ScopeRefID:         m.ScopeRefID,
		PolicyID:           m.PolicyID,
		ShiftID:            m.ShiftID,
		WeeklyOffPatternID: m.WeeklyOffPatternID,
		EffectiveFrom:      m.EffectiveFrom.Format("2006-01-02"),
	}
}
