package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
)

type PolicyServiceImpl struct {
	policy.PolicyRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{
		PolicyRepository: policyRepo,
	}
}

// CreatePolicy implements policy.PolicyService.
func (s *PolicyServiceImpl) CreatePolicy(ctx context.Context, req policy.CreatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	created, err := s.PolicyRepository.Create(ctx, policy.AttendancePolicy{
		CompanyID:            identity.CompanyID,
		Name:                 req.Name,
		FullDayMins:          req.FullDayMins,
		HalfDayMins:          req.HalfDayMins,
		GraceLateMins:        req.GraceLateMins,
		MaxLateMarksPerMonth: req.MaxLateMarksPerMonth,
		Overtime:             req.Overtime,
		Exceptions:           req.Exceptions,
		EffectiveFrom:        effectiveFrom,
	})
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to create policy: %w", err)
	}
	return mapToResponse(created), nil
}

// GetPolicy implements policy.PolicyService.
func (s *PolicyServiceImpl) GetPolicy(ctx context.Context, id string) (policy.PolicyResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	p, err := s.PolicyRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return policy.PolicyResponse{}, err
	}
	return mapToResponse(p), nil
}

// ListPolicies implements policy.PolicyService.
func (s *PolicyServiceImpl) ListPolicies(ctx context.Context) ([]policy.PolicyResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	policies, err := s.PolicyRepository.List(ctx, identity.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	responses := make([]policy.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, mapToResponse(p))
	}
	return responses, nil
}

// UpdatePolicy implements policy.PolicyService. Historical reproducibility is
// handled by versioning on EffectiveFrom, so updates never touch rows already
// computed under an earlier version.
func (s *PolicyServiceImpl) UpdatePolicy(ctx context.Context, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	p, err := s.PolicyRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.FullDayMins != nil {
		p.FullDayMins = *req.FullDayMins
	}
	if req.HalfDayMins != nil {
		p.HalfDayMins = *req.HalfDayMins
	}
	if req.GraceLateMins != nil {
		p.GraceLateMins = *req.GraceLateMins
	}
	if req.MaxLateMarksPerMonth != nil {
		p.MaxLateMarksPerMonth = *req.MaxLateMarksPerMonth
	}
	if req.Overtime != nil {
		p.Overtime = *req.Overtime
	}
	if req.Exceptions != nil {
		p.Exceptions = *req.Exceptions
	}
	if p.HalfDayMins > p.FullDayMins {
		return policy.PolicyResponse{}, fmt.Errorf("half_day_mins must not exceed full_day_mins")
	}

	if err := s.PolicyRepository.Update(ctx, p); err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to update policy: %w", err)
	}
	return mapToResponse(p), nil
}

// DeletePolicy implements policy.PolicyService.
func (s *PolicyServiceImpl) DeletePolicy(ctx context.Context, id string) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.PolicyRepository.GetByID(ctx, id, identity.CompanyID); err != nil {
		return err
	}
	if err := s.PolicyRepository.Delete(ctx, id, identity.CompanyID); err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}
	return nil
}

func mapToResponse(p policy.AttendancePolicy) policy.PolicyResponse {
	return policy.PolicyResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		FullDayMins:          p.FullDayMins,
		HalfDayMins:          p.HalfDayMins,
		GraceLateMins:        p.GraceLateMins,
		MaxLateMarksPerMonth: p.MaxLateMarksPerMonth,
		Overtime:             p.Overtime,
		Exceptions:           p.Exceptions,
		EffectiveFrom:        p.EffectiveFrom.Format("2006-01-02"),
	}
}
