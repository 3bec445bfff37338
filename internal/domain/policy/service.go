package policy

import "context"

// PolicyService manages attendance policy masters, versioned by
// EffectiveFrom.
type PolicyService interface {
	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	GetPolicy(ctx context.Context, id string) (PolicyResponse, error)
	ListPolicies(ctx context.Context) ([]PolicyResponse, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
	DeletePolicy(ctx context.Context, id string) error
}
