package regularisation

import "context"

// RegularisationService drives the correction workflow state machine.
// Every creation and transition checks the target date against period
// closures first; a closed period rejects the action outright.
type RegularisationService interface {
	// Create saves a new request as draft, or submits it directly when the
	// employee chooses to.
	Create(ctx context.Context, req CreateRequest) (RequestResponse, error)

	// Submit moves a draft into the manager approval stage.
	Submit(ctx context.Context, id string) (RequestResponse, error)

	// ManagerAction approves (to HR stage) or rejects (terminal) a request
	// pending manager approval.
	ManagerAction(ctx context.Context, req ManagerActionRequest) (RequestResponse, error)

	// HRAction performs the terminal transition. Approval atomically
	// rewrites the target daily attendance row and recomputes it.
	HRAction(ctx context.Context, req HRActionRequest) (RequestResponse, error)

	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	GetMyRequests(ctx context.Context, filter ListFilter) (ListResponse, error)

	// ListPending returns requests awaiting the caller's stage: the manager
	// queue for managers, the HR queue for HR.
	ListPending(ctx context.Context, filter ListFilter) (ListResponse, error)
}
