package regularisation

import (
	"context"
	"fmt"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/employee"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/regularisation"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/user"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
	svcattendance "github.com/smbgAlokk/BharatForce-sub002/internal/service/attendance"
)

type RegularisationServiceImpl struct {
	regularisation.RegularisationRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	resolver    mapping.Resolver
	closureRepo period.ClosureRepository
	shiftRepo   shift.ShiftRepository
	runTx       func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewRegularisationService(
	db *database.DB,
	requestRepo regularisation.RegularisationRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	resolver mapping.Resolver,
	closureRepo period.ClosureRepository,
	shiftRepo shift.ShiftRepository,
) regularisation.RegularisationService {
	return &RegularisationServiceImpl{
		RegularisationRepository: requestRepo,
		AttendanceRepository:     attendanceRepo,
		EmployeeRepository:       employeeRepo,
		resolver:                 resolver,
		closureRepo:              closureRepo,
		shiftRepo:                shiftRepo,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return database.WithTransaction(ctx, db, fn)
		},
	}
}

// guardPeriodOpen rejects any action targeting a date inside a closed
// period, regardless of the request's state.
func (s *RegularisationServiceImpl) guardPeriodOpen(ctx context.Context, companyID string, date time.Time) error {
	closed, err := s.closureRepo.IsClosed(ctx, companyID, date)
	if err != nil {
		return fmt.Errorf("failed to check period closure: %w", err)
	}
	if closed {
		return period.ErrPeriodClosed
	}
	return nil
}

// Create implements regularisation.RegularisationService.
func (s *RegularisationServiceImpl) Create(ctx context.Context, req regularisation.CreateRequest) (regularisation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularisation.RequestResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.AttendanceDate)
	if err := s.guardPeriodOpen(ctx, identity.CompanyID, date); err != nil {
		return regularisation.RequestResponse{}, err
	}

	hasActive, err := s.RegularisationRepository.HasActiveForDate(ctx, identity.EmployeeID, date, identity.CompanyID)
	if err != nil {
		return regularisation.RequestResponse{}, fmt.Errorf("failed to check active requests: %w", err)
	}
	if hasActive {
		return regularisation.RequestResponse{}, regularisation.ErrActiveRequestExists
	}

	status := regularisation.StatusDraft
	if req.SubmitNow {
		status = regularisation.StatusPendingManager
	}

	entity := regularisation.RegularisationRequest{
		CompanyID:       identity.CompanyID,
		EmployeeID:      identity.EmployeeID,
		AttendanceDate:  date,
		RequestType:     regularisation.RequestType(req.RequestType),
		ProposedShiftID: req.ProposedShiftID,
		Reason:          req.Reason,
		Status:          status,
	}
	if req.ProposedFirstIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.ProposedFirstIn)
		entity.ProposedFirstIn = &t
	}
	if req.ProposedLastOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.ProposedLastOut)
		entity.ProposedLastOut = &t
	}

	created, err := s.RegularisationRepository.Create(ctx, entity)
	if err != nil {
		return regularisation.RequestResponse{}, fmt.Errorf("failed to create regularisation request: %w", err)
	}
	return mapToResponse(created), nil
}

// Submit implements regularisation.RegularisationService.
func (s *RegularisationServiceImpl) Submit(ctx context.Context, id string) (regularisation.RequestResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	req, err := s.RegularisationRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}
	if req.EmployeeID != identity.EmployeeID {
		return regularisation.RequestResponse{}, regularisation.ErrNotRequestOwner
	}
	if !regularisation.CanTransition(req.Status, regularisation.StatusPendingManager) {
		return regularisation.RequestResponse{}, regularisation.ErrInvalidTransition
	}
	if err := s.guardPeriodOpen(ctx, identity.CompanyID, req.AttendanceDate); err != nil {
		return regularisation.RequestResponse{}, err
	}

	req.Status = regularisation.StatusPendingManager
	if err := s.RegularisationRepository.Update(ctx, req); err != nil {
		return regularisation.RequestResponse{}, fmt.Errorf("failed to submit regularisation request: %w", err)
	}
	return mapToResponse(req), nil
}

// ManagerAction implements regularisation.RegularisationService.
func (s *RegularisationServiceImpl) ManagerAction(ctx context.Context, actionReq regularisation.ManagerActionRequest) (regularisation.RequestResponse, error) {
	if err := actionReq.Validate(); err != nil {
		return regularisation.RequestResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	req, err := s.RegularisationRepository.GetByID(ctx, actionReq.ID, identity.CompanyID)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	target := regularisation.StatusPendingHR
	if !actionReq.Approve {
		target = regularisation.StatusRejected
	}
	if req.Status != regularisation.StatusPendingManager || !regularisation.CanTransition(req.Status, target) {
		return regularisation.RequestResponse{}, regularisation.ErrInvalidTransition
	}
	if err := s.guardPeriodOpen(ctx, identity.CompanyID, req.AttendanceDate); err != nil {
		return regularisation.RequestResponse{}, err
	}

	// Plain managers may only act on their own reports; HR and admin see
	// the whole company.
	if identity.Role == user.RoleManager {
		isManager, err := s.EmployeeRepository.IsManagerOf(ctx, identity.EmployeeID, req.EmployeeID, identity.CompanyID)
		if err != nil {
			return regularisation.RequestResponse{}, fmt.Errorf("failed to check reporting line: %w", err)
		}
		if !isManager {
			return regularisation.RequestResponse{}, regularisation.ErrNotReportingManager
		}
	}

	now := time.Now()
	req.Status = target
	req.ManagerActionBy = &identity.EmployeeID
	req.ManagerActionAt = &now
	if actionReq.Comments != "" {
		req.ManagerComments = &actionReq.Comments
	}

	if err := s.RegularisationRepository.Update(ctx, req); err != nil {
		return regularisation.RequestResponse{}, fmt.Errorf("failed to update regularisation request: %w", err)
	}
	return mapToResponse(req), nil
}

// HRAction implements regularisation.RegularisationService. Approval and
// the resulting attendance rewrite commit as one unit; a request marked
// approved with an untouched attendance row is an inconsistent state.
func (s *RegularisationServiceImpl) HRAction(ctx context.Context, actionReq regularisation.HRActionRequest) (regularisation.RequestResponse, error) {
	if err := actionReq.Validate(); err != nil {
		return regularisation.RequestResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	req, err := s.RegularisationRepository.GetByID(ctx, actionReq.ID, identity.CompanyID)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	target := regularisation.StatusApproved
	if !actionReq.Approve {
		target = regularisation.StatusRejected
	}
	if req.Status != regularisation.StatusPendingHR || !regularisation.CanTransition(req.Status, target) {
		return regularisation.RequestResponse{}, regularisation.ErrInvalidTransition
	}
	if err := s.guardPeriodOpen(ctx, identity.CompanyID, req.AttendanceDate); err != nil {
		return regularisation.RequestResponse{}, err
	}

	now := time.Now()
	req.Status = target
	req.HRActionBy = &identity.EmployeeID
	req.HRActionAt = &now
	if actionReq.Remarks != "" {
		req.HRRemarks = &actionReq.Remarks
	}

	if !actionReq.Approve {
		if err := s.RegularisationRepository.Update(ctx, req); err != nil {
			return regularisation.RequestResponse{}, fmt.Errorf("failed to update regularisation request: %w", err)
		}
		return mapToResponse(req), nil
	}

	corrected, err := s.buildCorrectedAttendance(ctx, identity.CompanyID, req)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.RegularisationRepository.Update(txCtx, req); err != nil {
			return fmt.Errorf("failed to update regularisation request: %w", err)
		}
		if _, err := s.AttendanceRepository.Upsert(txCtx, corrected); err != nil {
			return fmt.Errorf("failed to apply corrected attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return regularisation.RequestResponse{}, err
	}
	return mapToResponse(req), nil
}

// buildCorrectedAttendance rewrites the target day from the proposal and
// re-runs the daily aggregation against the corrected window. Stale
// exception tags drop out naturally because the tag set is recomputed, not
// patched.
func (s *RegularisationServiceImpl) buildCorrectedAttendance(ctx context.Context, companyID string, req regularisation.RegularisationRequest) (attendance.DailyAttendance, error) {
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, req.AttendanceDate, companyID)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to get target attendance: %w", err)
	}
	if existing != nil && existing.IsLocked {
		return attendance.DailyAttendance{}, attendance.ErrRecordLocked
	}

	resolved, err := s.resolver.Resolve(ctx, req.EmployeeID, companyID, req.AttendanceDate)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to resolve mapping: %w", err)
	}

	sh := resolved.Shift
	if req.ProposedShiftID != nil {
		// Shift-change proposals re-anchor the day on the proposed shift.
		proposed, err := s.shiftRepo.GetByID(ctx, *req.ProposedShiftID, companyID)
		if err != nil {
			return attendance.DailyAttendance{}, err
		}
		sh = &proposed
	}

	firstIn := req.ProposedFirstIn
	lastOut := req.ProposedLastOut
	if firstIn == nil && sh != nil {
		t := sh.StartOn(req.AttendanceDate)
		firstIn = &t
	}
	if lastOut == nil && sh != nil {
		t := sh.EndOn(req.AttendanceDate)
		lastOut = &t
	}

	computed := svcattendance.ComputeDay(svcattendance.ComputeInput{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Date:       req.AttendanceDate,
		Punches:    svcattendance.SyntheticPunches(companyID, req.EmployeeID, req.AttendanceDate, firstIn, lastOut),
		Shift:      sh,
		Policy:     resolved.Policy,
		WeeklyOff:  resolved.WeeklyOff,
	})

	if req.RequestType == regularisation.TypeHalfDay {
		computed.Status = attendance.StatusHalfDay
	}
	computed.Source = attendance.SourceRegularised
	computed.ProcessingStatus = attendance.ProcessingStatusProcessed
	if existing != nil {
		computed.ID = existing.ID
	}
	return computed, nil
}

// GetRequest implements regularisation.RegularisationService.
func (s *RegularisationServiceImpl) GetRequest(ctx context.Context, id string) (regularisation.RequestResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	req, err := s.RegularisationRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}
	return mapToResponse(req), nil
}

// GetMyRequests implements regularisation.RegularisationService.
func (s *RegularisationServiceImpl) GetMyRequests(ctx context.Context, filter regularisation.ListFilter) (regularisation.ListResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return regularisation.ListResponse{}, err
	}

	requests, total, err := s.RegularisationRepository.ListByEmployee(ctx, identity.EmployeeID, identity.CompanyID, filter)
	if err != nil {
		return regularisation.ListResponse{}, fmt.Errorf("failed to list my requests: %w", err)
	}
	return buildListResponse(requests, total, filter.Page, filter.Limit), nil
}

// ListPending implements regularisation.RegularisationService.
func (s *RegularisationServiceImpl) ListPending(ctx context.Context, filter regularisation.ListFilter) (regularisation.ListResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return regularisation.ListResponse{}, err
	}

	stage := regularisation.StatusPendingManager
	if identity.Role.CanApproveAsHR() {
		stage = regularisation.StatusPendingHR
	}

	requests, total, err := s.RegularisationRepository.ListByStatus(ctx, identity.CompanyID, stage, filter)
	if err != nil {
		return regularisation.ListResponse{}, fmt.Errorf("failed to list pending requests: %w", err)
	}

	// Plain managers only see their own reports' requests.
	if identity.Role == user.RoleManager {
		scoped := make([]regularisation.RegularisationRequest, 0, len(requests))
		for _, req := range requests {
			isManager, err := s.EmployeeRepository.IsManagerOf(ctx, identity.EmployeeID, req.EmployeeID, identity.CompanyID)
			if err != nil {
				return regularisation.ListResponse{}, fmt.Errorf("failed to check reporting line: %w", err)
			}
			if isManager {
				scoped = append(scoped, req)
			}
		}
		requests = scoped
		total = int64(len(scoped))
	}

	return buildListResponse(requests, total, filter.Page, filter.Limit), nil
}

func buildListResponse(requests []regularisation.RegularisationRequest, total int64, page, limit int) regularisation.ListResponse {
	responses := make([]regularisation.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapToResponse(req))
	}

	return regularisation.ListResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Requests:   responses,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapToResponse(req regularisation.RegularisationRequest) regularisation.RequestResponse {
	return regularisation.RequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    req.EmployeeName,
		AttendanceDate:  req.AttendanceDate.Format("2006-01-02"),
		RequestType:     string(req.RequestType),
		ProposedFirstIn: timePtrToString(req.ProposedFirstIn),
		ProposedLastOut: timePtrToString(req.ProposedLastOut),
		ProposedShiftID: req.ProposedShiftID,
		Reason:          req.Reason,
		Status:          string(req.Status),
		ManagerActionAt: timePtrToString(req.ManagerActionAt),
		ManagerComments: req.ManagerComments,
		HRActionAt:      timePtrToString(req.HRActionAt),
		HRRemarks:       req.HRRemarks,
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
	}
}
