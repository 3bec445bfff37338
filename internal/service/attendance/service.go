package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	punch.PunchRepository
	resolver    mapping.Resolver
	closureRepo period.ClosureRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	punchRepo punch.PunchRepository,
	resolver mapping.Resolver,
	closureRepo period.ClosureRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		PunchRepository:      punchRepo,
		resolver:             resolver,
		closureRepo:          closureRepo,
	}
}

// ComputeEmployeeDay implements attendance.AttendanceService. The row's
// processing status is carried over from the existing row; a recomputation
// does not reopen a processed day.
func (s *AttendanceServiceImpl) ComputeEmployeeDay(ctx context.Context, companyID string, employeeID string, date time.Time) (attendance.DailyAttendance, error) {
	return s.computeAndStore(ctx, companyID, employeeID, date, false)
}

// ProcessEmployeeDay implements attendance.AttendanceService. Finalisation
// path: the recomputed row is stored as processed.
func (s *AttendanceServiceImpl) ProcessEmployeeDay(ctx context.Context, companyID string, employeeID string, date time.Time) (attendance.DailyAttendance, error) {
	return s.computeAndStore(ctx, companyID, employeeID, date, true)
}

func (s *AttendanceServiceImpl) computeAndStore(ctx context.Context, companyID string, employeeID string, date time.Time, markProcessed bool) (attendance.DailyAttendance, error) {
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to get existing attendance: %w", err)
	}
	if existing != nil && existing.IsLocked {
		return attendance.DailyAttendance{}, attendance.ErrRecordLocked
	}

	resolved, err := s.resolver.Resolve(ctx, employeeID, companyID, date)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to resolve mapping: %w", err)
	}

	punches, err := s.PunchRepository.ListForAttendanceDate(ctx, employeeID, date, companyID)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to list punches: %w", err)
	}

	in := ComputeInput{
		CompanyID:        companyID,
		EmployeeID:       employeeID,
		Date:             date,
		Punches:          punches,
		Shift:            resolved.Shift,
		Policy:           resolved.Policy,
		WeeklyOff:        resolved.WeeklyOff,
		HasApprovedLeave: existing != nil && existing.Status == attendance.StatusLeave,
	}

	// A regularised row's corrected window outlives the raw ledger:
	// reprocessing must not clobber the approved correction.
	if existing != nil && existing.Source == attendance.SourceRegularised {
		in.Punches = SyntheticPunches(companyID, employeeID, date, existing.FirstIn, existing.LastOut)
	}

	computed := ComputeDay(in)
	if existing != nil {
		computed.ID = existing.ID
		computed.ProcessingStatus = existing.ProcessingStatus
		if existing.Source == attendance.SourceRegularised {
			computed.Source = attendance.SourceRegularised
		}
	}
	if markProcessed {
		computed.ProcessingStatus = attendance.ProcessingStatusProcessed
	}

	if computed.IsLate && resolved.Policy != nil && resolved.Policy.MaxLateMarksPerMonth > 0 {
		priorLate, err := s.AttendanceRepository.CountLateMarksInMonth(ctx, employeeID, date, companyID)
		if err != nil {
			return attendance.DailyAttendance{}, fmt.Errorf("failed to count late marks: %w", err)
		}
		if priorLate+1 > resolved.Policy.MaxLateMarksPerMonth && !computed.ExceptionTags.Contains(attendance.TagExcessLateMarks) {
			computed.ExceptionTags = append(computed.ExceptionTags, attendance.TagExcessLateMarks)
		}
	}

	result, err := s.AttendanceRepository.Upsert(ctx, computed)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return result, nil
}

// SyntheticPunches builds an IN/OUT pair from corrected first-in/last-out
// times so the regular aggregation rules apply to a regularised window.
func SyntheticPunches(companyID, employeeID string, date time.Time, firstIn, lastOut *time.Time) []punch.Punch {
	var punches []punch.Punch
	if firstIn != nil {
		punches = append(punches, punch.Punch{
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Date:       date,
			Timestamp:  *firstIn,
			Direction:  punch.DirectionIn,
			Source:     punch.SourceManual,
			GeoStatus:  punch.GeoStatusNotCaptured,
		})
	}
	if lastOut != nil {
		punches = append(punches, punch.Punch{
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Date:       date,
			Timestamp:  *lastOut,
			Direction:  punch.DirectionOut,
			Source:     punch.SourceManual,
			GeoStatus:  punch.GeoStatusNotCaptured,
		})
	}
	return punches
}

// RecomputeDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecomputeDay(ctx context.Context, req attendance.ComputeDayRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	result, err := s.ComputeEmployeeDay(ctx, identity.CompanyID, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapToResponse(result), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	rows, total, err := s.AttendanceRepository.GetMyAttendance(ctx, identity.EmployeeID, filter, identity.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(rows, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	rows, total, err := s.AttendanceRepository.List(ctx, filter, identity.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildListResponse(rows, total, filter.Page, filter.Limit), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return mapToResponse(att), nil
}

// ManualEdit implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ManualEdit(ctx context.Context, req attendance.ManualEditRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if att.IsLocked {
		return attendance.AttendanceResponse{}, attendance.ErrRecordLocked
	}
	closed, err := s.closureRepo.IsClosed(ctx, identity.CompanyID, att.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check period closure: %w", err)
	}
	if closed {
		return attendance.AttendanceResponse{}, period.ErrPeriodClosed
	}

	if req.FirstIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.FirstIn)
		att.FirstIn = &t
	}
	if req.LastOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.LastOut)
		att.LastOut = &t
	}
	if req.ShiftID != nil {
		att.ShiftID = req.ShiftID
	}

	// Re-derive the computed fields from the corrected window under the
	// currently resolved policy, then apply any explicit status override.
	resolved, err := s.resolver.Resolve(ctx, att.EmployeeID, identity.CompanyID, att.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve mapping: %w", err)
	}
	computed := ComputeDay(ComputeInput{
		CompanyID:  att.CompanyID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date,
		Punches:    SyntheticPunches(att.CompanyID, att.EmployeeID, att.Date, att.FirstIn, att.LastOut),
		Shift:      resolved.Shift,
		Policy:     resolved.Policy,
		WeeklyOff:  resolved.WeeklyOff,
	})

	att.TotalWorkMins = computed.TotalWorkMins
	att.Status = computed.Status
	att.IsLate = computed.IsLate
	att.LateMins = computed.LateMins
	att.OTMins = computed.OTMins
	att.ExceptionTags = computed.ExceptionTags
	if req.Status != nil {
		att.Status = attendance.Status(*req.Status)
	}
	att.Source = attendance.SourceManual

	if err := s.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := s.AttendanceRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}
	return mapToResponse(updated), nil
}

func buildListResponse(rows []attendance.DailyAttendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, att := range rows {
		responses = append(responses, mapToResponse(att))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		Attendances: responses,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapToResponse(att attendance.DailyAttendance) attendance.AttendanceResponse {
	tags := att.ExceptionTags
	if tags == nil {
		tags = attendance.ExceptionTags{}
	}
	return attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		EmployeeName:     att.EmployeeName,
		Date:             att.Date.Format("2006-01-02"),
		ShiftID:          att.ShiftID,
		FirstIn:          timePtrToString(att.FirstIn),
		LastOut:          timePtrToString(att.LastOut),
		TotalWorkMins:    att.TotalWorkMins,
		DayType:          string(att.DayType),
		Status:           string(att.Status),
		IsLate:           att.IsLate,
		LateMins:         att.LateMins,
		OTMins:           att.OTMins,
		ExceptionTags:    tags,
		ProcessingStatus: string(att.ProcessingStatus),
		IsLocked:         att.IsLocked,
		Source:           string(att.Source),
	}
}
