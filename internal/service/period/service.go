package period

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
)

type PeriodServiceImpl struct {
	period.ClosureRepository
	attendanceRepo    attendance.AttendanceRepository
	attendanceService attendance.AttendanceService
	runTx             func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewPeriodService(
	db *database.DB,
	closureRepo period.ClosureRepository,
	attendanceRepo attendance.AttendanceRepository,
	attendanceService attendance.AttendanceService,
) period.PeriodService {
	return &PeriodServiceImpl{
		ClosureRepository: closureRepo,
		attendanceRepo:    attendanceRepo,
		attendanceService: attendanceService,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return database.WithTransaction(ctx, db, fn)
		},
	}
}

// Process implements period.PeriodService. Each row is recomputed
// independently; one bad row never aborts the batch.
func (s *PeriodServiceImpl) Process(ctx context.Context, req period.RangeRequest) (period.ProcessResult, error) {
	if err := req.Validate(); err != nil {
		return period.ProcessResult{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return period.ProcessResult{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	rows, err := s.attendanceRepo.ListRange(ctx, identity.CompanyID, start, end)
	if err != nil {
		return period.ProcessResult{}, fmt.Errorf("failed to list attendance range: %w", err)
	}

	result := period.ProcessResult{TotalRows: len(rows)}
	for _, row := range rows {
		if row.IsLocked {
			result.Skipped++
			continue
		}
		_, err := s.attendanceService.ProcessEmployeeDay(ctx, identity.CompanyID, row.EmployeeID, row.Date)
		if err != nil {
			if errors.Is(err, attendance.ErrRecordLocked) {
				result.Skipped++
				continue
			}
			result.Failed++
			continue
		}
		result.Processed++
	}
	return result, nil
}

// Lock implements period.PeriodService. Locking the rows and recording the
// closure commit together; a closure without locked rows would let edits
// through on recompute.
func (s *PeriodServiceImpl) Lock(ctx context.Context, req period.RangeRequest) (period.LockResult, error) {
	if err := req.Validate(); err != nil {
		return period.LockResult{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return period.LockResult{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	var result period.LockResult
	err = s.runTx(ctx, func(txCtx context.Context) error {
		locked, total, err := s.attendanceRepo.LockRange(txCtx, identity.CompanyID, start, end)
		if err != nil {
			return fmt.Errorf("failed to lock attendance range: %w", err)
		}
		result = period.LockResult{
			TotalRows:     total,
			NewlyLocked:   locked,
			AlreadyLocked: total - locked,
		}

		_, err = s.ClosureRepository.Create(txCtx, period.PeriodClosure{
			CompanyID: identity.CompanyID,
			StartDate: start,
			EndDate:   end,
			ClosedBy:  identity.EmployeeID,
		})
		if err != nil {
			return fmt.Errorf("failed to record period closure: %w", err)
		}
		return nil
	})
	if err != nil {
		return period.LockResult{}, err
	}
	return result, nil
}

// ListClosures implements period.PeriodService.
func (s *PeriodServiceImpl) ListClosures(ctx context.Context) ([]period.ClosureResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	closures, err := s.ClosureRepository.List(ctx, identity.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period closures: %w", err)
	}

	responses := make([]period.ClosureResponse, 0, len(closures))
	for _, c := range closures {
		responses = append(responses, period.ClosureResponse{
			ID:        c.ID,
			StartDate: c.StartDate.Format("2006-01-02"),
			EndDate:   c.EndDate.Format("2006-01-02"),
			ClosedBy:  c.ClosedBy,
			ClosedAt:  c.ClosedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}
