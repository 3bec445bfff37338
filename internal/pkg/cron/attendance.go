package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/employee"
)

// AttendanceJobs aggregates the previous day's punch ledger into daily
// attendance rows across all tenants.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	employeeRepo      employee.EmployeeRepository
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		employeeRepo:      employeeRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("aggregate_daily_attendance", interval, j.AggregateYesterday)
}

// AggregateYesterday recomputes yesterday's attendance for every employee.
// Runs hourly but only acts in the 02:00 UTC window, after night shifts
// spilling past midnight have closed.
func (j *AttendanceJobs) AggregateYesterday(ctx context.Context) error {
	if time.Now().UTC().Hour() != 2 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	slog.Info("Cron: Starting daily attendance aggregation", "date", yesterday.Format("2006-01-02"))

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return err
	}

	var processed, skipped, failed int
	for _, companyID := range companyIDs {
		employees, err := j.employeeRepo.ListByCompany(ctx, companyID)
		if err != nil {
			slog.Error("Cron: Failed to list employees", "company_id", companyID, "error", err)
			continue
		}

		for _, emp := range employees {
			_, err := j.attendanceService.ComputeEmployeeDay(ctx, companyID, emp.ID, yesterday)
			switch {
			case err == nil:
				processed++
			case errors.Is(err, attendance.ErrRecordLocked):
				skipped++
			default:
				failed++
				slog.Error("Cron: Failed to compute attendance",
					"company_id", companyID, "employee_id", emp.ID, "error", err)
			}
		}
	}

	slog.Info("Cron: Daily attendance aggregation finished",
		"date", yesterday.Format("2006-01-02"),
		"processed", processed, "skipped", skipped, "failed", failed)
	return nil
}
