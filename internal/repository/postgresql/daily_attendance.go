package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, company_id, employee_id, date, shift_id, first_in, last_out,
	   total_work_mins, day_type, status, is_late, late_mins, ot_mins,
	   exception_tags, processing_status, is_locked, source,
	   created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.DailyAttendance, error) {
	var att attendance.DailyAttendance
	var tagsJSON []byte

	err := row.Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.ShiftID, &att.FirstIn, &att.LastOut,
		&att.TotalWorkMins, &att.DayType, &att.Status, &att.IsLate, &att.LateMins, &att.OTMins,
		&tagsJSON, &att.ProcessingStatus, &att.IsLocked, &att.Source,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.DailyAttendance{}, err
	}
	if tagsJSON != nil {
		json.Unmarshal(tagsJSON, &att.ExceptionTags)
	}
	return att, nil
}

// Upsert implements attendance.AttendanceRepository. The conflict target is
// the (company, employee, date) uniqueness; the WHERE clause on the update
// arm keeps locked rows untouchable even here.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, att attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	tagsJSON, _ := json.Marshal(att.ExceptionTags)

	query := `
		INSERT INTO daily_attendance (
			id, company_id, employee_id, date, shift_id, first_in, last_out,
			total_work_mins, day_type, status, is_late, late_mins, ot_mins,
			exception_tags, processing_status, is_locked, source,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, FALSE, $16,
			NOW(), NOW()
		)
		ON CONFLICT (company_id, employee_id, date) DO UPDATE SET
			shift_id = EXCLUDED.shift_id,
			first_in = EXCLUDED.first_in,
			last_out = EXCLUDED.last_out,
			total_work_mins = EXCLUDED.total_work_mins,
			day_type = EXCLUDED.day_type,
			status = EXCLUDED.status,
			is_late = EXCLUDED.is_late,
			late_mins = EXCLUDED.late_mins,
			ot_mins = EXCLUDED.ot_mins,
			exception_tags = EXCLUDED.exception_tags,
			processing_status = EXCLUDED.processing_status,
			source = EXCLUDED.source,
			updated_at = NOW()
		WHERE daily_attendance.is_locked = FALSE
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		att.ID, att.CompanyID, att.EmployeeID, att.Date, att.ShiftID, att.FirstIn, att.LastOut,
		att.TotalWorkMins, att.DayType, att.Status, att.IsLate, att.LateMins, att.OTMins,
		tagsJSON, att.ProcessingStatus, att.Source,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conflict arm matched but the row is locked.
			return attendance.DailyAttendance{}, attendance.ErrRecordLocked
		}
		return attendance.DailyAttendance{}, err
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository. Locked rows are
// excluded at the SQL level.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.DailyAttendance) error {
	q := GetQuerier(ctx, r.db)

	tagsJSON, _ := json.Marshal(att.ExceptionTags)
	query := `
		UPDATE daily_attendance
		SET shift_id = $1, first_in = $2, last_out = $3, total_work_mins = $4,
			day_type = $5, status = $6, is_late = $7, late_mins = $8, ot_mins = $9,
			exception_tags = $10, processing_status = $11, source = $12, updated_at = $13
		WHERE id = $14 AND company_id = $15 AND is_locked = FALSE
	`
	commandTag, err := q.Exec(ctx, query,
		att.ShiftID, att.FirstIn, att.LastOut, att.TotalWorkMins,
		att.DayType, att.Status, att.IsLate, att.LateMins, att.OTMins,
		tagsJSON, att.ProcessingStatus, att.Source, time.Now(),
		att.ID, att.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrRecordLocked
	}
	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM daily_attendance
		WHERE id = $1 AND company_id = $2
	`
	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.DailyAttendance{}, err
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository. A missing
// row is a valid state and maps to (nil, nil).
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM daily_attendance
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`
	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &att, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.DailyAttendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"da.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("da.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("da.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("da.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("da.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM daily_attendance da WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT da.id, da.company_id, da.employee_id, da.date, da.shift_id, da.first_in, da.last_out,
			   da.total_work_mins, da.day_type, da.status, da.is_late, da.late_mins, da.ot_mins,
			   da.exception_tags, da.processing_status, da.is_locked, da.source,
			   da.created_at, da.updated_at,
			   e.full_name
		FROM daily_attendance da
		LEFT JOIN employees e ON e.id = da.employee_id
		WHERE ` + where + `
		ORDER BY da.date DESC, e.full_name
	`
	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var attendances []attendance.DailyAttendance
	for rows.Next() {
		var att attendance.DailyAttendance
		var tagsJSON []byte
		if err := rows.Scan(
			&att.ID, &att.CompanyID, &att.EmployeeID, &att.Date, &att.ShiftID, &att.FirstIn, &att.LastOut,
			&att.TotalWorkMins, &att.DayType, &att.Status, &att.IsLate, &att.LateMins, &att.OTMins,
			&tagsJSON, &att.ProcessingStatus, &att.IsLocked, &att.Source,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		if tagsJSON != nil {
			json.Unmarshal(tagsJSON, &att.ExceptionTags)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, companyID string) ([]attendance.DailyAttendance, int64, error) {
	listFilter := attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	return r.List(ctx, listFilter, companyID)
}

// ListRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRange(ctx context.Context, companyID string, start, end time.Time) ([]attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM daily_attendance
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, employee_id
	`
	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendances []attendance.DailyAttendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attendances, nil
}

// LockRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) LockRange(ctx context.Context, companyID string, start, end time.Time) (int64, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM daily_attendance
		WHERE company_id = $1 AND date >= $2 AND date <= $3
	`
	if err := q.QueryRow(ctx, countQuery, companyID, start, end).Scan(&total); err != nil {
		return 0, 0, err
	}

	lockQuery := `
		UPDATE daily_attendance
		SET is_locked = TRUE, updated_at = NOW()
		WHERE company_id = $1 AND date >= $2 AND date <= $3 AND is_locked = FALSE
	`
	commandTag, err := q.Exec(ctx, lockQuery, companyID, start, end)
	if err != nil {
		return 0, 0, err
	}
	return commandTag.RowsAffected(), total, nil
}

// CountLateMarksInMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountLateMarksInMonth(ctx context.Context, employeeID string, date time.Time, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	query := `
		SELECT COUNT(*) FROM daily_attendance
		WHERE employee_id = $1 AND company_id = $2
		  AND date >= $3 AND date <= $4 AND date <> $5 AND is_late = TRUE
	`
	var count int
	if err := q.QueryRow(ctx, query, employeeID, companyID, monthStart, monthEnd, date).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
