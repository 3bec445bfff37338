package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, company_id, name, code, start_time, end_time, is_next_day,
	   break_duration_mins, grace_late_mins, grace_early_mins, shift_type,
	   effective_from, created_at, updated_at`

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s.ID = uuid.New().String()
	query := `
		INSERT INTO shifts (
			id, company_id, name, code, start_time, end_time, is_next_day,
			break_duration_mins, grace_late_mins, grace_early_mins, shift_type,
			effective_from, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.Name, s.Code, s.StartTime, s.EndTime, s.IsNextDay,
		s.BreakDurationMins, s.GraceLateMins, s.GraceEarlyMins, s.ShiftType,
		s.EffectiveFrom,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, err
	}
	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE id = $1 AND company_id = $2
	`
	var s shift.Shift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Code, &s.StartTime, &s.EndTime, &s.IsNextDay,
		&s.BreakDurationMins, &s.GraceLateMins, &s.GraceEarlyMins, &s.ShiftType,
		&s.EffectiveFrom, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, err
	}
	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE company_id = $1
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Name, &s.Code, &s.StartTime, &s.EndTime, &s.IsNextDay,
			&s.BreakDurationMins, &s.GraceLateMins, &s.GraceEarlyMins, &s.ShiftType,
			&s.EffectiveFrom, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE shifts
		SET name = $1, start_time = $2, end_time = $3, is_next_day = $4,
			break_duration_mins = $5, grace_late_mins = $6, grace_early_mins = $7,
			shift_type = $8, updated_at = $9
		WHERE id = $10 AND company_id = $11
	`
	commandTag, err := q.Exec(ctx, query,
		s.Name, s.StartTime, s.EndTime, s.IsNextDay,
		s.BreakDurationMins, s.GraceLateMins, s.GraceEarlyMins,
		s.ShiftType, time.Now(), s.ID, s.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM shifts
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// IsReferencedByLockedAttendance implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) IsReferencedByLockedAttendance(ctx context.Context, id string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM daily_attendance
			WHERE shift_id = $1 AND company_id = $2 AND is_locked = TRUE
		)
	`
	var referenced bool
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&referenced); err != nil {
		return false, err
	}
	return referenced, nil
}
