package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type mappingRepositoryImpl struct {
	db *database.DB
}

func NewMappingRepository(db *database.DB) mapping.MappingRepository {
	return &mappingRepositoryImpl{db: db}
}

const mappingColumns = `id, company_id, scope, scope_ref_id, policy_id, shift_id,
	   weekly_off_pattern_id, effective_from, created_at, updated_at`

// Create implements mapping.MappingRepository.
func (r *mappingRepositoryImpl) Create(ctx context.Context, m mapping.AttendanceMapping) (mapping.AttendanceMapping, error) {
	q := GetQuerier(ctx, r.db)

	m.ID = uuid.New().String()
	query := `
		INSERT INTO attendance_mappings (
			id, company_id, scope, scope_ref_id, policy_id, shift_id,
			weekly_off_pattern_id, effective_from, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		m.ID, m.CompanyID, m.Scope, m.ScopeRefID, m.PolicyID, m.ShiftID,
		m.WeeklyOffPatternID, m.EffectiveFrom,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return mapping.AttendanceMapping{}, err
	}
	return m, nil
}

// GetByID implements mapping.MappingRepository.
func (r *mappingRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (mapping.AttendanceMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + mappingColumns + `
		FROM attendance_mappings
		WHERE id = $1 AND company_id = $2
	`
	var m mapping.AttendanceMapping
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&m.ID, &m.CompanyID, &m.Scope, &m.ScopeRefID, &m.PolicyID, &m.ShiftID,
		&m.WeeklyOffPatternID, &m.EffectiveFrom, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapping.AttendanceMapping{}, mapping.ErrMappingNotFound
		}
		return mapping.AttendanceMapping{}, err
	}
	return m, nil
}

// List implements mapping.MappingRepository.
func (r *mappingRepositoryImpl) List(ctx context.Context, companyID string) ([]mapping.AttendanceMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + mappingColumns + `
		FROM attendance_mappings
		WHERE company_id = $1
		ORDER BY scope, effective_from DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMappings(rows)
}

// Update implements mapping.MappingRepository.
func (r *mappingRepositoryImpl) Update(ctx context.Context, m mapping.AttendanceMapping) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendance_mappings
		SET policy_id = $1, shift_id = $2, weekly_off_pattern_id = $3,
			effective_from = $4, updated_at = $5
		WHERE id = $6 AND company_id = $7
	`
	commandTag, err := q.Exec(ctx, query,
		m.PolicyID, m.ShiftID, m.WeeklyOffPatternID,
		m.EffectiveFrom, time.Now(), m.ID, m.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return mapping.ErrMappingNotFound
	}
	return nil
}

// Delete implements mapping.MappingRepository.
func (r *mappingRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM attendance_mappings
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return mapping.ErrMappingNotFound
	}
	return nil
}

// ListCandidates implements mapping.MappingRepository. Matching for every
// scope level happens in one query; precedence between levels is the
// resolver's job.
func (r *mappingRepositoryImpl) ListCandidates(ctx context.Context, companyID string, refs mapping.ScopeRefs, date time.Time) ([]mapping.AttendanceMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + mappingColumns + `
		FROM attendance_mappings
		WHERE company_id = $1
		  AND effective_from <= $2
		  AND (
			(scope = 'employee' AND scope_ref_id = $3)
			OR (scope = 'designation' AND $4::text IS NOT NULL AND scope_ref_id = $4)
			OR (scope = 'department' AND $5::text IS NOT NULL AND scope_ref_id = $5)
		  )
		ORDER BY effective_from DESC
	`
	rows, err := q.Query(ctx, query, companyID, date, refs.EmployeeID, refs.DesignationID, refs.DepartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMappings(rows)
}

func scanMappings(rows pgx.Rows) ([]mapping.AttendanceMapping, error) {
	var mappings []mapping.AttendanceMapping
	for rows.Next() {
		var m mapping.AttendanceMapping
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.Scope, &m.ScopeRefID, &m.PolicyID, &m.ShiftID,
			&m.WeeklyOffPatternID, &m.EffectiveFrom, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mappings, nil
}
