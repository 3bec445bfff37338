package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

const policyColumns = `id, company_id, name, full_day_mins, half_day_mins, grace_late_mins,
	   max_late_marks_per_month, overtime, exceptions, effective_from,
	   created_at, updated_at`

func scanPolicy(row pgx.Row) (policy.AttendancePolicy, error) {
	var p policy.AttendancePolicy
	var overtimeJSON, exceptionsJSON []byte

	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.FullDayMins, &p.HalfDayMins, &p.GraceLateMins,
		&p.MaxLateMarksPerMonth, &overtimeJSON, &exceptionsJSON, &p.EffectiveFrom,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return policy.AttendancePolicy{}, err
	}
	if overtimeJSON != nil {
		json.Unmarshal(overtimeJSON, &p.Overtime)
	}
	if exceptionsJSON != nil {
		json.Unmarshal(exceptionsJSON, &p.Exceptions)
	}
	return p, nil
}

// Create implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Create(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	p.ID = uuid.New().String()
	overtimeJSON, _ := json.Marshal(p.Overtime)
	exceptionsJSON, _ := json.Marshal(p.Exceptions)

	query := `
		INSERT INTO attendance_policies (
			id, company_id, name, full_day_mins, half_day_mins, grace_late_mins,
			max_late_marks_per_month, overtime, exceptions, effective_from,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		p.ID, p.CompanyID, p.Name, p.FullDayMins, p.HalfDayMins, p.GraceLateMins,
		p.MaxLateMarksPerMonth, overtimeJSON, exceptionsJSON, p.EffectiveFrom,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return policy.AttendancePolicy{}, err
	}
	return p, nil
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + policyColumns + `
		FROM attendance_policies
		WHERE id = $1 AND company_id = $2
	`
	p, err := scanPolicy(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.AttendancePolicy{}, err
	}
	return p, nil
}

// List implements policy.PolicyRepository.
func (r *policyRepositoryImpl) List(ctx context.Context, companyID string) ([]policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + policyColumns + `
		FROM attendance_policies
		WHERE company_id = $1
		ORDER BY effective_from DESC, name
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []policy.AttendancePolicy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return policies, nil
}

// Update implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Update(ctx context.Context, p policy.AttendancePolicy) error {
	q := GetQuerier(ctx, r.db)

	overtimeJSON, _ := json.Marshal(p.Overtime)
	exceptionsJSON, _ := json.Marshal(p.Exceptions)

	query := `
		UPDATE attendance_policies
		SET name = $1, full_day_mins = $2, half_day_mins = $3, grace_late_mins = $4,
			max_late_marks_per_month = $5, overtime = $6, exceptions = $7, updated_at = $8
		WHERE id = $9 AND company_id = $10
	`
	commandTag, err := q.Exec(ctx, query,
		p.Name, p.FullDayMins, p.HalfDayMins, p.GraceLateMins,
		p.MaxLateMarksPerMonth, overtimeJSON, exceptionsJSON, time.Now(),
		p.ID, p.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return policy.ErrPolicyNotFound
	}
	return nil
}

// Delete implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM attendance_policies
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return policy.ErrPolicyNotFound
	}
	return nil
}
