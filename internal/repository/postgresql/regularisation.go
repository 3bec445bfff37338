package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/regularisation"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type regularisationRepositoryImpl struct {
	db *database.DB
}

func NewRegularisationRepository(db *database.DB) regularisation.RegularisationRepository {
	return &regularisationRepositoryImpl{db: db}
}

const regularisationColumns = `r.id, r.company_id, r.employee_id, r.attendance_date, r.request_type,
	   r.proposed_first_in, r.proposed_last_out, r.proposed_shift_id, r.reason, r.status,
	   r.manager_action_by, r.manager_action_at, r.manager_comments,
	   r.hr_action_by, r.hr_action_at, r.hr_remarks,
	   r.created_at, r.updated_at`

func scanRegularisation(row pgx.Row, withName bool) (regularisation.RegularisationRequest, error) {
	var req regularisation.RegularisationRequest
	dest := []interface{}{
		&req.ID, &req.CompanyID, &req.EmployeeID, &req.AttendanceDate, &req.RequestType,
		&req.ProposedFirstIn, &req.ProposedLastOut, &req.ProposedShiftID, &req.Reason, &req.Status,
		&req.ManagerActionBy, &req.ManagerActionAt, &req.ManagerComments,
		&req.HRActionBy, &req.HRActionAt, &req.HRRemarks,
		&req.CreatedAt, &req.UpdatedAt,
	}
	if withName {
		dest = append(dest, &req.EmployeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return regularisation.RegularisationRequest{}, err
	}
	return req, nil
}

// Create implements regularisation.RegularisationRepository.
func (r *regularisationRepositoryImpl) Create(ctx context.Context, req regularisation.RegularisationRequest) (regularisation.RegularisationRequest, error) {
	q := GetQuerier(ctx, r.db)

	req.ID = uuid.New().String()
	query := `
		INSERT INTO regularisation_requests (
			id, company_id, employee_id, attendance_date, request_type,
			proposed_first_in, proposed_last_out, proposed_shift_id, reason, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		req.ID, req.CompanyID, req.EmployeeID, req.AttendanceDate, req.RequestType,
		req.ProposedFirstIn, req.ProposedLastOut, req.ProposedShiftID, req.Reason, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return regularisation.RegularisationRequest{}, err
	}
	return req, nil
}

// GetByID implements regularisation.RegularisationRepository.
func (r *regularisationRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (regularisation.RegularisationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + regularisationColumns + `, e.full_name
		FROM regularisation_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1 AND r.company_id = $2
	`
	req, err := scanRegularisation(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return regularisation.RegularisationRequest{}, regularisation.ErrRequestNotFound
		}
		return regularisation.RegularisationRequest{}, err
	}
	return req, nil
}

// Update implements regularisation.RegularisationRepository.
func (r *regularisationRepositoryImpl) Update(ctx context.Context, req regularisation.RegularisationRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE regularisation_requests
		SET status = $1,
			manager_action_by = $2, manager_action_at = $3, manager_comments = $4,
			hr_action_by = $5, hr_action_at = $6, hr_remarks = $7,
			updated_at = $8
		WHERE id = $9 AND company_id = $10
	`
	commandTag, err := q.Exec(ctx, query,
		req.Status,
		req.ManagerActionBy, req.ManagerActionAt, req.ManagerComments,
		req.HRActionBy, req.HRActionAt, req.HRRemarks,
		time.Now(), req.ID, req.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return regularisation.ErrRequestNotFound
	}
	return nil
}

// ListByEmployee implements regularisation.RegularisationRepository.
func (r *regularisationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string, filter regularisation.ListFilter) ([]regularisation.RegularisationRequest, int64, error) {
	conditions := []string{"r.company_id = $1", "r.employee_id = $2"}
	args := []interface{}{companyID, employeeID}
	return r.list(ctx, conditions, args, filter)
}

// ListByStatus implements regularisation.RegularisationRepository.
func (r *regularisationRepositoryImpl) ListByStatus(ctx context.Context, companyID string, status regularisation.Status, filter regularisation.ListFilter) ([]regularisation.RegularisationRequest, int64, error) {
	conditions := []string{"r.company_id = $1", "r.status = $2"}
	args := []interface{}{companyID, status}
	return r.list(ctx, conditions, args, filter)
}

func (r *regularisationRepositoryImpl) list(ctx context.Context, conditions []string, args []interface{}, filter regularisation.ListFilter) ([]regularisation.RegularisationRequest, int64, error) {
	q := GetQuerier(ctx, r.db)
	argIdx := len(args) + 1

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.attendance_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.attendance_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM regularisation_requests r WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + regularisationColumns + `, e.full_name
		FROM regularisation_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE ` + where + `
		ORDER BY r.created_at DESC
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

	var requests []regularisation.RegularisationRequest
	for rows.Next() {
		req, err := scanRegularisation(rows, true)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// HasActiveForDate implements regularisation.RegularisationRepository.
func (r *regularisationRepositoryImpl) HasActiveForDate(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM regularisation_requests
			WHERE employee_id = $1 AND company_id = $2 AND attendance_date = $3
			  AND status NOT IN ('approved', 'rejected')
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
