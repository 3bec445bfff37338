package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

const punchColumns = `id, company_id, employee_id, date, timestamp, direction, source,
	   latitude, longitude, geo_status, created_at`

// Create implements punch.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	p.ID = uuid.New().String()
	query := `
		INSERT INTO punches (
			id, company_id, employee_id, date, timestamp, direction, source,
			latitude, longitude, geo_status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()
		) RETURNING created_at
	`
	err := q.QueryRow(ctx, query,
		p.ID, p.CompanyID, p.EmployeeID, p.Date, p.Timestamp, p.Direction, p.Source,
		p.Latitude, p.Longitude, p.GeoStatus,
	).Scan(&p.CreatedAt)
	if err != nil {
		return punch.Punch{}, err
	}
	return p, nil
}

// ListForAttendanceDate implements punch.PunchRepository. The window spans
// two calendar days so next-day shift OUT punches stay attributable to the
// shift's start date.
func (r *punchRepositoryImpl) ListForAttendanceDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE employee_id = $1 AND company_id = $2
		  AND date >= $3 AND date <= $4
		ORDER BY timestamp
	`
	rows, err := q.Query(ctx, query, employeeID, companyID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPunches(rows)
}

// ListByEmployeeRange implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE employee_id = $1 AND company_id = $2
		  AND date >= $3 AND date <= $4
		ORDER BY timestamp
	`
	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPunches(rows)
}

// List implements punch.PunchRepository.
func (r *punchRepositoryImpl) List(ctx context.Context, companyID string, filter punch.PunchFilter) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Source != nil {
		conditions = append(conditions, fmt.Sprintf("source = $%d", argIdx))
		args = append(args, *filter.Source)
		argIdx++
	}

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY timestamp DESC
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
		return nil, err
	}
	defer rows.Close()
	return scanPunches(rows)
}

func scanPunches(rows pgx.Rows) ([]punch.Punch, error) {
	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.EmployeeID, &p.Date, &p.Timestamp, &p.Direction, &p.Source,
			&p.Latitude, &p.Longitude, &p.GeoStatus, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return punches, nil
}
