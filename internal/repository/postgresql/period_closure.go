package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type closureRepositoryImpl struct {
	db *database.DB
}

func NewClosureRepository(db *database.DB) period.ClosureRepository {
	return &closureRepositoryImpl{db: db}
}

// Create implements period.ClosureRepository.
func (r *closureRepositoryImpl) Create(ctx context.Context, c period.PeriodClosure) (period.PeriodClosure, error) {
	q := GetQuerier(ctx, r.db)

	c.ID = uuid.New().String()
	query := `
		INSERT INTO period_closures (
			id, company_id, start_date, end_date, closed_by, closed_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		) RETURNING closed_at
	`
	err := q.QueryRow(ctx, query,
		c.ID, c.CompanyID, c.StartDate, c.EndDate, c.ClosedBy,
	).Scan(&c.ClosedAt)
	if err != nil {
		return period.PeriodClosure{}, err
	}
	return c, nil
}

// List implements period.ClosureRepository.
func (r *closureRepositoryImpl) List(ctx context.Context, companyID string) ([]period.PeriodClosure, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, start_date, end_date, closed_by, closed_at
		FROM period_closures
		WHERE company_id = $1
		ORDER BY start_date DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closures []period.PeriodClosure
	for rows.Next() {
		var c period.PeriodClosure
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.StartDate, &c.EndDate, &c.ClosedBy, &c.ClosedAt,
		); err != nil {
			return nil, err
		}
		closures = append(closures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return closures, nil
}

// IsClosed implements period.ClosureRepository.
func (r *closureRepositoryImpl) IsClosed(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM period_closures
			WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2
		)
	`
	var closed bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&closed); err != nil {
		return false, err
	}
	return closed, nil
}
