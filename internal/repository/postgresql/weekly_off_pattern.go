package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type weeklyOffPatternRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyOffPatternRepository(db *database.DB) shift.WeeklyOffPatternRepository {
	return &weeklyOffPatternRepositoryImpl{db: db}
}

// Create implements shift.WeeklyOffPatternRepository.
func (r *weeklyOffPatternRepositoryImpl) Create(ctx context.Context, p shift.WeeklyOffPattern) (shift.WeeklyOffPattern, error) {
	q := GetQuerier(ctx, r.db)

	p.ID = uuid.New().String()
	rulesJSON, _ := json.Marshal(p.Rules)

	query := `
		INSERT INTO weekly_off_patterns (
			id, company_id, name, pattern_type, rules, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		p.ID, p.CompanyID, p.Name, p.PatternType, rulesJSON,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return shift.WeeklyOffPattern{}, err
	}
	return p, nil
}

// GetByID implements shift.WeeklyOffPatternRepository.
func (r *weeklyOffPatternRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.WeeklyOffPattern, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, pattern_type, rules, created_at, updated_at
		FROM weekly_off_patterns
		WHERE id = $1 AND company_id = $2
	`
	var p shift.WeeklyOffPattern
	var rulesJSON []byte
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.PatternType, &rulesJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.WeeklyOffPattern{}, shift.ErrPatternNotFound
		}
		return shift.WeeklyOffPattern{}, err
	}
	if rulesJSON != nil {
		json.Unmarshal(rulesJSON, &p.Rules)
	}
	return p, nil
}

// List implements shift.WeeklyOffPatternRepository.
func (r *weeklyOffPatternRepositoryImpl) List(ctx context.Context, companyID string) ([]shift.WeeklyOffPattern, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, pattern_type, rules, created_at, updated_at
		FROM weekly_off_patterns
		WHERE company_id = $1
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []shift.WeeklyOffPattern
	for rows.Next() {
		var p shift.WeeklyOffPattern
		var rulesJSON []byte
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.PatternType, &rulesJSON,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if rulesJSON != nil {
			json.Unmarshal(rulesJSON, &p.Rules)
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// Update implements shift.WeeklyOffPatternRepository.
func (r *weeklyOffPatternRepositoryImpl) Update(ctx context.Context, p shift.WeeklyOffPattern) error {
	q := GetQuerier(ctx, r.db)

	rulesJSON, _ := json.Marshal(p.Rules)
	query := `
		UPDATE weekly_off_patterns
		SET name = $1, pattern_type = $2, rules = $3, updated_at = $4
		WHERE id = $5 AND company_id = $6
	`
	commandTag, err := q.Exec(ctx, query, p.Name, p.PatternType, rulesJSON, time.Now(), p.ID, p.CompanyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrPatternNotFound
	}
	return nil
}

// Delete implements shift.WeeklyOffPatternRepository.
func (r *weeklyOffPatternRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM weekly_off_patterns
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrPatternNotFound
	}
	return nil
}
