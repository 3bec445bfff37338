package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
)

type geoFenceRepositoryImpl struct {
	db *database.DB
}

func NewGeoFenceRepository(db *database.DB) punch.GeoFenceRepository {
	return &geoFenceRepositoryImpl{db: db}
}

const geoFenceColumns = `id, company_id, name, latitude, longitude, radius_meters,
	   is_active, created_at, updated_at`

// Create implements punch.GeoFenceRepository.
func (r *geoFenceRepositoryImpl) Create(ctx context.Context, g punch.GeoFenceLocation) (punch.GeoFenceLocation, error) {
	q := GetQuerier(ctx, r.db)

	g.ID = uuid.New().String()
	query := `
		INSERT INTO geofence_locations (
			id, company_id, name, latitude, longitude, radius_meters,
			is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		g.ID, g.CompanyID, g.Name, g.Latitude, g.Longitude, g.RadiusMeters, g.IsActive,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return punch.GeoFenceLocation{}, err
	}
	return g, nil
}

// GetByID implements punch.GeoFenceRepository.
func (r *geoFenceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (punch.GeoFenceLocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + geoFenceColumns + `
		FROM geofence_locations
		WHERE id = $1 AND company_id = $2
	`
	var g punch.GeoFenceLocation
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&g.ID, &g.CompanyID, &g.Name, &g.Latitude, &g.Longitude, &g.RadiusMeters,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.GeoFenceLocation{}, punch.ErrGeoFenceNotFound
		}
		return punch.GeoFenceLocation{}, err
	}
	return g, nil
}

// ListActive implements punch.GeoFenceRepository.
func (r *geoFenceRepositoryImpl) ListActive(ctx context.Context, companyID string) ([]punch.GeoFenceLocation, error) {
	return r.list(ctx, companyID, true)
}

// List implements punch.GeoFenceRepository.
func (r *geoFenceRepositoryImpl) List(ctx context.Context, companyID string) ([]punch.GeoFenceLocation, error) {
	return r.list(ctx, companyID, false)
}

func (r *geoFenceRepositoryImpl) list(ctx context.Context, companyID string, activeOnly bool) ([]punch.GeoFenceLocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + geoFenceColumns + `
		FROM geofence_locations
		WHERE company_id = $1
	`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fences []punch.GeoFenceLocation
	for rows.Next() {
		var g punch.GeoFenceLocation
		if err := rows.Scan(
			&g.ID, &g.CompanyID, &g.Name, &g.Latitude, &g.Longitude, &g.RadiusMeters,
			&g.IsActive, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		fences = append(fences, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fences, nil
}

// Update implements punch.GeoFenceRepository.
func (r *geoFenceRepositoryImpl) Update(ctx context.Context, g punch.GeoFenceLocation) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE geofence_locations
		SET name = $1, latitude = $2, longitude = $3, radius_meters = $4,
			is_active = $5, updated_at = $6
		WHERE id = $7 AND company_id = $8
	`
	commandTag, err := q.Exec(ctx, query,
		g.Name, g.Latitude, g.Longitude, g.RadiusMeters, g.IsActive, time.Now(),
		g.ID, g.CompanyID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return punch.ErrGeoFenceNotFound
	}
	return nil
}

// Delete implements punch.GeoFenceRepository.
func (r *geoFenceRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM geofence_locations
		WHERE id = $1 AND company_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return punch.ErrGeoFenceNotFound
	}
	return nil
}
