package punch

import (
	"context"
	"fmt"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
)

type GeoFenceServiceImpl struct {
	punch.GeoFenceRepository
}

func NewGeoFenceService(geoFenceRepo punch.GeoFenceRepository) punch.GeoFenceService {
	return &GeoFenceServiceImpl{
		GeoFenceRepository: geoFenceRepo,
	}
}

// CreateGeoFence implements punch.GeoFenceService.
func (s *GeoFenceServiceImpl) CreateGeoFence(ctx context.Context, req punch.CreateGeoFenceRequest) (punch.GeoFenceResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.GeoFenceResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return punch.GeoFenceResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.GeoFenceRepository.Create(ctx, punch.GeoFenceLocation{
		CompanyID:    identity.CompanyID,
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     isActive,
	})
	if err != nil {
		return punch.GeoFenceResponse{}, fmt.Errorf("failed to create geofence: %w", err)
	}
	return mapGeoFenceToResponse(created), nil
}

// GetGeoFence implements punch.GeoFenceService.
func (s *GeoFenceServiceImpl) GetGeoFence(ctx context.Context, id string) (punch.GeoFenceResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return punch.GeoFenceResponse{}, err
	}

	fence, err := s.GeoFenceRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return punch.GeoFenceResponse{}, err
	}
	return mapGeoFenceToResponse(fence), nil
}

// ListGeoFences implements punch.GeoFenceService.
func (s *GeoFenceServiceImpl) ListGeoFences(ctx context.Context) ([]punch.GeoFenceResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	fences, err := s.GeoFenceRepository.List(ctx, identity.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofences: %w", err)
	}

	responses := make([]punch.GeoFenceResponse, 0, len(fences))
	for _, fence := range fences {
		responses = append(responses, mapGeoFenceToResponse(fence))
	}
	return responses, nil
}

// UpdateGeoFence implements punch.GeoFenceService.
func (s *GeoFenceServiceImpl) UpdateGeoFence(ctx context.Context, req punch.UpdateGeoFenceRequest) (punch.GeoFenceResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.GeoFenceResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return punch.GeoFenceResponse{}, err
	}

	fence, err := s.GeoFenceRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return punch.GeoFenceResponse{}, err
	}

	if req.Name != nil {
		fence.Name = *req.Name
	}
	if req.Latitude != nil {
		fence.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		fence.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		fence.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		fence.IsActive = *req.IsActive
	}

	if err := s.GeoFenceRepository.Update(ctx, fence); err != nil {
		return punch.GeoFenceResponse{}, fmt.Errorf("failed to update geofence: %w", err)
	}
	return mapGeoFenceToResponse(fence), nil
}

// DeleteGeoFence implements punch.GeoFenceService.
func (s *GeoFenceServiceImpl) DeleteGeoFence(ctx context.Context, id string) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.GeoFenceRepository.GetByID(ctx, id, identity.CompanyID); err != nil {
		return err
	}
	if err := s.GeoFenceRepository.Delete(ctx, id, identity.CompanyID); err != nil {
		return fmt.Errorf("failed to delete geofence: %w", err)
	}
	return nil
}

func mapGeoFenceToResponse(g punch.GeoFenceLocation) punch.GeoFenceResponse {
	return punch.GeoFenceResponse{
		ID:           g.ID,
		Name:         g.Name,
		Latitude:     g.Latitude,
		Longitude:    g.Longitude,
		RadiusMeters: g.RadiusMeters,
		IsActive:     g.IsActive,
	}
}
