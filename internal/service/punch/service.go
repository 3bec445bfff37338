package punch

import (
	"context"
	"fmt"
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/user"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/utils"
)

type PunchServiceImpl struct {
	punch.PunchRepository
	geoFenceRepo punch.GeoFenceRepository
	closureRepo  period.ClosureRepository
}

func NewPunchService(
	punchRepo punch.PunchRepository,
	geoFenceRepo punch.GeoFenceRepository,
	closureRepo period.ClosureRepository,
) punch.PunchService {
	return &PunchServiceImpl{
		PunchRepository: punchRepo,
		geoFenceRepo:    geoFenceRepo,
		closureRepo:     closureRepo,
	}
}

// Record implements punch.PunchService.
func (s *PunchServiceImpl) Record(ctx context.Context, req punch.RecordPunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	employeeID := identity.EmployeeID
	// Only admins may record punches on behalf of another employee, e.g.
	// biometric device imports.
	if req.EmployeeID != "" && req.EmployeeID != identity.EmployeeID {
		if !identity.Role.IsAdmin() {
			return punch.PunchResponse{}, user.ErrAdminAccessRequired
		}
		employeeID = req.EmployeeID
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	closed, err := s.closureRepo.IsClosed(ctx, identity.CompanyID, date)
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to check period closure: %w", err)
	}
	if closed {
		return punch.PunchResponse{}, period.ErrPeriodClosed
	}

	timestamp, _ := time.Parse(time.RFC3339, req.Timestamp)

	geoStatus, err := s.classifyGeo(ctx, identity.CompanyID, req)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	created, err := s.PunchRepository.Create(ctx, punch.Punch{
		CompanyID:  identity.CompanyID,
		EmployeeID: employeeID,
		Date:       date,
		Timestamp:  timestamp,
		Direction:  punch.Direction(req.Direction),
		Source:     punch.Source(req.Source),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		GeoStatus:  geoStatus,
	})
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}
	return mapToResponse(created), nil
}

// classifyGeo grades the punch's GPS fix against active geofences. The grade
// is advisory; an out-of-range punch still lands in the ledger.
func (s *PunchServiceImpl) classifyGeo(ctx context.Context, companyID string, req punch.RecordPunchRequest) (punch.GeoStatus, error) {
	if req.LocationDenied {
		return punch.GeoStatusDenied, nil
	}
	if req.Latitude == nil || req.Longitude == nil {
		return punch.GeoStatusNotCaptured, nil
	}

	fences, err := s.geoFenceRepo.ListActive(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("failed to list geofences: %w", err)
	}
	if len(fences) == 0 {
		return punch.GeoStatusCaptured, nil
	}

	for _, fence := range fences {
		distance := utils.HaversineDistanceMeters(*req.Latitude, *req.Longitude, fence.Latitude, fence.Longitude)
		if distance <= float64(fence.RadiusMeters) {
			return punch.GeoStatusCaptured, nil
		}
	}
	return punch.GeoStatusOutOfRange, nil
}

// GetMyPunches implements punch.PunchService.
func (s *PunchServiceImpl) GetMyPunches(ctx context.Context, filter punch.PunchFilter) ([]punch.PunchResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.EmployeeID = &identity.EmployeeID
	punches, err := s.PunchRepository.List(ctx, identity.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list my punches: %w", err)
	}
	return mapToResponses(punches), nil
}

// ListPunches implements punch.PunchService.
func (s *PunchServiceImpl) ListPunches(ctx context.Context, filter punch.PunchFilter) ([]punch.PunchResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	punches, err := s.PunchRepository.List(ctx, identity.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	return mapToResponses(punches), nil
}

func mapToResponses(punches []punch.Punch) []punch.PunchResponse {
	responses := make([]punch.PunchResponse, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, mapToResponse(p))
	}
	return responses
}

func mapToResponse(p punch.Punch) punch.PunchResponse {
	return punch.PunchResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		Date:       p.Date.Format("2006-01-02"),
		Timestamp:  p.Timestamp.Format(time.RFC3339),
		Direction:  string(p.Direction),
		Source:     string(p.Source),
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		GeoStatus:  string(p.GeoStatus),
	}
}
