package punch

import "context"

// PunchService handles punch ingestion and ledger queries. Geofence masters
// are managed by the registry service; this service only reads them to
// classify GPS status.
type PunchService interface {
	// Record appends one punch to the ledger, classifying its GPS fix
	// against the company's active geofences.
	Record(ctx context.Context, req RecordPunchRequest) (PunchResponse, error)

	GetMyPunches(ctx context.Context, filter PunchFilter) ([]PunchResponse, error)

	ListPunches(ctx context.Context, filter PunchFilter) ([]PunchResponse, error)
}

// GeoFenceService manages geofence location masters (admin only).
type GeoFenceService interface {
	CreateGeoFence(ctx context.Context, req CreateGeoFenceRequest) (GeoFenceResponse, error)
	GetGeoFence(ctx context.Context, id string) (GeoFenceResponse, error)
	ListGeoFences(ctx context.Context) ([]GeoFenceResponse, error)
	UpdateGeoFence(ctx context.Context, req UpdateGeoFenceRequest) (GeoFenceResponse, error)
	DeleteGeoFence(ctx context.Context, id string) error
}
