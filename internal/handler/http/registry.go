package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/smbgAlokk/BharatForce-sub002/internal/handler/http/response"
)

// RegistryHandler serves the shift, weekly-off pattern, policy and geofence
// masters.
type RegistryHandler interface {
	CreateShift(w http.ResponseWriter, r *http.Request)
	GetShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)

	CreatePattern(w http.ResponseWriter, r *http.Request)
	GetPattern(w http.ResponseWriter, r *http.Request)
	ListPatterns(w http.ResponseWriter, r *http.Request)
	UpdatePattern(w http.ResponseWriter, r *http.Request)
	DeletePattern(w http.ResponseWriter, r *http.Request)

	CreatePolicy(w http.ResponseWriter, r *http.Request)
	GetPolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)
	DeletePolicy(w http.ResponseWriter, r *http.Request)

	CreateGeoFence(w http.ResponseWriter, r *http.Request)
	GetGeoFence(w http.ResponseWriter, r *http.Request)
	ListGeoFences(w http.ResponseWriter, r *http.Request)
	UpdateGeoFence(w http.ResponseWriter, r *http.Request)
	DeleteGeoFence(w http.ResponseWriter, r *http.Request)
}

type RegistryHandlerImpl struct {
	shiftService    shift.ShiftService
	policyService   policy.PolicyService
	geoFenceService punch.GeoFenceService
}

func NewRegistryHandler(
	shiftService shift.ShiftService,
	policyService policy.PolicyService,
	geoFenceService punch.GeoFenceService,
) RegistryHandler {
	return &RegistryHandlerImpl{
		shiftService:    shiftService,
		policyService:   policyService,
		geoFenceService: geoFenceService,
	}
}

// CreateShift implements RegistryHandler.
func (h *RegistryHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift created", result)
}

// GetShift implements RegistryHandler.
func (h *RegistryHandlerImpl) GetShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	result, err := h.shiftService.GetShift(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListShifts implements RegistryHandler.
func (h *RegistryHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpdateShift implements RegistryHandler.
func (h *RegistryHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.shiftService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift updated", result)
}

// DeleteShift implements RegistryHandler.
func (h *RegistryHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	if err := h.shiftService.DeleteShift(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// CreatePattern implements RegistryHandler.
func (h *RegistryHandlerImpl) CreatePattern(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateWeeklyOffPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.CreatePattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Weekly off pattern created", result)
}

// GetPattern implements RegistryHandler.
func (h *RegistryHandlerImpl) GetPattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pattern ID is required", nil)
		return
	}

	result, err := h.shiftService.GetPattern(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListPatterns implements RegistryHandler.
func (h *RegistryHandlerImpl) ListPatterns(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListPatterns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpdatePattern implements RegistryHandler.
func (h *RegistryHandlerImpl) UpdatePattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pattern ID is required", nil)
		return
	}

	var req shift.UpdateWeeklyOffPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.shiftService.UpdatePattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Weekly off pattern updated", result)
}

// DeletePattern implements RegistryHandler.
func (h *RegistryHandlerImpl) DeletePattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pattern ID is required", nil)
		return
	}

	if err := h.shiftService.DeletePattern(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Weekly off pattern deleted", nil)
}

// CreatePolicy implements RegistryHandler.
func (h *RegistryHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req policy.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.policyService.CreatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance policy created", result)
}

// GetPolicy implements RegistryHandler.
func (h *RegistryHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Policy ID is required", nil)
		return
	}

	result, err := h.policyService.GetPolicy(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListPolicies implements RegistryHandler.
func (h *RegistryHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	result, err := h.policyService.ListPolicies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpdatePolicy implements RegistryHandler.
func (h *RegistryHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Policy ID is required", nil)
		return
	}

	var req policy.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.policyService.UpdatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance policy updated", result)
}

// DeletePolicy implements RegistryHandler.
func (h *RegistryHandlerImpl) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Policy ID is required", nil)
		return
	}

	if err := h.policyService.DeletePolicy(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance policy deleted", nil)
}

// CreateGeoFence implements RegistryHandler.
func (h *RegistryHandlerImpl) CreateGeoFence(w http.ResponseWriter, r *http.Request) {
	var req punch.CreateGeoFenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.geoFenceService.CreateGeoFence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Geofence created", result)
}

// GetGeoFence implements RegistryHandler.
func (h *RegistryHandlerImpl) GetGeoFence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Geofence ID is required", nil)
		return
	}

	result, err := h.geoFenceService.GetGeoFence(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListGeoFences implements RegistryHandler.
func (h *RegistryHandlerImpl) ListGeoFences(w http.ResponseWriter, r *http.Request) {
	result, err := h.geoFenceService.ListGeoFences(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpdateGeoFence implements RegistryHandler.
func (h *RegistryHandlerImpl) UpdateGeoFence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Geofence ID is required", nil)
		return
	}

	var req punch.UpdateGeoFenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.geoFenceService.UpdateGeoFence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Geofence updated", result)
}

// DeleteGeoFence implements RegistryHandler.
func (h *RegistryHandlerImpl) DeleteGeoFence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Geofence ID is required", nil)
		return
	}

	if err := h.geoFenceService.DeleteGeoFence(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Geofence deleted", nil)
}
