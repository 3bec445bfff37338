package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/handler/http/response"
)

type MappingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
}

type MappingHandlerImpl struct {
	mappingService mapping.MappingService
}

func NewMappingHandler(mappingService mapping.MappingService) MappingHandler {
	return &MappingHandlerImpl{mappingService: mappingService}
}

// Create implements MappingHandler.
func (h *MappingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req mapping.CreateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.mappingService.CreateMapping(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance mapping created", result)
}

// Get implements MappingHandler.
func (h *MappingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Mapping ID is required", nil)
		return
	}

	result, err := h.mappingService.GetMapping(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements MappingHandler.
func (h *MappingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.mappingService.ListMappings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements MappingHandler.
func (h *MappingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Mapping ID is required", nil)
		return
	}

	var req mapping.UpdateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.mappingService.UpdateMapping(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance mapping updated", result)
}

// Delete implements MappingHandler.
func (h *MappingHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Mapping ID is required", nil)
		return
	}

	if err := h.mappingService.DeleteMapping(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance mapping deleted", nil)
}

// Resolve implements MappingHandler.
func (h *MappingHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	date := r.URL.Query().Get("date")
	if employeeID == "" || date == "" {
		response.BadRequest(w, "employee_id and date query parameters are required", nil)
		return
	}

	result, err := h.mappingService.ResolveForDate(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
