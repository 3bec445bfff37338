package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/regularisation"
	"github.com/smbgAlokk/BharatForce-sub002/internal/handler/http/response"
)

type RegularisationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ManagerAction(w http.ResponseWriter, r *http.Request)
	HRAction(w http.ResponseWriter, r *http.Request)
}

type RegularisationHandlerImpl struct {
	regularisationService regularisation.RegularisationService
}

func NewRegularisationHandler(regularisationService regularisation.RegularisationService) RegularisationHandler {
	return &RegularisationHandlerImpl{regularisationService: regularisationService}
}

// Create implements RegularisationHandler.
func (h *RegularisationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req regularisation.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.regularisationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Regularisation request created", result)
}

// Submit implements RegularisationHandler.
func (h *RegularisationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.regularisationService.Submit(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Regularisation request submitted", result)
}

// Get implements RegularisationHandler.
func (h *RegularisationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.regularisationService.GetRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetMyRequests implements RegularisationHandler.
func (h *RegularisationHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.regularisationService.GetMyRequests(r.Context(), listFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// ListPending implements RegularisationHandler.
func (h *RegularisationHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.regularisationService.ListPending(r.Context(), listFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// ManagerAction implements RegularisationHandler.
func (h *RegularisationHandlerImpl) ManagerAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req regularisation.ManagerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.regularisationService.ManagerAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Manager action recorded", result)
}

// HRAction implements RegularisationHandler.
func (h *RegularisationHandlerImpl) HRAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req regularisation.HRActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.regularisationService.HRAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "HR action recorded", result)
}

func listFilterFromQuery(r *http.Request) regularisation.ListFilter {
	query := r.URL.Query()

	var filter regularisation.ListFilter
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return filter
}
