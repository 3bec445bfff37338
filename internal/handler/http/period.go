package http

import (
	"encoding/json"
	"net/http"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/handler/http/response"
)

type PeriodHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
	Lock(w http.ResponseWriter, r *http.Request)
	ListClosures(w http.ResponseWriter, r *http.Request)
}

type PeriodHandlerImpl struct {
	periodService period.PeriodService
}

func NewPeriodHandler(periodService period.PeriodService) PeriodHandler {
	return &PeriodHandlerImpl{periodService: periodService}
}

// Process implements PeriodHandler.
func (h *PeriodHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req period.RangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.periodService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance range processed", result)
}

// Lock implements PeriodHandler.
func (h *PeriodHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	var req period.RangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.periodService.Lock(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance period locked", result)
}

// ListClosures implements PeriodHandler.
func (h *PeriodHandlerImpl) ListClosures(w http.ResponseWriter, r *http.Request) {
	result, err := h.periodService.ListClosures(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
