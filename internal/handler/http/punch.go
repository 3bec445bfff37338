package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/handler/http/response"
)

type PunchHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	GetMyPunches(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type PunchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &PunchHandlerImpl{punchService: punchService}
}

// Record implements PunchHandler.
func (h *PunchHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req punch.RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.punchService.Record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Punch recorded", result)
}

// GetMyPunches implements PunchHandler.
func (h *PunchHandlerImpl) GetMyPunches(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.GetMyPunches(r.Context(), punchFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements PunchHandler.
func (h *PunchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.ListPunches(r.Context(), punchFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func punchFilterFromQuery(r *http.Request) punch.PunchFilter {
	query := r.URL.Query()

	var filter punch.PunchFilter
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := query.Get("source"); v != "" {
		filter.Source = &v
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return filter
}
