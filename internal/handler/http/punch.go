package http

import (
	"encoding/json"
	"net/http"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
	"github.com/wfmlabs/workforce-backend-go/internal/handler/http/middleware"
	"github.com/wfmlabs/workforce-backend-go/internal/handler/http/response"
)

// PunchHandler defines the punch event handler interface
type PunchHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.EventService
}

// NewPunchHandler creates a new punch handler
func NewPunchHandler(punchService punch.EventService) PunchHandler {
	return &punchHandlerImpl{punchService: punchService}
}

// Record accepts one punch event
func (h *punchHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	// Staff punch for themselves only.
	if claims.Role == user.RoleStaff {
		if claims.EmployeeID == nil || req.EmployeeID != *claims.EmployeeID {
			response.Forbidden(w, "Permission denied")
			return
		}
	}

	result, err := h.punchService.RecordPunch(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// List returns punch events with filters and pagination
func (h *punchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := punch.PunchFilter{
		EmployeeID: getStringQueryParam(r, "employee_id"),
		LocationID: getStringQueryParam(r, "location_id"),
		Kind:       getStringQueryParam(r, "kind"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}

	if !user.HasPermission(claims.Role, user.PermissionPunchViewAll) && claims.EmployeeID != nil {
		filter.EmployeeID = claims.EmployeeID
	}

	result, err := h.punchService.ListPunches(r.Context(), claims.CompanyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Punches, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
