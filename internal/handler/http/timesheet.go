package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
	"github.com/wfmlabs/workforce-backend-go/internal/handler/http/middleware"
	"github.com/wfmlabs/workforce-backend-go/internal/handler/http/response"
	"github.com/wfmlabs/workforce-backend-go/internal/service/export"
)

// TimesheetHandler defines the timesheet handler interface
type TimesheetHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateBulk(w http.ResponseWriter, r *http.Request)
	GenerateForPeriod(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Lock(w http.ResponseWriter, r *http.Request)
	UpdateNotes(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.Service
	exportService    export.Service
}

// NewTimesheetHandler creates a new timesheet handler
func NewTimesheetHandler(timesheetService timesheet.Service, exportService export.Service) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		exportService:    exportService,
	}
}

// Generate aggregates one (employee, location, period) tuple
func (h *timesheetHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Generate(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateBulk aggregates a list of tuples, reporting per-tuple failures
func (h *timesheetHandlerImpl) GenerateBulk(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.BulkGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.GenerateBulk(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateForPeriod discovers every punching pair in the period and bulk-generates
func (h *timesheetHandlerImpl) GenerateForPeriod(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.GenerateForPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.GenerateForPeriod(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get returns one timesheet by ID
func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.Get(r.Context(), claims.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Staff may only read their own timesheets.
	if !user.HasPermission(claims.Role, user.PermissionTimesheetViewAll) {
		if claims.EmployeeID == nil || result.EmployeeID != *claims.EmployeeID {
			response.Forbidden(w, "Permission denied")
			return
		}
	}

	response.Success(w, result)
}

// List returns timesheets with filters and pagination
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := h.listFilter(r, claims)

	result, err := h.timesheetService.List(r.Context(), claims.CompanyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Timesheets, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Approve transitions a draft timesheet to approved
func (h *timesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.Approve(r.Context(), claims.CompanyID, chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved", result)
}

// Lock transitions an approved timesheet to locked
func (h *timesheetHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.Lock(r.Context(), claims.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet locked", result)
}

// UpdateNotes sets free-text notes on a draft timesheet
func (h *timesheetHandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timesheetService.UpdateNotes(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export streams the selected timesheets as CSV or XLSX
func (h *timesheetHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := export.Request{
		Filter: h.listFilter(r, claims),
		Format: export.Format(r.URL.Query().Get("format")),
		Fields: export.ParseFields(r.URL.Query().Get("fields")),
	}

	result, err := h.exportService.Export(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)
}

func (h *timesheetHandlerImpl) listFilter(r *http.Request, claims middleware.TokenClaims) timesheet.TimesheetFilter {
	filter := timesheet.TimesheetFilter{
		EmployeeID:  getStringQueryParam(r, "employee_id"),
		LocationID:  getStringQueryParam(r, "location_id"),
		Status:      getStringQueryParam(r, "status"),
		PeriodStart: getStringQueryParam(r, "period_start"),
		PeriodEnd:   getStringQueryParam(r, "period_end"),
		Page:        getIntQueryParam(r, "page", 1),
		Limit:       getIntQueryParam(r, "limit", 20),
	}

	// Staff see only their own rows regardless of the filter.
	if !user.HasPermission(claims.Role, user.PermissionTimesheetViewAll) && claims.EmployeeID != nil {
		filter.EmployeeID = claims.EmployeeID
	}

	return filter
}
