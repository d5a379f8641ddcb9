package http

import (
	"encoding/json"
	"net/http"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
	"github.com/wfmlabs/workforce-backend-go/internal/handler/http/middleware"
	"github.com/wfmlabs/workforce-backend-go/internal/handler/http/response"
)

// LocationHandler defines the work-site handler interface
type LocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type locationHandlerImpl struct {
	locationService location.Service
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService location.Service) LocationHandler {
	return &locationHandlerImpl{locationService: locationService}
}

// Create registers a work site with its IANA timezone
func (h *locationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req location.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.locationService.CreateLocation(r.Context(), claims.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location created", result)
}

// List returns the company's work sites
func (h *locationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.locationService.ListLocations(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
