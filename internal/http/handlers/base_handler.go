// README: Base handler utilities (planner contract, JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/attractions"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/maps"
	"tripplanner/internal/service"
)

// Planner is the slice of service.TripPlanner the handlers use.
type Planner interface {
	PlanItinerary(ctx context.Context, req itinerary.Request) (*itinerary.Itinerary, error)
	LocalAttractions(ctx context.Context, destination string) ([]attractions.Attraction, error)
	TravelEstimate(ctx context.Context, origin, destination string) (maps.Estimate, error)
	HasRoutes() bool
}

const (
	msgRequiredFields    = "Please fill in all required fields in the sidebar."
	msgRequiredDest      = "Please enter a destination in the sidebar."
	msgInvalidDateRange  = "End date must not be before start date."
	msgDecodeFailed      = "Failed to decode itinerary data. Please try again or adjust your input."
	msgGenerateFailed    = "Failed to generate itinerary."
	msgAttractionsPrefix = "Error fetching local attractions: "
	msgAttractionsFailed = "Failed to fetch local attractions."
)

type errorResponse struct {
	Error string `json:"error"`
}

// tripForm is shared by the page form and the JSON API.
type tripForm struct {
	Origin      string `form:"origin" json:"origin"`
	Destination string `form:"destination" json:"destination"`
	StartDate   string `form:"start_date" json:"start_date"`
	EndDate     string `form:"end_date" json:"end_date"`
	Preferences string `form:"preferences" json:"preferences"`
}

// request converts the raw form into an itinerary.Request. Dates that do not parse
// are left zero so Validate reports them as missing.
func (f tripForm) request() itinerary.Request {
	return itinerary.Request{
		Origin:      strings.TrimSpace(f.Origin),
		Destination: strings.TrimSpace(f.Destination),
		StartDate:   parseDate(f.StartDate),
		EndDate:     parseDate(f.EndDate),
		Preferences: strings.TrimSpace(f.Preferences),
	}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(itinerary.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePlannerError(c *gin.Context, err error) {
	switch {
	case itinerary.IsValidationError(err), errors.Is(err, attractions.ErrMissingDestination):
		writeError(c, http.StatusBadRequest, userMessage(err))
	case errors.Is(err, itinerary.ErrMalformedItinerary), errors.Is(err, itinerary.ErrEmptyItinerary):
		writeError(c, http.StatusBadGateway, msgDecodeFailed)
	case errors.Is(err, service.ErrUpstream):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// userMessage turns a planner error into the inline text shown in the page.
func userMessage(err error) string {
	switch {
	case errors.Is(err, itinerary.ErrInvalidDateRange):
		return msgInvalidDateRange
	case errors.Is(err, itinerary.ErrMissingDestination), errors.Is(err, itinerary.ErrMissingDates):
		return msgRequiredFields
	case errors.Is(err, attractions.ErrMissingDestination):
		return msgRequiredDest
	case errors.Is(err, itinerary.ErrMalformedItinerary), errors.Is(err, itinerary.ErrEmptyItinerary):
		return msgDecodeFailed
	}
	return msgGenerateFailed
}
