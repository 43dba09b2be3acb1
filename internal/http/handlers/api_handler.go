// README: JSON API handlers; stateless equivalents of the page actions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/attractions"
	"tripplanner/internal/itinerary"
)

type APIHandler struct {
	planner Planner
}

func NewAPIHandler(planner Planner) *APIHandler {
	return &APIHandler{planner: planner}
}

type itineraryResponse struct {
	Days []itinerary.Day `json:"days"`
}

type attractionsResponse struct {
	Query       string                   `json:"query"`
	Attractions []attractions.Attraction `json:"attractions"`
}

// Itinerary handles POST /api/itinerary.
func (h *APIHandler) Itinerary(c *gin.Context) {
	var form tripForm
	if err := c.ShouldBindJSON(&form); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	it, err := h.planner.PlanItinerary(c.Request.Context(), form.request())
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, itineraryResponse{Days: it.Days})
}

// Attractions handles GET /api/attractions?destination=.
func (h *APIHandler) Attractions(c *gin.Context) {
	destination := c.Query("destination")
	list, err := h.planner.LocalAttractions(c.Request.Context(), destination)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	if list == nil {
		list = []attractions.Attraction{}
	}
	writeJSON(c, http.StatusOK, attractionsResponse{Query: attractions.Query(destination), Attractions: list})
}
