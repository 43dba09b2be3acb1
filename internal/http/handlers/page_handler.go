// README: Page handlers; the sidebar form, both tabs and per-session state.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/attractions"
	"tripplanner/internal/http/middleware"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/render"
	"tripplanner/internal/session"
)

const (
	tabItinerary   = "itinerary"
	tabAttractions = "attractions"
)

type PageHandler struct {
	planner  Planner
	sessions session.Store
	log      *slog.Logger
}

func NewPageHandler(planner Planner, sessions session.Store, log *slog.Logger) *PageHandler {
	return &PageHandler{planner: planner, sessions: sessions, log: log}
}

type pageData struct {
	Tab               string
	Form              session.Form
	Errors            []string
	HasItinerary      bool
	Itinerary         render.ItineraryView
	Travel            string
	AttractionsLoaded bool
	Attractions       render.AttractionsView
}

func newPageData(tab string, st *session.State) pageData {
	if tab != tabAttractions {
		tab = tabItinerary
	}
	d := pageData{
		Tab:               tab,
		Form:              st.Form,
		HasItinerary:      st.Itinerary != nil,
		Itinerary:         render.Itinerary(st.Itinerary),
		AttractionsLoaded: st.AttractionsLoaded,
		Attractions:       render.Attractions(st.Attractions),
	}
	if st.Travel != nil {
		d.Travel = render.Travel(*st.Travel)
	}
	return d
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) {
	st, ok := h.load(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "index.html", newPageData(c.Query("tab"), st))
}

// Itinerary handles POST /itinerary. Invalid input is reported inline without any
// upstream call; a failed generation keeps the previous itinerary.
func (h *PageHandler) Itinerary(c *gin.Context) {
	st, ok := h.load(c)
	if !ok {
		return
	}
	form := h.bindForm(c)
	st.Form = session.Form(form)

	ctx := c.Request.Context()
	it, err := h.planner.PlanItinerary(ctx, form.request())
	if err != nil {
		data := newPageData(tabItinerary, st)
		data.Errors = []string{userMessage(err)}
		if errors.Is(err, itinerary.ErrMalformedItinerary) || errors.Is(err, itinerary.ErrEmptyItinerary) {
			data.Errors = append(data.Errors, msgGenerateFailed)
		}
		h.save(c, st)
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	st.Itinerary = it
	st.Travel = nil
	if h.planner.HasRoutes() && form.Origin != "" {
		est, err := h.planner.TravelEstimate(ctx, form.Origin, form.Destination)
		if err != nil {
			h.log.WarnContext(ctx, "travel estimate unavailable", "err", err)
		} else {
			st.Travel = &est
		}
	}
	h.save(c, st)
	c.HTML(http.StatusOK, "index.html", newPageData(tabItinerary, st))
}

// Attractions handles POST /attractions.
func (h *PageHandler) Attractions(c *gin.Context) {
	st, ok := h.load(c)
	if !ok {
		return
	}
	form := h.bindForm(c)
	st.Form = session.Form(form)

	list, err := h.planner.LocalAttractions(c.Request.Context(), form.Destination)
	if err != nil {
		data := newPageData(tabAttractions, st)
		if errors.Is(err, attractions.ErrMissingDestination) {
			data.Errors = []string{msgRequiredDest}
		} else {
			data.Errors = []string{msgAttractionsPrefix + err.Error(), msgAttractionsFailed}
		}
		h.save(c, st)
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	st.Attractions = list
	st.AttractionsLoaded = true
	h.save(c, st)
	c.HTML(http.StatusOK, "index.html", newPageData(tabAttractions, st))
}

// bindForm returns whatever fields could be bound. A body that fails to bind leaves them
// empty, and the action then reports the missing fields inline like any incomplete form.
func (h *PageHandler) bindForm(c *gin.Context) tripForm {
	var form tripForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.DebugContext(c.Request.Context(), "form bind failed",
			"path", c.Request.URL.Path,
			"request_id", middleware.RequestIDFrom(c),
			"err", err,
		)
	}
	return form
}

func (h *PageHandler) load(c *gin.Context) (*session.State, bool) {
	st, err := h.sessions.Load(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "session load failed", "err", err)
		c.String(http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return st, true
}

// save logs and moves on; the page is still rendered from the in-memory state.
func (h *PageHandler) save(c *gin.Context, st *session.State) {
	if err := h.sessions.Save(c.Request.Context(), middleware.SessionID(c), st); err != nil {
		h.log.ErrorContext(c.Request.Context(), "session save failed", "err", err)
	}
}
