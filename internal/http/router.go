// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/http/handlers"
	"tripplanner/internal/http/middleware"
	"tripplanner/internal/http/web"
)

// Routes builds the gin engine with every page, API and ops route.
func (s *Server) Routes() (http.Handler, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(s.log), middleware.Recovery(s.log))
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	pages := handlers.NewPageHandler(s.planner, s.sessions, s.log)
	ui := r.Group("/", middleware.Session(s.sessionTTL))
	ui.GET("/", pages.Index)
	ui.POST("/itinerary", pages.Itinerary)
	ui.POST("/attractions", pages.Attractions)

	api := handlers.NewAPIHandler(s.planner)
	r.POST("/api/itinerary", api.Itinerary)
	r.GET("/api/attractions", api.Attractions)

	return r, nil
}
