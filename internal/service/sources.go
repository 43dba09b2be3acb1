package service

import (
	"fmt"
	"net/http"

	"tripplanner/internal/attractions"
	"tripplanner/internal/config"
	"tripplanner/internal/maps"
)

// NewAttractionSource picks the configured search backend.
func NewAttractionSource(cfg config.Config) (attractions.Source, error) {
	switch cfg.Search.Provider {
	case config.SearchSerper:
		return attractions.NewSerperClient(cfg.Search.Endpoint, cfg.Search.APIKey, &http.Client{Timeout: cfg.UpstreamTimeout}), nil
	case config.SearchPlaces:
		return maps.NewPlacesService(cfg.Search.APIKey)
	default:
		return nil, fmt.Errorf("unsupported search provider %q", cfg.Search.Provider)
	}
}

// NewRouteEstimator returns nil when no Maps key is configured; travel estimates are then skipped.
func NewRouteEstimator(cfg config.Config) (RouteEstimator, error) {
	if cfg.Maps.APIKey == "" {
		return nil, nil
	}
	return maps.NewRouteService(cfg.Maps.APIKey)
}
