package service

import (
	"testing"

	"tripplanner/internal/attractions"
	"tripplanner/internal/config"
	"tripplanner/internal/maps"
)

func TestNewAttractionSource(t *testing.T) {
	var cfg config.Config
	cfg.Search = config.SearchConfig{Provider: config.SearchSerper, APIKey: "k", Endpoint: config.DefaultSerperSearch}
	src, err := NewAttractionSource(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*attractions.SerperClient); !ok {
		t.Fatalf("expected serper client, got %T", src)
	}

	cfg.Search.Provider = config.SearchPlaces
	src, err = NewAttractionSource(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*maps.PlacesService); !ok {
		t.Fatalf("expected places service, got %T", src)
	}

	cfg.Search.Provider = "bing"
	if _, err := NewAttractionSource(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewRouteEstimator(t *testing.T) {
	var cfg config.Config
	r, err := NewRouteEstimator(cfg)
	if err != nil || r != nil {
		t.Fatalf("expected nil estimator without maps key, got %v, %v", r, err)
	}

	cfg.Maps.APIKey = "AIza-test"
	r, err = NewRouteEstimator(cfg)
	if err != nil || r == nil {
		t.Fatalf("expected estimator, got %v, %v", r, err)
	}
}
