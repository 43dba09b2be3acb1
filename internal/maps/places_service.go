package maps

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"googlemaps.github.io/maps"

	"tripplanner/internal/attractions"
)

// PlacesService handles interactions with Google Places API.
// It satisfies attractions.Source.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
// Extra options (e.g. maps.WithBaseURL) are passed through to the client.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// Search runs a Places text search and maps each result to an attraction.
func (s *PlacesService) Search(ctx context.Context, query string) ([]attractions.Attraction, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	results := make([]attractions.Attraction, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, attractions.Attraction{
			Title:   r.Name,
			Link:    placeURL(r.Name, r.PlaceID),
			Snippet: placeSnippet(r.FormattedAddress, r.Rating, r.UserRatingsTotal),
		})
	}
	return results, nil
}

func placeURL(name, placeID string) string {
	if placeID == "" {
		return ""
	}
	v := url.Values{}
	v.Set("api", "1")
	v.Set("query", name)
	v.Set("query_place_id", placeID)
	return "https://www.google.com/maps/search/?" + v.Encode()
}

func placeSnippet(address string, rating float32, total int) string {
	parts := make([]string, 0, 2)
	if address != "" {
		parts = append(parts, address)
	}
	if rating > 0 {
		parts = append(parts, fmt.Sprintf("Rated %.1f (%d reviews)", rating, total))
	}
	return strings.Join(parts, ". ")
}
