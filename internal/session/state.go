// README: Per-session UI state and the Store contract.
package session

import (
	"context"
	"errors"

	"tripplanner/internal/attractions"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/maps"
)

var ErrInvalidID = errors.New("invalid session id")

// Form echoes the last submitted sidebar values back into the page.
type Form struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Preferences string `json:"preferences"`
}

// State is everything one browser session sees. A nil Itinerary means nothing has been
// generated yet; AttractionsLoaded distinguishes "never fetched" from "fetched, none found".
type State struct {
	Form              Form                     `json:"form"`
	Itinerary         *itinerary.Itinerary     `json:"itinerary,omitempty"`
	Travel            *maps.Estimate           `json:"travel,omitempty"`
	Attractions       []attractions.Attraction `json:"attractions,omitempty"`
	AttractionsLoaded bool                     `json:"attractions_loaded"`
}

// Store loads and saves State by session id. Load of an unknown id returns an empty State.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, id string, st *State) error
}
