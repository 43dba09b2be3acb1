// README: Attraction result shape, query template, and the Source contract.
package attractions

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxResults caps every lookup.
const MaxResults = 5

var ErrMissingDestination = errors.New("destination is required")

// Attraction is one search hit. Empty fields are rendered with fallbacks.
type Attraction struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Source runs one search and returns hits in upstream order.
type Source interface {
	Search(ctx context.Context, query string) ([]Attraction, error)
}

// Query builds the fixed search phrase for a destination.
func Query(destination string) string {
	return fmt.Sprintf("top attractions in %s", strings.TrimSpace(destination))
}

// Truncate returns at most MaxResults entries.
func Truncate(list []Attraction) []Attraction {
	if len(list) > MaxResults {
		return list[:MaxResults]
	}
	return list
}
