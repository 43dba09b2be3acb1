// README: Itinerary request, normalized itinerary shape, and validation errors.
package itinerary

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used in forms and prompts.
const DateLayout = "2006-01-02"

var (
	ErrMissingDestination = errors.New("destination is required")
	ErrMissingDates       = errors.New("start and end dates are required")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")

	ErrMalformedItinerary = errors.New("malformed itinerary data")
	ErrEmptyItinerary     = errors.New("itinerary contains no days")
)

// Request is one user submission. It is never persisted.
type Request struct {
	Origin      string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Preferences string
}

// Validate checks the fields that must be present before any upstream call.
// Origin and preferences are optional.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return ErrMissingDestination
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return ErrMissingDates
	}
	if r.EndDate.Before(r.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// IsValidationError reports whether err came from Request.Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingDestination) ||
		errors.Is(err, ErrMissingDates) ||
		errors.Is(err, ErrInvalidDateRange)
}

// Itinerary is the model's day-keyed plan with the key order it was returned in.
// A non-nil Itinerary always has at least one day.
type Itinerary struct {
	Days []Day `json:"days"`
}

// Day holds either a list of activities or, when the model returned something
// other than a list for that key, the raw value as Note.
type Day struct {
	Label      string     `json:"label"`
	IsList     bool       `json:"is_list"`
	Activities []Activity `json:"activities,omitempty"`
	Note       string     `json:"note,omitempty"`
}

// Activity fields are all optional. When the list item was not an object, Plain is
// set and Text carries the item instead.
type Activity struct {
	Activity    string `json:"activity,omitempty"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	Plain       bool   `json:"plain,omitempty"`
	Text        string `json:"text,omitempty"`
}
