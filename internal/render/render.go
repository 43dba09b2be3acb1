// README: View models for itinerary and attraction output, shared by HTML templates and the CLI.
package render

import (
	"fmt"
	"strings"

	"tripplanner/internal/attractions"
	"tripplanner/internal/itinerary"
)

const (
	NoItinerary   = "No itinerary data found."
	NoAttractions = "No attractions found."

	fallbackActivity = "No activity"
	fallbackTime     = "No time"
	fallbackTitle    = "No title"
	fallbackLink     = "#"
	fallbackNote     = "No details"
)

type ActivityView struct {
	Name        string
	Time        string
	Description string
	// Plain marks list items that were not objects; Raw carries their text.
	Plain bool
	Raw   string
}

// Line is the one-line form "{activity} at {time}".
func (a ActivityView) Line() string {
	if a.Plain {
		return "- " + a.Raw
	}
	return fmt.Sprintf("%s at %s", a.Name, a.Time)
}

type DayView struct {
	Title      string
	Activities []ActivityView
	// Note holds a day value that was not a list.
	Note   string
	IsList bool
}

type ItineraryView struct {
	Empty       bool
	Placeholder string
	Days        []DayView
}

// Itinerary maps a normalized itinerary onto display blocks, one per day, in key order.
func Itinerary(it *itinerary.Itinerary) ItineraryView {
	if it == nil || len(it.Days) == 0 {
		return ItineraryView{Empty: true, Placeholder: NoItinerary}
	}
	view := ItineraryView{Days: make([]DayView, 0, len(it.Days))}
	for _, d := range it.Days {
		dv := DayView{Title: dayTitle(d.Label), IsList: d.IsList}
		if !d.IsList {
			dv.Note = orDefault(d.Note, fallbackNote)
		}
		for _, a := range d.Activities {
			dv.Activities = append(dv.Activities, activityView(a))
		}
		view.Days = append(view.Days, dv)
	}
	return view
}

func dayTitle(label string) string {
	label = strings.TrimSpace(label)
	if strings.HasPrefix(strings.ToLower(label), "day") {
		return label
	}
	return "Day " + label
}

func activityView(a itinerary.Activity) ActivityView {
	if a.Plain {
		return ActivityView{Plain: true, Raw: a.Text}
	}
	return ActivityView{
		Name:        orDefault(a.Activity, fallbackActivity),
		Time:        orDefault(a.Time, fallbackTime),
		Description: a.Description,
	}
}

// Text renders the view as markdown-like plain text.
func (v ItineraryView) Text() string {
	if v.Empty {
		return v.Placeholder + "\n"
	}
	var b strings.Builder
	for i, d := range v.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**%s:**\n", d.Title)
		if !d.IsList {
			b.WriteString(d.Note + "\n")
			continue
		}
		for _, a := range d.Activities {
			if a.Plain {
				b.WriteString(a.Line() + "\n")
				continue
			}
			fmt.Fprintf(&b, "  %s\n", a.Line())
			if a.Description != "" {
				fmt.Fprintf(&b, "    %s\n", a.Description)
			}
		}
	}
	return b.String()
}

type AttractionView struct {
	Title   string
	Link    string
	Snippet string
}

type AttractionsView struct {
	Empty       bool
	Placeholder string
	Items       []AttractionView
}

// Attractions maps search hits onto display entries, at most attractions.MaxResults.
func Attractions(list []attractions.Attraction) AttractionsView {
	list = attractions.Truncate(list)
	if len(list) == 0 {
		return AttractionsView{Empty: true, Placeholder: NoAttractions}
	}
	view := AttractionsView{Items: make([]AttractionView, 0, len(list))}
	for _, a := range list {
		view.Items = append(view.Items, AttractionView{
			Title:   orDefault(a.Title, fallbackTitle),
			Link:    orDefault(a.Link, fallbackLink),
			Snippet: a.Snippet,
		})
	}
	return view
}

func (v AttractionsView) Text() string {
	if v.Empty {
		return v.Placeholder + "\n"
	}
	var b strings.Builder
	for _, a := range v.Items {
		fmt.Fprintf(&b, "**[%s](%s)**\n", a.Title, a.Link)
		if a.Snippet != "" {
			b.WriteString(a.Snippet + "\n")
		}
	}
	return b.String()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
