package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"tripplanner/internal/attractions"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/maps"
)

type stubLLM struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (s *stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

func (s *stubLLM) Model() string { return "stub" }

type stubSource struct {
	list  []attractions.Attraction
	err   error
	query string
	calls int
}

func (s *stubSource) Search(_ context.Context, query string) ([]attractions.Attraction, error) {
	s.calls++
	s.query = query
	return s.list, s.err
}

type stubRoutes struct {
	est maps.Estimate
	err error
}

func (s stubRoutes) GetTravelEstimate(context.Context, string, string) (maps.Estimate, error) {
	return s.est, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validRequest() itinerary.Request {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return itinerary.Request{
		Origin:      "Porto",
		Destination: "Lisbon",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		Preferences: "museums",
	}
}

func TestPlanItinerary(t *testing.T) {
	tests := []struct {
		name     string
		req      func() itinerary.Request
		llm      *stubLLM
		wantErr  error
		wantDays int
		wantCall int
	}{
		{
			name:     "fenced json",
			req:      validRequest,
			llm:      &stubLLM{reply: "```json\n{\"1\": [{\"activity\":\"Museum\",\"time\":\"10am\"}], \"2\": \"Free day\"}\n```"},
			wantDays: 2,
			wantCall: 1,
		},
		{
			name:     "missing destination makes no call",
			req:      func() itinerary.Request { r := validRequest(); r.Destination = " "; return r },
			llm:      &stubLLM{},
			wantErr:  itinerary.ErrMissingDestination,
			wantCall: 0,
		},
		{
			name:     "end before start makes no call",
			req:      func() itinerary.Request { r := validRequest(); r.EndDate = r.StartDate.AddDate(0, 0, -1); return r },
			llm:      &stubLLM{},
			wantErr:  itinerary.ErrInvalidDateRange,
			wantCall: 0,
		},
		{
			name:     "malformed output",
			req:      validRequest,
			llm:      &stubLLM{reply: "Sure! Here is your plan: {"},
			wantErr:  itinerary.ErrMalformedItinerary,
			wantCall: 1,
		},
		{
			name:     "llm failure",
			req:      validRequest,
			llm:      &stubLLM{err: errors.New("rate limited")},
			wantCall: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewTripPlanner(tt.llm, &stubSource{}, WithLogger(quietLogger()))
			it, err := p.PlanItinerary(context.Background(), tt.req())

			if tt.llm.calls != tt.wantCall {
				t.Fatalf("llm calls = %d, want %d", tt.llm.calls, tt.wantCall)
			}
			if tt.wantDays > 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(it.Days) != tt.wantDays {
					t.Fatalf("days = %d, want %d", len(it.Days), tt.wantDays)
				}
				return
			}
			if err == nil || it != nil {
				t.Fatalf("expected error and nil itinerary, got %v, %+v", err, it)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlanItinerary_PromptCarriesRequest(t *testing.T) {
	llm := &stubLLM{reply: `{"1": []}`}
	p := NewTripPlanner(llm, &stubSource{}, WithLogger(quietLogger()))
	if _, err := p.PlanItinerary(context.Background(), validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Lisbon", "Porto", "2025-05-01", "2025-05-03", "museums"} {
		if !strings.Contains(llm.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestLocalAttractions_Truncates(t *testing.T) {
	var list []attractions.Attraction
	for i := 0; i < 9; i++ {
		list = append(list, attractions.Attraction{Title: fmt.Sprintf("Spot %d", i)})
	}
	src := &stubSource{list: list}
	p := NewTripPlanner(&stubLLM{}, src, WithLogger(quietLogger()))

	got, err := p.LocalAttractions(context.Background(), "Kyoto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != attractions.MaxResults {
		t.Fatalf("len = %d, want %d", len(got), attractions.MaxResults)
	}
	if src.query != "top attractions in Kyoto" {
		t.Errorf("query = %q", src.query)
	}
}

func TestLocalAttractions_Errors(t *testing.T) {
	src := &stubSource{}
	p := NewTripPlanner(&stubLLM{}, src, WithLogger(quietLogger()))
	if _, err := p.LocalAttractions(context.Background(), ""); !errors.Is(err, attractions.ErrMissingDestination) {
		t.Fatalf("error = %v, want ErrMissingDestination", err)
	}
	if src.calls != 0 {
		t.Fatalf("search called %d times for empty destination", src.calls)
	}

	src.err = &attractions.StatusError{StatusCode: 403}
	_, err := p.LocalAttractions(context.Background(), "Kyoto")
	if !errors.Is(err, attractions.ErrUpstreamStatus) {
		t.Fatalf("error = %v, want ErrUpstreamStatus", err)
	}
}

func TestTravelEstimate(t *testing.T) {
	p := NewTripPlanner(&stubLLM{}, &stubSource{}, WithLogger(quietLogger()))
	if _, err := p.TravelEstimate(context.Background(), "A", "B"); !errors.Is(err, ErrNoEstimator) {
		t.Fatalf("error = %v, want ErrNoEstimator", err)
	}

	want := maps.Estimate{Duration: 3 * time.Hour, Distance: "313 km"}
	p = NewTripPlanner(&stubLLM{}, &stubSource{}, WithLogger(quietLogger()), WithRouteEstimator(stubRoutes{est: want}))
	got, err := p.TravelEstimate(context.Background(), "Porto", "Lisbon")
	if err != nil || got != want {
		t.Fatalf("got %+v, %v", got, err)
	}

	p = NewTripPlanner(&stubLLM{}, &stubSource{}, WithLogger(quietLogger()), WithRouteEstimator(stubRoutes{err: maps.ErrNoRoute}))
	if _, err := p.TravelEstimate(context.Background(), "Porto", "Honolulu"); !errors.Is(err, maps.ErrNoRoute) {
		t.Fatalf("error = %v, want ErrNoRoute", err)
	}
}

func TestUpstreamErrorsAreMarked(t *testing.T) {
	p := NewTripPlanner(&stubLLM{err: errors.New("boom")}, &stubSource{err: errors.New("dial tcp: refused")}, WithLogger(quietLogger()))

	_, err := p.PlanItinerary(context.Background(), validRequest())
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("itinerary error %v should wrap ErrUpstream", err)
	}
	_, err = p.LocalAttractions(context.Background(), "Kyoto")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("attractions error %v should wrap ErrUpstream", err)
	}

	_, err = NewTripPlanner(&stubLLM{reply: "nope"}, &stubSource{}, WithLogger(quietLogger())).
		PlanItinerary(context.Background(), validRequest())
	if errors.Is(err, ErrUpstream) {
		t.Errorf("decode error %v must not wrap ErrUpstream", err)
	}
}
