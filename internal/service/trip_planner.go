// README: TripPlanner orchestrates prompt building, the LLM call, normalization and attraction lookup.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tripplanner/internal/ai"
	"tripplanner/internal/attractions"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/maps"
	"tripplanner/internal/metrics"
)

// RouteEstimator is satisfied by maps.RouteService.
type RouteEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string) (maps.Estimate, error)
}

// TripPlanner runs one user action per call. It holds no per-user state.
type TripPlanner struct {
	llm     ai.LLMProvider
	source  attractions.Source
	routes  RouteEstimator
	metrics *metrics.Metrics
	log     *slog.Logger
	timeout time.Duration
}

type Option func(*TripPlanner)

// WithRouteEstimator enables travel estimates. Without it TravelEstimate returns ErrNoEstimator.
func WithRouteEstimator(r RouteEstimator) Option {
	return func(p *TripPlanner) { p.routes = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *TripPlanner) { p.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *TripPlanner) { p.metrics = m }
}

// WithTimeout bounds each upstream call.
func WithTimeout(d time.Duration) Option {
	return func(p *TripPlanner) { p.timeout = d }
}

var (
	ErrNoEstimator = errors.New("travel estimates are not configured")
	// ErrUpstream marks failures of the LLM, search or routing call itself.
	ErrUpstream = errors.New("upstream call failed")
)

func NewTripPlanner(llm ai.LLMProvider, source attractions.Source, opts ...Option) *TripPlanner {
	p := &TripPlanner{
		llm:     llm,
		source:  source,
		log:     slog.Default(),
		metrics: metrics.New(),
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasRoutes reports whether travel estimates are available.
func (p *TripPlanner) HasRoutes() bool {
	return p.routes != nil
}

// PlanItinerary validates req, asks the model for a plan and normalizes the answer.
// Invalid requests never reach the model.
func (p *TripPlanner) PlanItinerary(ctx context.Context, req itinerary.Request) (*itinerary.Itinerary, error) {
	if err := req.Validate(); err != nil {
		p.metrics.Itinerary(metrics.OutcomeInvalid)
		return nil, err
	}

	prompt := itinerary.BuildPrompt(req)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	start := time.Now()
	raw, err := p.llm.Complete(callCtx, prompt)
	p.metrics.ObserveUpstream(metrics.UpstreamLLM, start)
	if err != nil {
		p.metrics.Itinerary(metrics.OutcomeLLMError)
		p.log.ErrorContext(ctx, "llm completion failed", "model", p.llm.Model(), "err", err)
		return nil, fmt.Errorf("%w: generate itinerary: %w", ErrUpstream, err)
	}

	it, err := itinerary.Normalize(raw)
	if err != nil {
		p.metrics.Itinerary(metrics.OutcomeParseError)
		p.log.WarnContext(ctx, "itinerary decode failed", "model", p.llm.Model(), "err", err, "raw_len", len(raw))
		p.log.DebugContext(ctx, "raw model output", "raw", raw)
		return nil, err
	}

	p.metrics.Itinerary(metrics.OutcomeOK)
	p.log.InfoContext(ctx, "itinerary generated",
		"destination", req.Destination,
		"days", len(it.Days),
		"latency", time.Since(start),
	)
	return it, nil
}

// LocalAttractions searches for the destination's top attractions and returns at most
// attractions.MaxResults of them.
func (p *TripPlanner) LocalAttractions(ctx context.Context, destination string) ([]attractions.Attraction, error) {
	if strings.TrimSpace(destination) == "" {
		p.metrics.Attractions(metrics.OutcomeInvalid)
		return nil, attractions.ErrMissingDestination
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	start := time.Now()
	list, err := p.source.Search(callCtx, attractions.Query(destination))
	p.metrics.ObserveUpstream(metrics.UpstreamSearch, start)
	if err != nil {
		p.metrics.Attractions(metrics.OutcomeError)
		p.log.ErrorContext(ctx, "attraction search failed", "destination", destination, "err", err)
		return nil, fmt.Errorf("%w: search attractions: %w", ErrUpstream, err)
	}

	p.metrics.Attractions(metrics.OutcomeOK)
	list = attractions.Truncate(list)
	p.log.InfoContext(ctx, "attractions fetched", "destination", destination, "count", len(list))
	return list, nil
}

// TravelEstimate returns a driving estimate from origin to destination.
func (p *TripPlanner) TravelEstimate(ctx context.Context, origin, destination string) (maps.Estimate, error) {
	if p.routes == nil {
		return maps.Estimate{}, ErrNoEstimator
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return maps.Estimate{}, maps.ErrNoRoute
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	start := time.Now()
	est, err := p.routes.GetTravelEstimate(callCtx, origin, destination)
	p.metrics.ObserveUpstream(metrics.UpstreamRoute, start)
	if err != nil {
		return maps.Estimate{}, fmt.Errorf("%w: travel estimate: %w", ErrUpstream, err)
	}
	return est, nil
}
