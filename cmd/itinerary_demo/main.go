// README: CLI demo; generates one itinerary (and optionally attractions) and prints the rendered text.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tripplanner/internal/ai"
	"tripplanner/internal/config"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/logger"
	"tripplanner/internal/render"
	"tripplanner/internal/service"
)

func main() {
	var (
		origin      = flag.String("from", "", "starting location")
		destination = flag.String("to", "", "destination city or country (required)")
		start       = flag.String("start", time.Now().Format(itinerary.DateLayout), "start date, YYYY-MM-DD")
		end         = flag.String("end", time.Now().AddDate(0, 0, 2).Format(itinerary.DateLayout), "end date, YYYY-MM-DD")
		prefs       = flag.String("prefs", "", "travel preferences")
		withSights  = flag.Bool("attractions", false, "also list local attractions")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	slogger := logger.Setup(cfg)

	startDate, err := time.Parse(itinerary.DateLayout, *start)
	if err != nil {
		log.Fatalf("invalid -start: %v", err)
	}
	endDate, err := time.Parse(itinerary.DateLayout, *end)
	if err != nil {
		log.Fatalf("invalid -end: %v", err)
	}

	ctx := context.Background()
	provider, closeFn, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer closeFn()

	source, err := service.NewAttractionSource(cfg)
	if err != nil {
		log.Fatal(err)
	}
	planner := service.NewTripPlanner(provider, source,
		service.WithLogger(slogger),
		service.WithTimeout(cfg.UpstreamTimeout),
	)

	req := itinerary.Request{
		Origin:      *origin,
		Destination: *destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Preferences: *prefs,
	}
	fmt.Printf("Planning %s -> %s (%s to %s) with %s\n\n", req.Origin, req.Destination, *start, *end, provider.Model())

	it, err := planner.PlanItinerary(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate itinerary: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(render.Itinerary(it).Text())

	if *withSights {
		list, err := planner.LocalAttractions(ctx, req.Destination)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching local attractions: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nLocal Attractions")
		fmt.Print(render.Attractions(list).Text())
	}
}
