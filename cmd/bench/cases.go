// README: Smoke cases for the page, JSON API, session storage and throughput.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"

	sessionCookie    = "trip_session"
	sessionKeyPrefix = "tripplanner:session:"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	redis *redis.Client

	// sessionID is captured from the page case and checked in Redis afterwards.
	sessionID string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK, ""),
		httpCase("API: metrics exposed", http.MethodGet, base+"/metrics", nil, http.StatusOK, "tripplanner_"),
		httpCase("API: itinerary rejects missing destination", http.MethodPost, base+"/api/itinerary",
			map[string]string{"start_date": "2025-05-01", "end_date": "2025-05-02"}, http.StatusBadRequest, "error"),
		httpCase("API: itinerary rejects end before start", http.MethodPost, base+"/api/itinerary",
			map[string]string{"destination": "Rome", "start_date": "2025-05-03", "end_date": "2025-05-01"}, http.StatusBadRequest, "End date"),
		httpCase("API: attractions rejects missing destination", http.MethodGet, base+"/api/attractions", nil, http.StatusBadRequest, "error"),
		{
			Name: "Page: session cookie issued",
			Run: func(ctx context.Context, r *Runner) Result {
				form := url.Values{"destination": {""}}
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/itinerary", strings.NewReader(form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				start := time.Now()
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				latency := time.Since(start)
				for _, c := range resp.Cookies() {
					if c.Name == sessionCookie {
						r.sessionID = c.Value
					}
				}
				if r.sessionID == "" {
					return Result{Status: statusFail, Latency: latency, Note: "no session cookie"}
				}
				if !strings.Contains(string(body), "Please fill in all required fields") {
					return Result{Status: statusFail, Latency: latency, Note: "validation message missing"}
				}
				return Result{Status: statusPass, Latency: latency}
			},
		},
		{
			Name: "Redis: session stored",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil || r.sessionID == "" {
					return Result{Status: statusSkip, Note: "needs redis and a session cookie"}
				}
				ttl, err := r.redis.TTL(ctx, sessionKeyPrefix+r.sessionID).Result()
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if ttl <= 0 {
					return Result{Status: statusFail, Note: "session key missing or without ttl"}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("ttl=%s", ttl.Round(time.Second))}
			},
		},
		{
			Name: "Live: itinerary generation",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: statusSkip, Note: "live=false"}
				}
				start := time.Now().AddDate(0, 1, 0)
				return liveItinerary(ctx, r, base+"/api/itinerary", map[string]string{
					"destination": r.cfg.Destination,
					"start_date":  start.Format("2006-01-02"),
					"end_date":    start.AddDate(0, 0, 2).Format("2006-01-02"),
					"preferences": "food, history",
				})
			},
		},
		{
			Name: "Live: attractions lookup",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: statusSkip, Note: "live=false"}
				}
				return liveAttractions(ctx, r, base+"/api/attractions?destination="+url.QueryEscape(r.cfg.Destination))
			},
		},
		{
			Name: "Perf: health throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/health")
			},
		},
		{
			Name: "Perf: page render throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/")
			},
		},
	}
}

func httpCase(name, method, url string, body any, wantStatus int, wantBody string) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode != wantStatus {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			if wantBody != "" && !strings.Contains(string(b), wantBody) {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("body lacks %q", wantBody)}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

func liveItinerary(ctx context.Context, r *Runner, url string, payload map[string]string) Result {
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	var out struct {
		Days  []json.RawMessage `json:"days"`
		Error string            `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Status: statusFail, Latency: latency, Note: err.Error()}
	}
	if resp.StatusCode != http.StatusOK || len(out.Days) == 0 {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d error=%q", resp.StatusCode, out.Error)}
	}
	return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("days=%d", len(out.Days))}
}

func liveAttractions(ctx context.Context, r *Runner, url string) Result {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	var out struct {
		Attractions []json.RawMessage `json:"attractions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Status: statusFail, Latency: latency, Note: err.Error()}
	}
	if resp.StatusCode != http.StatusOK || len(out.Attractions) > 5 {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d count=%d", resp.StatusCode, len(out.Attractions))}
	}
	return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("count=%d", len(out.Attractions))}
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}
