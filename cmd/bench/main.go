// README: Smoke and load runner against a running tripplanner server; prints PASS/FAIL per case.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func main() {
	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	RedisAddr   string
	Live        bool
	Destination string
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

// loadConfig reads TRIP_BENCH_* defaults from the environment; flags override them.
func loadConfig(fs *flag.FlagSet, args []string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIP_BENCH")
	v.AutomaticEnv()
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("live", false)
	v.SetDefault("destination", "Lisbon, Portugal")
	v.SetDefault("timeout", 3*time.Minute)
	v.SetDefault("concurrency", 20)
	v.SetDefault("duration", 10*time.Second)

	var cfg Config
	fs.StringVar(&cfg.BaseURL, "base-url", v.GetString("base_url"), "API base URL")
	fs.StringVar(&cfg.RedisAddr, "redis", os.Getenv("TRIP_REDIS_ADDR"), "Redis address; empty skips session storage checks")
	fs.BoolVar(&cfg.Live, "live", v.GetBool("live"), "Run cases that call the LLM and search upstreams")
	fs.StringVar(&cfg.Destination, "destination", v.GetString("destination"), "Destination used by live cases")
	fs.DurationVar(&cfg.Timeout, "timeout", v.GetDuration("timeout"), "Total timeout")
	fs.IntVar(&cfg.Concurrency, "concurrency", v.GetInt("concurrency"), "Concurrency for perf tests")
	fs.DurationVar(&cfg.Duration, "duration", v.GetDuration("duration"), "Duration for perf tests")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return cfg, nil
}
