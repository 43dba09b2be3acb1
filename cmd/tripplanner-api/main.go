// README: Entry point; loads config, wires the planner through fx, serves the web UI and JSON API.
package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"tripplanner/internal/ai"
	"tripplanner/internal/attractions"
	"tripplanner/internal/config"
	httptransport "tripplanner/internal/http"
	"tripplanner/internal/infra"
	"tripplanner/internal/logger"
	"tripplanner/internal/metrics"
	"tripplanner/internal/service"
	"tripplanner/internal/session"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			logger.Setup,
			metrics.New,
			provideLLM,
			service.NewAttractionSource,
			provideSessions,
			providePlanner,
			provideServer,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
		fx.Invoke(startServer),
	)
	app.Run()
}

func provideLLM(lc fx.Lifecycle, cfg config.Config, log *slog.Logger) (ai.LLMProvider, error) {
	provider, closeFn, err := ai.NewProvider(context.Background(), cfg.LLM)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(closeFn))
	log.Info("llm provider ready", "provider", cfg.LLM.Provider, "model", provider.Model())
	return provider, nil
}

// provideSessions uses Redis when an address is configured, otherwise process memory.
func provideSessions(lc fx.Lifecycle, cfg config.Config, log *slog.Logger) (session.Store, error) {
	if cfg.Redis.Addr == "" {
		log.Info("session store: memory", "ttl", cfg.Session.TTL)
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := infra.NewRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	log.Info("session store: redis", "addr", cfg.Redis.Addr, "ttl", cfg.Session.TTL)
	return session.NewRedisStore(client, cfg.Session.TTL), nil
}

func providePlanner(
	cfg config.Config,
	log *slog.Logger,
	m *metrics.Metrics,
	llm ai.LLMProvider,
	source attractions.Source,
) (*service.TripPlanner, error) {
	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithTimeout(cfg.UpstreamTimeout),
	}
	routes, err := service.NewRouteEstimator(cfg)
	if err != nil {
		return nil, err
	}
	if routes != nil {
		opts = append(opts, service.WithRouteEstimator(routes))
	}
	return service.NewTripPlanner(llm, source, opts...), nil
}

func provideServer(
	cfg config.Config,
	log *slog.Logger,
	m *metrics.Metrics,
	planner *service.TripPlanner,
	sessions session.Store,
) *httptransport.Server {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return httptransport.NewServer(httptransport.ServerDeps{
		Planner:    planner,
		Sessions:   sessions,
		Metrics:    m,
		Logger:     log,
		SessionTTL: cfg.Session.TTL,
	})
}

func startServer(lc fx.Lifecycle, cfg config.Config, srv *httptransport.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start(cfg.HTTP.Addr)
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
