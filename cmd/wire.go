package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	promadapter "github.com/bnema/trajectory-cli/internal/adapters/metrics/prometheus"
	"github.com/bnema/trajectory-cli/internal/adapters/prediction/rest"
	"github.com/bnema/trajectory-cli/internal/adapters/render/results"
	"github.com/bnema/trajectory-cli/internal/application"
	"github.com/bnema/trajectory-cli/internal/config"
	"github.com/bnema/trajectory-cli/internal/logging"
	"github.com/bnema/trajectory-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

type app struct {
	cfg               config.Config
	logger            *slog.Logger
	client            ports.PredictionClient
	metrics           ports.RequestMetrics
	clock             ports.Clock
	renderSession     func(results.SessionView) (string, error)
	renderSessionList func([]results.SessionRow) (string, error)
}

func wireApp(ctx context.Context, configPath string, logOutput io.Writer) (*app, error) {
	cfg, err := config.Load(viper.New(), configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logOutput, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder, err := promadapter.NewRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("register request metrics: %w", err)
	}

	if cfg.MetricsListen != "" {
		addr, err := serveMetrics(ctx, cfg.MetricsListen, registry, logger)
		if err != nil {
			return nil, fmt.Errorf("start metrics endpoint: %w", err)
		}
		logger.Info("metrics endpoint listening", "addr", addr.String())
	}

	logger.Debug("config loaded", "file", cfg.File, "endpoint", cfg.PredictEndpoint, "timeout", cfg.PredictTimeout)

	return &app{
		cfg:               cfg,
		logger:            logger,
		client:            rest.NewClient(cfg.PredictEndpoint, &http.Client{Timeout: cfg.PredictTimeout}),
		metrics:           recorder,
		clock:             ports.SystemClock{},
		renderSession:     results.RenderSession,
		renderSessionList: results.RenderSessionList,
	}, nil
}

func (a *app) newSessionStore() *application.SessionStore {
	return application.NewSessionStore(application.WithClock(a.clock))
}

func (a *app) newCoordinator(store *application.SessionStore) *application.RequestCoordinator {
	return application.NewRequestCoordinator(store, a.client,
		application.WithLogger(a.logger),
		application.WithRequestMetrics(a.metrics),
		application.WithCoordinatorClock(a.clock),
	)
}

// serveMetrics exposes gatherer on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics endpoint stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	return listener.Addr(), nil
}
