package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/david-rodelgo/gastoscompartidos/internal/auth"
	"github.com/david-rodelgo/gastoscompartidos/internal/config"
	"github.com/david-rodelgo/gastoscompartidos/internal/events"
	"github.com/david-rodelgo/gastoscompartidos/internal/metrics"
	"github.com/david-rodelgo/gastoscompartidos/internal/middleware"
	"github.com/david-rodelgo/gastoscompartidos/internal/service"
	"github.com/david-rodelgo/gastoscompartidos/pkg/api/apiconnect"
	"github.com/david-rodelgo/gastoscompartidos/pkg/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.DataBackend)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to initialize events: %w", err)
		}
		publisher = amqpPublisher
		slog.Info("Trip events enabled", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	svc := service.NewTripService(store, tokens, publisher, m)

	mux := http.NewServeMux()
	tripPath, tripHandler := apiconnect.NewTripServiceHandler(svc,
		connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			middleware.LoggingInterceptor(),
			middleware.RequireTripAccess(store, tokens),
		),
	)
	mux.Handle(tripPath, tripHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			return fmt.Errorf("failed to resolve static path: %w", err)
		}
		mux.Handle("/", staticHandler(staticDir))
		slog.Info("Serving static files", "path", staticDir)
	}

	// h2c serves HTTP/2 without TLS, which connect clients use by default.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "url", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
