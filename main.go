package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"lg/wellness-go-api/internal/config"
	"lg/wellness-go-api/internal/observability"
	"lg/wellness-go-api/internal/postgres"
	"lg/wellness-go-api/internal/tracker"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := observability.NewLogger(cfg.Log)
	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database pool ready")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return err
	}

	hub := newRealtimeHub(logger, func(delta int) {
		if delta > 0 {
			metrics.ClientConnected()
		} else {
			metrics.ClientDisconnected()
		}
	})

	store := postgres.NewStore(pool)
	svc := tracker.NewService(logger, store, store, store, store, postgres.NewTxManager(pool),
		tracker.WithRecorder(metrics),
		tracker.WithNotifier(hub),
		tracker.WithRecalcTimeout(cfg.Tracker.RecalcTimeout),
		tracker.WithThresholds(tracker.Thresholds{
			WaterGoalGlasses: cfg.Tracker.WaterGoalGlasses,
			GoalBalanceKcal:  cfg.Tracker.GoalBalanceKcal,
			MaintenanceBand:  cfg.Tracker.MaintenanceBand,
		}),
	)

	var tokens *cache.Cache
	if cfg.Auth.TokenCacheTTL > 0 {
		tokens = cache.New(cfg.Auth.TokenCacheTTL, 2*cfg.Auth.TokenCacheTTL)
	}

	h := &Handler{
		store:            store,
		svc:              svc,
		log:              logger,
		metrics:          metrics,
		hub:              hub,
		ping:             pool.Ping,
		tokens:           tokens,
		bcryptCost:       cfg.Auth.BcryptCost,
		defaultStepsGoal: cfg.Tracker.DefaultStepsGoal,
		waterGoal:        cfg.Tracker.WaterGoalGlasses,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	_ = router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
