package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/erginozdemir/tools4audit/internal/adapter/http"
	"github.com/erginozdemir/tools4audit/internal/adapter/http/handler"
	"github.com/erginozdemir/tools4audit/internal/adapter/http/middleware"
	"github.com/erginozdemir/tools4audit/internal/adapter/repository/memory"
	redisRepo "github.com/erginozdemir/tools4audit/internal/adapter/repository/redis"
	"github.com/erginozdemir/tools4audit/internal/adapter/spreadsheet"
	"github.com/erginozdemir/tools4audit/internal/infrastructure/config"
	"github.com/erginozdemir/tools4audit/internal/infrastructure/idgen"
	"github.com/erginozdemir/tools4audit/internal/infrastructure/logger"
	"github.com/erginozdemir/tools4audit/internal/infrastructure/metrics"
	"github.com/erginozdemir/tools4audit/internal/infrastructure/redis"
	"github.com/erginozdemir/tools4audit/internal/usecase"
	"github.com/erginozdemir/tools4audit/web"
)

const (
	serviceName      = "tools4audit"
	readinessBackend = "report_store"
	janitorInterval  = time.Minute
	sweepInterval    = 5 * time.Minute
	visitorMaxIdle   = 10 * time.Minute
	redisDialTimeout = 5 * time.Second
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWithRegistry(reg)

	store, closeStore, err := newReportStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	router, err := newRouter(ctx, cfg, log, m.InstrumentStore(cfg.ReportStore, store), m, reg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("report_store", cfg.ReportStore).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// newReportStore opens the configured report store. The returned func
// releases it.
func newReportStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (metrics.ReportStore, func(), error) {
	switch cfg.ReportStore {
	case config.StoreRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL, redis.Options{DialTimeout: redisDialTimeout})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("connected to redis")

		retrier := redisRepo.NewRetrier().WithLogger(log)
		return redisRepo.NewReportStore(client, retrier), func() { _ = client.Close() }, nil

	default:
		store := memory.NewReportStore(cfg.ReportCacheSize)
		store.StartJanitor(ctx, janitorInterval)
		return store, func() {}, nil
	}
}

func newRouter(ctx context.Context, cfg *config.Config, log zerolog.Logger, store metrics.ReportStore, m *metrics.Metrics, reg *prometheus.Registry) (http.Handler, error) {
	threshold, err := cfg.LargeThreshold()
	if err != nil {
		return nil, err
	}

	pages, err := web.ParseTemplates()
	if err != nil {
		return nil, err
	}

	reader := spreadsheet.NewReader()

	agingUC := usecase.NewAgingUseCase(reader, store, idgen.NewULIDGenerator(),
		usecase.WithReportTTL(cfg.ReportTTL),
		usecase.WithAgingMetrics(m),
		usecase.WithAgingLogger(log.With().Str("component", "aging").Logger()),
	)
	cashUC := usecase.NewCashUseCase(reader,
		usecase.WithDefaultThreshold(threshold),
		usecase.WithRiskKeywords(cfg.CashRiskKeywords),
		usecase.WithCashMetrics(m),
		usecase.WithCashLogger(log.With().Str("component", "cash").Logger()),
	)

	routerCfg := httpAdapter.RouterConfig{
		AgingHandler:   handler.NewAgingHandler(agingUC, pages, cfg.MaxUploadBytes, log),
		CashHandler:    handler.NewCashHandler(cashUC, pages, cfg.MaxUploadBytes, log),
		PageHandler:    handler.NewPageHandler(pages, cashUC.Threshold(), cashUC.Keywords()),
		HealthHandler:  handler.NewHealthHandler(store, readinessBackend),
		Logger:         log,
		HTTPMetrics:    middleware.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	if cfg.RateLimitRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst,
			middleware.WithOnLimit(m.RateLimitHits.Inc))
		go sweepVisitors(ctx, rl)
		routerCfg.RateLimiter = rl
	}

	return httpAdapter.NewRouter(routerCfg), nil
}

func sweepVisitors(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(visitorMaxIdle)
		}
	}
}
