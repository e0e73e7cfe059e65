package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"

	"github.com/geekyathlete/poster-shop/internal/checkout"
	"github.com/geekyathlete/poster-shop/internal/config"
	"github.com/geekyathlete/poster-shop/internal/events"
	"github.com/geekyathlete/poster-shop/internal/form"
	"github.com/geekyathlete/poster-shop/internal/health"
	"github.com/geekyathlete/poster-shop/internal/obs"
	"github.com/geekyathlete/poster-shop/internal/order"
	"github.com/geekyathlete/poster-shop/internal/pricing"
	"github.com/geekyathlete/poster-shop/internal/ratelimit"
	"github.com/geekyathlete/poster-shop/internal/repo"
	"github.com/geekyathlete/poster-shop/internal/tax"
	"github.com/geekyathlete/poster-shop/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var pool *pgxpool.Pool
	var store order.Store
	if cfg.DatabaseURL != "" {
		if err := repo.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse database config")
		}
		if poolConfig.ConnConfig.RuntimeParams == nil {
			poolConfig.ConnConfig.RuntimeParams = map[string]string{}
		}
		poolConfig.ConnConfig.RuntimeParams["application_name"] = "poster-shop"

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect database")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("ping database")
		}
		store = &repo.Orders{Pool: pool}
	} else {
		logger.Warn().Msg("DATABASE_URL not set, orders are kept in memory")
		store = order.NewMemoryStore()
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
	}

	taxes := tax.DefaultTable()
	formValidator, err := form.NewValidator(taxes)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise form validator")
	}
	bus := &events.Bus{
		Notifiers: []events.Notifier{events.LogNotifier{Log: logger}},
		Log:       logger,
	}
	checkoutSvc := &checkout.Service{
		Forms:   formValidator,
		Pricing: pricing.DefaultEngine(taxes),
		Orders:  store,
		Events:  bus,
		Log:     logger,
	}

	templates, err := web.NewTemplates()
	if err != nil {
		logger.Fatal().Err(err).Msg("parse templates")
	}
	shopHandler := &web.Handler{
		Checkout: checkoutSvc,
		Taxes:    taxes,
		Orders:   store,
		Tmpl:     templates,
		Log:      logger,
	}

	limitStore, err := ratelimit.NewStore(redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise limiter store")
	}
	submitRate, err := limiter.NewRateFromFormatted(cfg.SubmitRateLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse submit rate limit")
	}
	submitLimiter := ratelimit.Handler{Limiter: limiter.New(limitStore, submitRate), Log: logger}

	healthHandler := health.Handler{
		Checker: readinessChecker{db: pool, redis: redisClient},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Handle("/static/*", web.StaticHandler())

	r.Get("/", shopHandler.Home)
	r.Get("/shop", shopHandler.Shop)
	r.With(submitLimiter.Middleware).Post("/", shopHandler.Submit)
	r.Get("/orders", shopHandler.ListOrders)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	if err := srv.Shutdown(closeCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

// PingStore probes the database when one is configured; the in-memory
// store is always ready.
func (c readinessChecker) PingStore(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}
