package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paysched/internal/domain/calendar"
	"paysched/internal/domain/schedule"
	"paysched/internal/platform/config"
	"paysched/internal/platform/db"
	"paysched/internal/platform/jobs"
	"paysched/internal/platform/metrics"
	"paysched/internal/requestctx"
	"paysched/internal/transport/http/api"
	authhandler "paysched/internal/transport/http/handlers/auth"
	calendarhandler "paysched/internal/transport/http/handlers/calendar"
	payrollshandler "paysched/internal/transport/http/handlers/payrolls"
	schedulehandler "paysched/internal/transport/http/handlers/schedule"
	"paysched/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	holidayProvider := calendar.NewProvider(calendar.NewStore(pool))
	scheduleService := schedule.NewService(schedule.NewStore(pool), holidayProvider)

	jobsService := jobs.New(pool)
	jobsService.Start(ctx, cfg.HorizonExtendInterval, func(ctx context.Context) (any, error) {
		return scheduleService.ExtendAll(ctx)
	})

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)

		payrollsHandler := payrollshandler.NewHandler(pool, scheduleService)
		payrollsHandler.RegisterRoutes(r)

		scheduleHandler := schedulehandler.NewHandler(pool, scheduleService, jobsService)
		scheduleHandler.RegisterRoutes(r)

		calendarHandler := calendarhandler.NewHandler(pool)
		calendarHandler.RegisterRoutes(r)

		if collector != nil {
			r.With(middleware.RequireRole("admin")).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), requestctx.GetRequestID(r.Context()))
			})
		}
	})

	log.Printf("paysched server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
