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
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/mwork/booking-api/internal/config"
	"github.com/mwork/booking-api/internal/domain/availability"
	"github.com/mwork/booking-api/internal/domain/booking"
	"github.com/mwork/booking-api/internal/domain/schedule"
	"github.com/mwork/booking-api/internal/middleware"
	"github.com/mwork/booking-api/internal/pkg/backend"
	"github.com/mwork/booking-api/internal/pkg/broker"
	"github.com/mwork/booking-api/internal/pkg/cache"
	"github.com/mwork/booking-api/internal/pkg/database"
	"github.com/mwork/booking-api/internal/pkg/jwt"
	"github.com/mwork/booking-api/internal/pkg/logger"
	pkgresponse "github.com/mwork/booking-api/internal/pkg/response"
)

const (
	version   = "1.0.0"
	userAgent = "MWork/1.0 booking-api"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	loc := cfg.Location()
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("schedule_source", cfg.ScheduleSource).
		Str("timezone", loc.String()).
		Msg("Starting booking API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------- Sources ----------
	backendClient := backend.NewClient(cfg.BackendBaseURL, cfg.BackendToken, cfg.BackendTimeout(), userAgent)

	var (
		scheduleSource availability.ScheduleSource = backendClient
		packageSource  availability.PackageSource  = backendClient
	)
	if cfg.ScheduleSource == config.SourcePostgres {
		db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer database.ClosePostgres(db)

		repo := schedule.NewRepository(db)
		scheduleSource, packageSource = repo, repo
	}

	// ---------- Cache ----------
	var scheduleCache cache.Cache = cache.NewLRU(cfg.CacheSize, cfg.CacheTTL)
	redisClient, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process cache only")
	}
	if redisClient != nil {
		defer database.CloseRedis(redisClient)
		scheduleCache = cache.NewTiered(scheduleCache, cache.NewRedis(redisClient, "booking-api:availability:", cfg.CacheTTL))
	}

	// ---------- Services ----------
	now := func() time.Time { return time.Now().In(loc) }
	availabilityService := availability.NewService(scheduleSource, packageSource, scheduleCache, now)
	bookingService := booking.NewService(availabilityService, backendClient, loc)

	// ---------- Change events ----------
	if cfg.RabbitMQEnabled {
		listener, err := broker.NewListener(cfg.RabbitMQURL, cfg.RabbitMQExchange, cfg.RabbitMQQueue, availabilityService)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		defer listener.Stop()

		if err := listener.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start schedule change listener")
		}
	} else {
		log.Info().Msg("RabbitMQ disabled, cached schedules expire by TTL only")
	}

	// ---------- Handlers ----------
	availabilityHandler := availability.NewHandler(availabilityService, cfg.AllowedOrigins)
	bookingHandler := booking.NewHandler(bookingService)

	jwtService := jwt.NewService(cfg.JWTSecret, 0)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := newRouter(routes{
		availability:   availabilityHandler,
		booking:        bookingHandler,
		auth:           middleware.Auth(jwtService),
		limit:          rateLimiter.Handler,
		allowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout, live availability sockets stay open
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("Server exited properly")
}

type routes struct {
	availability   *availability.Handler
	booking        *booking.Handler
	auth           func(http.Handler) http.Handler
	limit          func(http.Handler) http.Handler
	allowedOrigins []string
}

func newRouter(rt routes) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(rt.allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/professionals", rt.availability.Routes(rt.limit))
		r.With(rt.limit).Mount("/bookings", rt.booking.Routes(rt.auth))
	})

	return r
}
