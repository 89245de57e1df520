// cmd/api/main.go
// Entry point for the date card API. Bootstraps storage, the venue lookup
// chain, the match flow and the HTTP server.

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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-datecards/internal/auth"
	"github.com/imadgeboyega/kiekky-datecards/internal/common/database"
	"github.com/imadgeboyega/kiekky-datecards/internal/common/health"
	"github.com/imadgeboyega/kiekky-datecards/internal/common/logger"
	"github.com/imadgeboyega/kiekky-datecards/internal/config"
	"github.com/imadgeboyega/kiekky-datecards/internal/datecard"
	"github.com/imadgeboyega/kiekky-datecards/internal/dating"
	"github.com/imadgeboyega/kiekky-datecards/internal/messaging"
	"github.com/imadgeboyega/kiekky-datecards/internal/profile"
)

func main() {
	// A missing .env is normal outside local development
	envErr := godotenv.Load()

	cfg := config.Load()

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Debug("no .env file found, using environment variables", zap.Error(envErr))
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	db, err := database.NewPostgresDBFromURL(ctx, cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	if err := database.RunMigrations(ctx, db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis only backs the venue cache; the API runs without it
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, venue lookups will not be cached", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("connected to Redis")
		}
	}

	// Date cards
	rng := datecard.NewRand(time.Now().UnixNano())
	venues := datecard.NewVenueResolver(
		newVenueSearchClient(cfg, redisClient, log),
		datecard.VenueResolverConfig{
			Timeout:        cfg.VenueLookupTimeout,
			CandidateLimit: cfg.VenueCandidateLimit,
		},
		rng,
		log.Named("venues"),
	)
	dateCardService := datecard.NewService(
		datecard.NewPostgresRepository(db),
		datecard.MustDefaultCategories(),
		venues,
		rng,
		datecard.Config{DefaultCity: cfg.DefaultCity},
		log.Named("datecard"),
	)

	// Match flow and realtime events
	hub := dating.NewHub(log)
	go hub.Run()

	datingService := dating.NewService(
		dating.NewPostgresRepository(db),
		dateCardService,
		hub,
		log.Named("dating"),
	)

	scheduler := dating.NewScheduler(dateCardService, cfg.DateCardBackfillInterval, cfg.DateCardBackfillBatch, log)
	if cfg.DateCardBackfillInterval > 0 {
		scheduler.Start(ctx)
	}

	// Chat between matches, pushed over the same hub
	messagingService := messaging.NewService(messaging.NewPostgresRepository(db), hub, log.Named("messaging"))

	// Profiles
	profileService := profile.NewService(profile.NewPostgresRepository(db), cfg.MaxInterests, log.Named("profile"))

	// Routes
	authMiddleware := auth.NewMiddleware(auth.NewJWTValidator(cfg.JWTSecret))
	router := mux.NewRouter()
	router.Use(logger.HTTPMiddleware(log))

	checker := health.NewChecker().Add("postgres", db)
	if redisClient != nil {
		checker.AddFunc("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	router.Handle("/health", checker).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	datecard.RegisterRoutes(router, datecard.NewHandler(dateCardService, log), authMiddleware)
	dating.RegisterRoutes(router, dating.NewHandler(datingService, log), hub, authMiddleware)
	messaging.RegisterRoutes(router, messaging.NewHandler(messagingService, log), authMiddleware)

	profileRoutes := profile.Routes(profile.NewHandler(profileService, log), authMiddleware)
	router.PathPrefix("/api/v1/profile").Handler(profileRoutes)
	router.PathPrefix("/api/v1/users/").Handler(profileRoutes)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", logger.RequestIDHeader},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.Bool("venue_lookup", cfg.VenueLookupEnabled))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server exited gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogFormat == "" {
		return logger.NewForEnvironment(cfg.Environment, cfg.LogLevel)
	}
	return logger.New(&logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})
}

// newVenueSearchClient builds the lookup chain: Nominatim, optionally behind
// the Redis cache, or a client that always returns nothing when disabled.
func newVenueSearchClient(cfg *config.Config, redisClient *redis.Client, log *zap.Logger) datecard.VenueSearchClient {
	if !cfg.VenueLookupEnabled {
		log.Info("venue lookup disabled, date cards will use fallback venues")
		return datecard.NullSearchClient{}
	}

	var client datecard.VenueSearchClient = datecard.NewNominatimClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent)
	if redisClient != nil {
		client = datecard.NewCachedSearchClient(client, redisClient, cfg.VenueCacheTTL, log.Named("venue_cache"))
	}
	return client
}
