package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/broki/marketplace-api/internal/adapters/cache"
	"github.com/broki/marketplace-api/internal/adapters/database"
	"github.com/broki/marketplace-api/internal/adapters/mail"
	"github.com/broki/marketplace-api/internal/adapters/search"
	"github.com/broki/marketplace-api/internal/adapters/tokens"
	"github.com/broki/marketplace-api/internal/api/handlers"
	"github.com/broki/marketplace-api/internal/api/middleware"
	"github.com/broki/marketplace-api/internal/api/routes"
	"github.com/broki/marketplace-api/internal/application/services"
	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/redis"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/typesense"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
	"github.com/broki/marketplace-api/pkg/config"
	"github.com/broki/marketplace-api/pkg/validation"
)

const cacheWarmingInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// One-time passwords and revoked tokens live in Redis, so it is required.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()
	log.Info().Msg("Redis client initialized")

	cacheProvider := cache.NewRedisAdapter(redisClient)

	var searchIndex providers.PropertySearchIndex
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Typesense client; property search uses the database")
		} else if err := tsClient.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to init Typesense schema; property search uses the database")
		} else {
			searchIndex = search.NewPropertyIndex(tsClient)
			log.Info().Msg("Typesense property index enabled")
		}
	}

	// Repositories
	cityAdapter := database.NewCachedCityAdapter(database.NewCityAdapter(pgClient), cacheProvider)
	categoryAdapter := database.NewCachedCategoryAdapter(database.NewCategoryAdapter(pgClient), cacheProvider)
	tagAdapter := database.NewTagAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	leadAdapter := database.NewLeadAdapter(pgClient)
	propertyAdapter := database.NewPropertyAdapter(pgClient)
	serviceAdapter := database.NewServiceAdapter(pgClient)
	providerAdapter := database.NewProviderAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	couponAdapter := database.NewCouponAdapter(pgClient)
	blogAdapter := database.NewBlogAdapter(pgClient)

	tokenProvider := tokens.NewJWTAdapter(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, cacheProvider)
	mailer := mail.NewSMTPMailer(cfg.SMTP)
	validator := validation.New()

	// Services
	leadService := services.NewLeadService(leadAdapter)
	authService := services.NewAuthService(userAdapter, cacheProvider, mailer, tokenProvider, cfg.Auth.OTPTTL, cfg.Auth.OTPCooldown, metrics)
	propertyService := services.NewPropertyService(propertyAdapter, cityAdapter, categoryAdapter, searchIndex, validator)
	catalogService := services.NewCatalogService(cityAdapter, categoryAdapter, tagAdapter)
	listingService := services.NewListingService(serviceAdapter, providerAdapter, reviewAdapter, couponAdapter)
	blogService := services.NewBlogService(blogAdapter)

	warmingService := services.NewCacheWarmingService(cityAdapter, categoryAdapter)
	warmingService.StartPeriodicWarming(ctx, cacheWarmingInterval)

	router := routes.NewRouter(
		handlers.NewFormHandler(leadService, validator, cacheProvider),
		handlers.NewAuthHandler(authService, validator),
		handlers.NewPropertyHandler(propertyService),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewServiceHandler(listingService),
		handlers.NewBlogHandler(blogService),
		tokenProvider,
		middleware.NewCacheMiddleware(cacheProvider, metrics),
		cfg.CORS.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
