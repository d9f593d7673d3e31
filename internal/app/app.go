package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/reelist/backend/internal/auth"
	"github.com/reelist/backend/internal/config"
	"github.com/reelist/backend/internal/event"
	handler "github.com/reelist/backend/internal/handler/http"
	"github.com/reelist/backend/internal/omdb"
	"github.com/reelist/backend/internal/repository/postgres"
	"github.com/reelist/backend/internal/service"
	"github.com/reelist/backend/migrations"
	"github.com/reelist/backend/pkg/database"
	"github.com/reelist/backend/pkg/health"
	"github.com/reelist/backend/pkg/httpclient"
	pkgkafka "github.com/reelist/backend/pkg/kafka"
	"github.com/reelist/backend/pkg/middleware"
	"github.com/reelist/backend/pkg/tracing"
)

// App wires together all dependencies and runs the backend.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redisClient    *redis.Client
	producer       *pkgkafka.Producer
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPass
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSL

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Initialize Redis for the rating cache.
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Initialize tracing.
	traceCfg := tracing.DefaultConfig("reelist-backend")
	traceCfg.Environment = cfg.Environment
	traceCfg.OTLPEndpoint = cfg.OTLPEndpoint
	traceCfg.SampleRate = cfg.TraceSample
	traceCfg.Enabled = cfg.TracingEnabled

	tracerShutdown, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// External movie database client behind a retrying circuit breaker.
	hcCfg := httpclient.DefaultConfig()
	hcCfg.Timeout = cfg.OMDBTimeout
	omdbHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(hcCfg),
		httpclient.DefaultCircuitBreakerConfig("omdb"),
		logger,
	)
	omdbClient := omdb.NewClient(cfg.OMDBBaseURL, cfg.OMDBAPIKey, omdbHTTP, logger)
	ratingCache := omdb.NewRatingCache(redisClient, cfg.RatingTTL)

	// Build the dependency graph.
	movieRepo := postgres.NewMovieRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	eventProducer := event.NewProducer(producer, logger)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessExpiry)

	catalogService := service.NewCatalogService(movieRepo, omdbClient, ratingCache, eventProducer, logger)
	watchlistService := service.NewWatchlistService(movieRepo, catalogService, logger)
	userService := service.NewUserService(userRepo, jwtManager, eventProducer, logger)

	// Health checks. Postgres is required to serve; Redis and Kafka only
	// degrade ratings and events.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(userService, catalogService, watchlistService,
		jwtManager, healthHandler, logger, corsCfg)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redisClient:    redisClient,
		producer:       producer,
		tracerShutdown: tracerShutdown,
		httpServer:     httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Flush any pending spans.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Close PostgreSQL pool.
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
