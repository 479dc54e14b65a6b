package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tair/market/internal/app"
	"github.com/tair/market/internal/product"
	"github.com/tair/market/kafka"
	"github.com/tair/market/pkg/config"
	"github.com/tair/market/pkg/database"
	"github.com/tair/market/pkg/health"
	"github.com/tair/market/pkg/logger"
	"github.com/tair/market/pkg/tracing"
)

const version = "1.0.0"

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port")
	v.BindPFlag("http_port", serveCmd.Flags().Lookup("port"))
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run migrations before serving")
}

func serve(ctx context.Context, cfg config.Config) error {
	logger.Logger.Info().
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting market service")

	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if autoMigrate {
		if err := app.Migrate(db); err != nil {
			return err
		}
		logger.Logger.Info().Msg("Database migrated")
	}

	checker := health.NewChecker(3 * time.Second)
	checker.Register("postgres", true, sqlDB.PingContext)

	redisClient := connectRedis(ctx, cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
		checker.Register("redis", false, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	publisher := connectKafka(cfg.Kafka)
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handlers, err := app.InitializeHandlers(db, cfg, redisClient, publisher, reg)
	if err != nil {
		return err
	}

	if total, err := product.ProvideProductRepository(db).Count(ctx); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to count products for metrics")
	} else {
		handlers.Metrics.SetTotalProducts(total)
	}

	router := app.NewRouter(handlers, checker, reg, app.MiddlewareConfig{
		EnableLogging:  true,
		EnableTracing:  true,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Logger.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Logger.Info().Msg("Server stopped")
	return nil
}

// connectRedis returns nil when no address is configured or the server is
// unreachable; rate limiting is then disabled.
func connectRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		logger.Logger.Info().Msg("Redis not configured - rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("redis_addr", cfg.Addr).
			Msg("Failed to connect to Redis - rate limiting will be disabled")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("redis_addr", cfg.Addr).Msg("Connected to Redis for rate limiting")
	return client
}

// connectKafka falls back to a no-op publisher so domain writes never depend
// on the broker.
func connectKafka(cfg config.KafkaConfig) kafka.EventPublisher {
	if len(cfg.Brokers) == 0 {
		logger.Logger.Info().Msg("Kafka not configured - events disabled")
		return kafka.NopPublisher{}
	}

	publisher, err := kafka.NewPublisher(cfg.Brokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Strs("brokers", cfg.Brokers).Msg("Failed to connect to Kafka - events disabled")
		return kafka.NopPublisher{}
	}
	return publisher
}
