package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/business-hours/internal/api/http"
	"github.com/i474232898/business-hours/internal/business"
	"github.com/i474232898/business-hours/internal/business/providers"
	"github.com/i474232898/business-hours/internal/config"
	applog "github.com/i474232898/business-hours/internal/logger"
	"github.com/i474232898/business-hours/internal/notify"
	"github.com/i474232898/business-hours/internal/scheduler"
	"github.com/i474232898/business-hours/internal/store"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := applog.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer zlog.Sync()
	if !dotenv {
		zlog.Info("no .env file found; using process environment")
	}

	// Shared HTTP client for outbound feed calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Providers are tried in order; the local directory backs up the bucket.
	provs := []business.Provider{
		providers.NewHTTPFeedProvider(providers.HTTPClientConfig{Client: httpClient}, cfg.FeedBaseURL),
	}
	if cfg.FeedDir != "" {
		provs = append(provs, providers.NewFileFeedProvider(cfg.FeedDir))
	}

	opts := []business.Option{
		business.WithLogger(zlog),
		business.WithTimezone(cfg.Timezone),
	}

	if cfg.RedisAddr != "" {
		cache := store.NewRedisFeedCache(store.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.FeedCacheTTL)
		defer cache.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx); err != nil {
			zlog.Warn("redis feed cache unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
		opts = append(opts, business.WithFeedCache(cache))
	}

	var publisher business.Publisher = notify.NopPublisher{}
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			zlog.Fatal("failed to connect to amqp", zap.Error(err))
		}
		defer conn.Close()
		rp, err := notify.NewRabbitPublisher(conn, cfg.AMQPPrefix)
		if err != nil {
			zlog.Fatal("failed to declare status topic", zap.Error(err))
		}
		publisher = rp
	}
	opts = append(opts, business.WithPublisher(publisher))

	service := business.NewService(memStore, provs, opts...)

	if cfg.RedisAddr != "" {
		for _, loc := range cfg.Locations {
			warmCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := service.Warm(warmCtx, loc); err != nil {
				zlog.Info("no cached schedule", zap.String("location", loc.Key), zap.Error(err))
			}
			cancel()
		}
	}

	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "business-hours",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				zlog.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "business-hours",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service, cfg.Locations)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Info("fiber server stopped", zap.Error(err))
		}
	}()
	zlog.Info("listening", zap.String("port", cfg.Port), zap.Int("locations", len(cfg.Locations)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
