// Command relay owns the websocket hub for deployments where the API process
// runs without one. It consumes events from the fallback transport and
// delivers them to connected users.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/config"
	"github.com/gdugdh24/roommate-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/database"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/logging"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/realtime"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/relay"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/server"
	"github.com/gdugdh24/roommate-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

type source interface {
	Run(ctx context.Context, sink relay.Sink) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging.Level, "roommate-relay")
	slog.SetDefault(logger)
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var src source
	switch cfg.Realtime.FallbackTransport {
	case config.FallbackRedis:
		redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Error("failed to initialize redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		src = relay.NewRedisSubscriber(redisClient, cfg.Realtime.RelayChannel, logger)
	case config.FallbackKafka:
		consumer, err := relay.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Error("failed to initialize kafka consumer", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()
		src = consumer
	default:
		logger.Error("relay requires FALLBACK_TRANSPORT redis or kafka", "fallback_transport", cfg.Realtime.FallbackTransport)
		os.Exit(1)
	}

	hub := realtime.NewHub(logger.With("module", "realtime"))
	authMiddleware := middleware.NewAuthMiddleware(auth.NewTokenVerifier(cfg.JWT.AccessSecret))

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/api/v1/ws", authMiddleware.RequireAuth(), func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := hub.Serve(c.Writer, c.Request, userID); err != nil {
			logger.Debug("websocket upgrade failed", "user_id", userID, "error", err)
		}
	})

	srv := server.NewServer(&cfg.Server, cfg.Realtime.RelayPort, router, logger)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	relayErr := make(chan error, 1)
	go func() {
		relayErr <- src.Run(ctx, hub)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			logger.Error("server error", "error", err)
		}
	case err := <-relayErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("relay stopped", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("relay exited")
}
