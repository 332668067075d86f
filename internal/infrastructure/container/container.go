package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/config"
	"github.com/gdugdh24/roommate-backend/internal/delivery/http"
	"github.com/gdugdh24/roommate-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/roommate-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/database"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/realtime"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/relay"
	"github.com/gdugdh24/roommate-backend/internal/infrastructure/server"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/gdugdh24/roommate-backend/internal/repository/memory"
	"github.com/gdugdh24/roommate-backend/internal/repository/postgres"
	"github.com/gdugdh24/roommate-backend/internal/usecase/account"
	"github.com/gdugdh24/roommate-backend/internal/usecase/auth"
	"github.com/gdugdh24/roommate-backend/internal/usecase/matching"
	"github.com/gdugdh24/roommate-backend/internal/usecase/notification"
	"github.com/gdugdh24/roommate-backend/internal/usecase/preferences"
	"github.com/gdugdh24/roommate-backend/internal/usecase/quota"
	"github.com/gdugdh24/roommate-backend/internal/usecase/request"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Hub    *realtime.Hub

	closers []io.Closer
}

type repositories struct {
	users         repository.UserRepository
	preferences   repository.PreferencesRepository
	matches       repository.MatchRepository
	messages      repository.MessageRepository
	notifications repository.NotificationRepository
	accounts      repository.AccountRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	repos, err := c.initRepositories(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	// AI descriptions are optional; without a client every result gets the
	// fixed description.
	var generator matching.DescriptionGenerator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("gemini client unavailable, using default descriptions", "error", err)
		} else {
			c.Gemini = geminiClient
			generator = geminiClient
		}
	}
	describer := matching.NewDescriber(generator, cfg.Gemini.DescriptionTimeout, logger)

	var primary notification.RealTimeChannel = realtime.Unavailable{}
	var realtimeHandler *handler.RealtimeHandler
	if cfg.Realtime.HubEnabled {
		c.Hub = realtime.NewHub(logger.With("module", "realtime"))
		primary = c.Hub
		realtimeHandler = handler.NewRealtimeHandler(c.Hub)
	}

	fallback, err := c.initFallback(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	// Initialize use cases
	dispatcher := notification.NewDispatcher(repos.notifications, primary, fallback, logger.With("module", "notification"))
	guard := quota.NewGuard(cfg.Quota.DailyLimit, cfg.Quota.QuotaLocation())

	requestUseCase := request.NewRequestUseCase(
		repos.matches,
		repos.messages,
		repos.users,
		guard,
		dispatcher,
		logger.With("module", "request"),
	)
	matchingUseCase := matching.NewMatchingUseCase(repos.users, repos.matches, describer)
	preferencesUseCase := preferences.NewPreferencesUseCase(repos.preferences, repos.users)
	notificationUseCase := notification.NewNotificationUseCase(repos.notifications)
	accountUseCase := account.NewAccountUseCase(repos.accounts, logger.With("module", "account"))
	tokenVerifier := auth.NewTokenVerifier(cfg.JWT.AccessSecret)

	if err := handler.RegisterValidations(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to register validations: %w", err)
	}

	router := http.NewRouter(
		handler.NewMatchRequestHandler(requestUseCase),
		handler.NewMatchHandler(matchingUseCase),
		handler.NewPreferencesHandler(preferencesUseCase),
		handler.NewNotificationHandler(notificationUseCase),
		handler.NewAccountHandler(accountUseCase),
		realtimeHandler,
		middleware.NewAuthMiddleware(tokenVerifier),
		logger,
	)

	c.Server = server.NewServer(&cfg.Server, cfg.Server.Port, router.Setup(), logger)
	return c, nil
}

func (c *Container) initRepositories(ctx context.Context) (*repositories, error) {
	switch c.Config.Storage.Type {
	case config.StorageMemory:
		c.Logger.Warn("using in-memory storage, data is lost on restart")
		mem := memory.NewRepositories()
		return &repositories{
			users:         mem.Users,
			preferences:   mem.Preferences,
			matches:       mem.Matches,
			messages:      mem.Messages,
			notifications: mem.Notifications,
			accounts:      mem.Accounts,
		}, nil
	default:
		db, err := database.NewPostgresDB(&c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := database.Migrate(migrateCtx, db); err != nil {
			return nil, err
		}

		return &repositories{
			users:         postgres.NewUserRepository(db),
			preferences:   postgres.NewPreferencesRepository(db),
			matches:       postgres.NewMatchRepository(db),
			messages:      postgres.NewMessageRepository(db),
			notifications: postgres.NewNotificationRepository(db),
			accounts:      postgres.NewAccountRepository(db),
		}, nil
	}
}

func (c *Container) initFallback(ctx context.Context, cfg *config.Config) (notification.Emitter, error) {
	switch cfg.Realtime.FallbackTransport {
	case config.FallbackRedis:
		redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = redisClient
		return relay.NewRedisPublisher(redisClient, cfg.Realtime.RelayChannel), nil
	case config.FallbackKafka:
		publisher, err := relay.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, publisher)
		return publisher, nil
	default:
		return relay.Discard{Logger: c.Logger.With("module", "relay")}, nil
	}
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close gemini client: %w", err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
