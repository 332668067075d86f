package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	FallbackRedis = "redis"
	FallbackKafka = "kafka"
	FallbackNone  = "none"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Gemini   GeminiConfig
	Realtime RealtimeConfig
	Quota    QuotaConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type JWTConfig struct {
	AccessSecret string
}

type StorageConfig struct {
	Type string
}

type LoggingConfig struct {
	Level string
}

type GeminiConfig struct {
	APIKey             string
	Model              string
	DescriptionTimeout time.Duration
}

type RealtimeConfig struct {
	// HubEnabled makes the API process own the websocket hub. When false,
	// events go through the fallback transport to the relay process.
	HubEnabled        bool
	FallbackTransport string
	RelayChannel      string
	RelayPort         int
}

type QuotaConfig struct {
	DailyLimit int
	Timezone   string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := fromViper(v)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("STORAGE_TYPE", StoragePostgres)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("KAFKA_TOPIC", "roommate.realtime")
	v.SetDefault("KAFKA_GROUP_ID", "roommate-relay")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("DESCRIPTION_TIMEOUT", "5s")
	v.SetDefault("REALTIME_HUB_ENABLED", true)
	v.SetDefault("FALLBACK_TRANSPORT", FallbackNone)
	v.SetDefault("RELAY_CHANNEL", "roommate:realtime")
	v.SetDefault("RELAY_PORT", 8081)
	v.SetDefault("QUOTA_DAILY_LIMIT", 3)
	v.SetDefault("QUOTA_TIMEZONE", "UTC")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
			GroupID: v.GetString("KAFKA_GROUP_ID"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Storage: StorageConfig{
			Type: strings.ToLower(v.GetString("STORAGE_TYPE")),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Gemini: GeminiConfig{
			APIKey:             v.GetString("GEMINI_API_KEY"),
			Model:              v.GetString("GEMINI_MODEL"),
			DescriptionTimeout: v.GetDuration("DESCRIPTION_TIMEOUT"),
		},
		Realtime: RealtimeConfig{
			HubEnabled:        v.GetBool("REALTIME_HUB_ENABLED"),
			FallbackTransport: strings.ToLower(v.GetString("FALLBACK_TRANSPORT")),
			RelayChannel:      v.GetString("RELAY_CHANNEL"),
			RelayPort:         v.GetInt("RELAY_PORT"),
		},
		Quota: QuotaConfig{
			DailyLimit: v.GetInt("QUOTA_DAILY_LIMIT"),
			Timezone:   v.GetString("QUOTA_TIMEZONE"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	switch c.Realtime.FallbackTransport {
	case FallbackRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("redis host is required for redis fallback transport")
		}
	case FallbackKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers are required for kafka fallback transport")
		}
	case FallbackNone:
	default:
		return fmt.Errorf("unknown fallback transport %q", c.Realtime.FallbackTransport)
	}
	if c.Quota.DailyLimit <= 0 {
		return fmt.Errorf("quota daily limit must be positive")
	}
	if _, err := time.LoadLocation(c.Quota.Timezone); err != nil {
		return fmt.Errorf("invalid quota timezone %q: %w", c.Quota.Timezone, err)
	}
	return nil
}

// QuotaLocation returns the reference time zone of the quota window.
func (c *QuotaConfig) QuotaLocation() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
