package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MigrationsPath  string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type Config struct {
	App struct {
		Port string
	}
	Postgres PostgresConfig
	Mongo    MongoConfig
	Auth     AuthConfig
	RabbitMQ RabbitMQConfig
}

// Load reads configuration from the environment, optionally preloading a
// .env file. Required settings without a value produce an error.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getEnv("APP_PORT", "8080")

	var err error
	if cfg.Postgres.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Postgres.Port, err = requireEnv("DB_PORT"); err != nil {
		return nil, err
	}
	if cfg.Postgres.User, err = requireEnv("DB_USER"); err != nil {
		return nil, err
	}
	if cfg.Postgres.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Postgres.DBName, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getEnv("DB_MIGRATIONS_PATH", "migrations")
	cfg.Postgres.MaxConns = int32(getEnvInt("DB_MAX_CONNS", 10))
	cfg.Postgres.MinConns = int32(getEnvInt("DB_MIN_CONNS", 2))
	cfg.Postgres.MaxConnLifetime = getEnvDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute)

	cfg.Mongo.URI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = getEnv("MONGO_DB", "printshop")

	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	cfg.Auth.TokenTTL = getEnvDuration("JWT_TOKEN_TTL", 24*time.Hour)

	// Empty URL disables order event publishing.
	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", "")
	cfg.RabbitMQ.Exchange = getEnv("ORDER_EXCHANGE", "order.events")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
