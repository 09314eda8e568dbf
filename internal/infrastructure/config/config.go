package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret is deliberately required: the signing key must come from
	// the environment, never from source.
	JWTSecret         string        `env:"JWT_SECRET, required"`
	JWTSecretPrevious string        `env:"JWT_SECRET_PREVIOUS"`
	TokenTTL          time.Duration `env:"TOKEN_TTL, default=24h"`

	// ExtraPublicPaths extends the built-in public-path allowlist
	// (comma-separated prefixes).
	ExtraPublicPaths []string `env:"PUBLIC_PATHS"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=salon"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
