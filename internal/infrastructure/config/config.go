package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=30m"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Policy PolicyConfig
	Items  ItemsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_directory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// PolicyConfig holds the access-policy toggles for the users routes.
type PolicyConfig struct {
	// PublicRead opens GET /users and GET /users/:id to anonymous callers.
	PublicRead bool `env:"POLICY_PUBLIC_READ, default=false"`
	// OpenCreate lets anyone register via POST /users/create; otherwise
	// creation is admin-only.
	OpenCreate bool `env:"POLICY_OPEN_CREATE, default=false"`
}

type ItemsConfig struct {
	StorePath string `env:"ITEMS_STORE_PATH, default=items.json"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
