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
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=72h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	HTTP   HTTPConfig
	Cookie CookieConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type HTTPConfig struct {
	// CORSOrigins lists the browser origins allowed to send credentialed
	// requests.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000"`
}

// CookieConfig is the deployment profile for the session cookie. HttpOnly is
// not configurable: the session cookie always carries it.
type CookieConfig struct {
	// Secure also switches SameSite=None on, since browsers reject
	// SameSite=None cookies without the Secure attribute.
	Secure bool `env:"COOKIE_SECURE, default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
