package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=168h"`

	BcryptCost         int      `env:"BCRYPT_COST,          default=10"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Login    LoginConfig
	Realtime RealtimeConfig
}

type PostgresConfig struct {
	URL      string `env:"DATABASE_URL, required"`
	MaxConns int32  `env:"DB_MAX_CONNS, default=10"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type RealtimeConfig struct {
	Workers    int `env:"REALTIME_WORKERS,     default=4"`
	QueueSize  int `env:"REALTIME_QUEUE_SIZE,  default=256"`
	SendBuffer int `env:"REALTIME_SEND_BUFFER, default=64"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
// It panics when a required variable is missing or a value cannot be parsed.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be blank")
	}
	return &cfg, nil
}
