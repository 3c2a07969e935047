package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	DatabaseURL string `env:"DATABASE_URL,required"`

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN"`

		// Пропускает проверку подписи виджета. Только для локальной разработки.
		InsecureSkipVerify bool `env:"TELEGRAM_INSECURE_SKIP_VERIFY" envDefault:"false"`

		// Maximum accepted age of the widget's auth_date.
		AuthTTL time.Duration `env:"TELEGRAM_AUTH_TTL" envDefault:"24h"`
	}

	Session struct {
		// "opaque" keeps session state server-side in Redis and supports
		// real revocation on logout. "jwt" issues self-contained signed
		// tokens that stay valid until expiry even after logout.
		Mode      string        `env:"SESSION_MODE" envDefault:"opaque"`
		TTL       time.Duration `env:"SESSION_TTL" envDefault:"168h"`
		SecretKey string        `env:"SECRET_KEY"`
	}

	Wallet struct {
		MinLength        int  `env:"WALLET_MIN_LENGTH" envDefault:"40"`
		RequirePrefix    bool `env:"WALLET_REQUIRE_PREFIX" envDefault:"true"`
		Strict           bool `env:"WALLET_STRICT" envDefault:"false"`
		RequireSignature bool `env:"WALLET_REQUIRE_SIGNATURE" envDefault:"false"`
	}
}

func Load() (*Config, error) {
	// .env отсутствует в production, переменные приходят из окружения.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Telegram.BotToken == "" && !cfg.Telegram.InsecureSkipVerify {
		return nil, fmt.Errorf("BOT_TOKEN is required unless TELEGRAM_INSECURE_SKIP_VERIFY=true")
	}

	switch cfg.Session.Mode {
	case "opaque":
	case "jwt":
		if cfg.Session.SecretKey == "" {
			return nil, fmt.Errorf("SECRET_KEY is required when SESSION_MODE=jwt")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_MODE %q", cfg.Session.Mode)
	}

	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}

	return cfg, nil
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
