package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	ServerAddr string `envconfig:"SERVER_ADDR" default:":8080"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"` // postgres | sqlite
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"storefront"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"storefront.db"`

	RedisAddr    string        `envconfig:"REDIS_ADDR"`
	RoleCacheTTL time.Duration `envconfig:"ROLE_CACHE_TTL" default:"5m"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	// JWTAllowInsecure lets a development build start on the built-in test key.
	JWTAllowInsecure bool `envconfig:"JWT_ALLOW_INSECURE" default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.IsProduction() && cfg.JWTAllowInsecure {
		return nil, fmt.Errorf("config: JWT_ALLOW_INSECURE cannot be set in production")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
