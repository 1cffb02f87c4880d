package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration for both the dialog client and the auth server
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE" envDefault:"authdialog.log"`
	SentryDSN   string `env:"SENTRY_DSN"`

	// Server
	Port         int    `env:"PORT" envDefault:"8080"`
	DatabaseURL  string `env:"DATABASE_URL"`
	SecretKey    string `env:"SECRET_KEY"`
	Username     string `env:"USERNAME"`
	PasswordHash string `env:"PASSWORD_HASH"`
	UserId       string `env:"USER_ID"`
	UserVerified bool   `env:"USER_VERIFIED" envDefault:"true"`

	// Dialog client
	AuthURL       string        `env:"AUTH_URL" envDefault:"http://localhost:8080"`
	LoginTimeout  time.Duration `env:"LOGIN_TIMEOUT" envDefault:"30s"`
	ToastDuration time.Duration `env:"TOAST_DURATION" envDefault:"5s"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}
