package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Env                string `envconfig:"ENV" default:"development"`
	Port               string `envconfig:"PORT" default:"8080"`
	DBURL              string `envconfig:"DB_URL" required:"true"`
	RedisURL           string `envconfig:"REDIS_URL" default:""`
	AccessTokenSecret  string `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	RefreshTokenSecret string `envconfig:"REFRESH_TOKEN_SECRET" required:"true"`
	AccessExpiryMin    int    `envconfig:"ACCESS_TOKEN_EXPIRY" default:"15"`
	RefreshExpiryMin   int    `envconfig:"REFRESH_TOKEN_EXPIRY" default:"10080"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
	UserRateLimit      int    `envconfig:"USER_RATE_LIMIT" default:"100"`
	UserRateWindowMin  int    `envconfig:"USER_RATE_WINDOW" default:"15"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
