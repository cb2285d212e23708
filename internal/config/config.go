// Package config maps environment variables onto the application config
// struct. A .env file is loaded automatically for local development.
package config

import (
	"fmt"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// --- HTTP ---
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"1m"`

	// --- Database ---
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"forum"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"forumhub"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// --- Auth ---
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"72h"`

	// --- Application ---
	LogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`

	// --- Search term retention ---
	SearchTermRetention time.Duration `envconfig:"SEARCH_TERM_RETENTION" default:"720h"`
	SearchPruneSchedule string        `envconfig:"SEARCH_PRUNE_SCHEDULE" default:"0 4 * * *"`

	// --- Twilio (optional; announcements go out by SMS when set) ---
	TwilioAccountSID string   `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string   `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string   `envconfig:"TWILIO_FROM"`
	AnnounceSMSTo    []string `envconfig:"ANNOUNCE_SMS_TO"`
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.SearchTermRetention <= 0 {
		return fmt.Errorf("SEARCH_TERM_RETENTION must be positive")
	}
	if c.TwilioAccountSID != "" && c.TwilioFrom == "" {
		return fmt.Errorf("TWILIO_FROM required when TWILIO_ACCOUNT_SID is set")
	}
	return nil
}

// Load reads the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
