package infra

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const insecureHostTokenSecret = "change-me-in-production"

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// HTTP
	HTTPPort int `env:"HTTP_PORT" envDefault:"3200"`

	// Launcher host
	HostBaseURL          string        `env:"HOST_BASE_URL" envDefault:"http://127.0.0.1:4300/launcher/"`
	PollInterval         time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	HostFailureThreshold int           `env:"HOST_FAILURE_THRESHOLD" envDefault:"3"`
	HostResetTimeout     time.Duration `env:"HOST_RESET_TIMEOUT" envDefault:"30s"`
	ContentCacheInterval time.Duration `env:"CONTENT_CACHE_INTERVAL" envDefault:"24h"`

	// Database
	DatabaseEnabled bool   `env:"DATABASE_ENABLED" envDefault:"false"`
	DatabaseURL     string `env:"DATABASE_URL"`
	PGHost          string `env:"PGHOST" envDefault:"localhost"`
	PGPort          int    `env:"PGPORT" envDefault:"5432"`
	PGUser          string `env:"PGUSER" envDefault:"launcher"`
	PGPassword      string `env:"PGPASSWORD" envDefault:"launcher"`
	PGDatabase      string `env:"PGDATABASE" envDefault:"launcher"`

	// Kafka
	KafkaBrokers     string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled     bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaTopicPrefix string `env:"KAFKA_TOPIC_PREFIX" envDefault:"launcher"`
	KafkaGroupID     string `env:"KAFKA_GROUP_ID" envDefault:"launcher-event-tail"`

	// Outbox
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	OutboxQueueSize    int           `env:"OUTBOX_QUEUE_SIZE" envDefault:"256"`
	OutboxRetention    time.Duration `env:"OUTBOX_RETENTION" envDefault:"168h"`

	// Host push authentication
	HostTokenSecret string        `env:"HOST_TOKEN_SECRET" envDefault:"change-me-in-production"`
	HostTokenExpiry time.Duration `env:"HOST_TOKEN_EXPIRY" envDefault:"12h"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the process cannot run with and insecure defaults.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass the secret checks (local dev only).
func (c *Config) Validate() error {
	u, err := url.Parse(c.HostBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("HOST_BASE_URL must be an absolute URL, got %q", c.HostBaseURL)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.HostFailureThreshold < 1 {
		return fmt.Errorf("HOST_FAILURE_THRESHOLD must be at least 1, got %d", c.HostFailureThreshold)
	}

	if c.AllowInsecureDefaults {
		return nil
	}
	if c.HostTokenSecret == insecureHostTokenSecret {
		return fmt.Errorf("HOST_TOKEN_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.HostTokenSecret) < 32 {
		return fmt.Errorf("HOST_TOKEN_SECRET is too short (%d chars); minimum 32 characters required", len(c.HostTokenSecret))
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// Topic returns the Kafka topic for an event type, e.g. launcher.game.updated.
func (c *Config) Topic(eventType string) string {
	prefix := strings.TrimSuffix(c.KafkaTopicPrefix, ".")
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}
