package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	strutil "votecast/pkg/platform/strings"
)

// Server captures process-wide configuration.
type Server struct {
	Addr            string        `env:"VOTECAST_ADDR" envDefault:":8080"`
	Environment     string        `env:"VOTECAST_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	Storage   StorageConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Voting    VotingConfig
	Delivery  DeliveryConfig
	Telemetry TelemetryConfig
}

// StorageConfig selects the backing store for elections, participants and audit.
type StorageConfig struct {
	// Driver is one of memory, postgres (lib/pq), pgx or sqlite.
	Driver          string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"votecast.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	TxTimeout       time.Duration `env:"DB_TX_TIMEOUT" envDefault:"5s"`
}

// RedisConfig configures the pending-code store. An empty URL keeps codes in memory.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

type AuthConfig struct {
	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"votecast"`
	JWTAudience   string        `env:"JWT_AUDIENCE" envDefault:"votecast-api"`
	TokenTTL      time.Duration `env:"JWT_TOKEN_TTL" envDefault:"1h"`
	AdminAPIToken string        `env:"ADMIN_API_TOKEN"`
}

type VotingConfig struct {
	CodeTTL time.Duration `env:"CODE_TTL" envDefault:"10m"`
	// AllowUnverifiedTxRef accepts any non-empty transaction reference instead
	// of requiring a well-formed ledger hash.
	AllowUnverifiedTxRef bool `env:"ALLOW_UNVERIFIED_TX_REF" envDefault:"false"`
	// ExposeCodes echoes issued codes in responses. Never enable in production.
	ExposeCodes       bool          `env:"EXPOSE_CODES" envDefault:"false"`
	IssueLimit        int           `env:"CODE_ISSUE_LIMIT" envDefault:"5"`
	IssueWindow       time.Duration `env:"CODE_ISSUE_WINDOW" envDefault:"10m"`
	CodeSweepInterval time.Duration `env:"CODE_SWEEP_INTERVAL" envDefault:"1m"`
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"5m"`
	ReconcileQueue    int           `env:"RECONCILE_QUEUE_SIZE" envDefault:"256"`
}

type DeliveryConfig struct {
	// Driver is one of log, smtp or kafka. Fallback, when set, must be a
	// real transport: log never fails and would hide undelivered codes.
	Driver   string `env:"DELIVERY_DRIVER" envDefault:"log"`
	Fallback string `env:"DELIVERY_FALLBACK"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"no-reply@votecast.local"`
	// SMTPRequireTLS refuses relays without STARTTLS instead of sending in clear.
	SMTPRequireTLS bool `env:"SMTP_REQUIRE_TLS" envDefault:"false"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_DELIVERY_TOPIC" envDefault:"votecast.code-delivery"`

	Timeout          time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"10s"`
	FailureThreshold int           `env:"DELIVERY_BREAKER_FAILURES" envDefault:"3"`
	SuccessThreshold int           `env:"DELIVERY_BREAKER_SUCCESSES" envDefault:"2"`
	BreakerCooldown  time.Duration `env:"DELIVERY_BREAKER_COOLDOWN" envDefault:"30s"`
}

type TelemetryConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"votecast"`
}

// FromEnv loads an optional .env file and parses the environment into Server.
func FromEnv() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Delivery.KafkaBrokers = strutil.DedupeAndTrim(cfg.Delivery.KafkaBrokers)
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with production safeguards.
func (c Server) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate rejects combinations that would start a misconfigured service.
func (c Server) Validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite":
	case "postgres", "pgx":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Delivery.Fallback == "log" {
		return fmt.Errorf("DELIVERY_FALLBACK cannot be log: it reports success without delivering")
	}
	for _, driver := range []string{c.Delivery.Driver, c.Delivery.Fallback} {
		switch driver {
		case "", "log":
		case "smtp":
			if c.Delivery.SMTPHost == "" {
				return fmt.Errorf("SMTP_HOST is required for smtp delivery")
			}
		case "kafka":
			if len(c.Delivery.KafkaBrokers) == 0 {
				return fmt.Errorf("KAFKA_BROKERS is required for kafka delivery")
			}
		default:
			return fmt.Errorf("unsupported delivery driver %q", driver)
		}
	}

	if c.Voting.CodeTTL <= 0 {
		return fmt.Errorf("CODE_TTL must be positive")
	}
	if c.IsProduction() {
		if c.Voting.ExposeCodes {
			return fmt.Errorf("EXPOSE_CODES must be disabled in production")
		}
		if c.Delivery.Driver == "" || c.Delivery.Driver == "log" {
			return fmt.Errorf("DELIVERY_DRIVER must be smtp or kafka in production")
		}
		if c.Auth.JWTSigningKey == "dev-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SIGNING_KEY must be set in production")
		}
	}
	return nil
}
