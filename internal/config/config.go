package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string

	GatewayURL       string
	GatewayKeyID     string
	GatewayKeySecret string
	PaymentSecret    string
	PaymentCurrency  string

	AuthSecret   string
	AuthStrategy string
	AuthTokenTTL time.Duration

	NotifyWorkers   int
	NotifyQueueSize int
	KafkaBrokers    []string
	KafkaTopic      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PendingExpiry time.Duration
	SweepSchedule string

	DBReadRetries   int
	ShutdownTimeout time.Duration
	LogLevel        string
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultAuthStrategy    = "jwt"
	defaultAuthTokenTTL    = 24 * time.Hour
	defaultPaymentCurrency = "INR"
	defaultNotifyWorkers   = 4
	defaultNotifyQueueSize = 128
	defaultKafkaTopic      = "carwash.order-events"
	defaultPendingExpiry   = 24 * time.Hour
	defaultSweepSchedule   = "@every 5m"
	defaultDBReadRetries   = 3
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"

	redacted = "[REDACTED]"
)

// Load reads an optional .env file (ENV_FILE overrides the path) and then
// parses configuration from environment variables and flags.
func Load() (*Config, error) {
	if err := loadEnvFile(getString(os.LookupEnv, "ENV_FILE", ".env")); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// loadEnvFile exports variables from path without overriding the process
// environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		GatewayURL:       getString(lookup, "GATEWAY_URL", ""),
		GatewayKeyID:     getString(lookup, "GATEWAY_KEY_ID", ""),
		GatewayKeySecret: getString(lookup, "GATEWAY_KEY_SECRET", ""),
		PaymentSecret:    getString(lookup, "PAYMENT_SECRET", ""),
		PaymentCurrency:  getString(lookup, "PAYMENT_CURRENCY", defaultPaymentCurrency),
		AuthSecret:       getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AuthStrategy:     getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		AuthTokenTTL:     getDuration(lookup, "AUTH_TOKEN_TTL", defaultAuthTokenTTL),
		NotifyWorkers:    getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize:  getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		KafkaBrokers:     getList(lookup, "KAFKA_BROKERS"),
		KafkaTopic:       getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		RedisAddr:        getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:    getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:          getInt(lookup, "REDIS_DB", 0),
		PendingExpiry:    getDuration(lookup, "PENDING_EXPIRY", defaultPendingExpiry),
		SweepSchedule:    getString(lookup, "SWEEP_SCHEDULE", defaultSweepSchedule),
		DBReadRetries:    getInt(lookup, "DB_READ_RETRIES", defaultDBReadRetries),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("carwash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayURL, "g", cfg.GatewayURL, "Payment gateway base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Auth token format: jwt or hmac")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	secrets := []struct {
		key    string
		target *string
	}{
		{"AUTH_SECRET_FILE", &cfg.AuthSecret},
		{"GATEWAY_KEY_SECRET_FILE", &cfg.GatewayKeySecret},
		{"PAYMENT_SECRET_FILE", &cfg.PaymentSecret},
	}
	for _, s := range secrets {
		if err := readSecretFile(lookup, s.key, s.target); err != nil {
			return nil, err
		}
	}

	normalize(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.AuthStrategy = strings.ToLower(strings.TrimSpace(cfg.AuthStrategy))
	cfg.PaymentCurrency = strings.ToUpper(strings.TrimSpace(cfg.PaymentCurrency))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if cfg.PaymentSecret == "" {
		cfg.PaymentSecret = cfg.GatewayKeySecret
	}
	if cfg.PaymentCurrency == "" {
		cfg.PaymentCurrency = defaultPaymentCurrency
	}
	if cfg.AuthTokenTTL <= 0 {
		cfg.AuthTokenTTL = defaultAuthTokenTTL
	}
	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}
	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = defaultKafkaTopic
	}
	if cfg.PendingExpiry <= 0 {
		cfg.PendingExpiry = defaultPendingExpiry
	}
	if strings.TrimSpace(cfg.SweepSchedule) == "" {
		cfg.SweepSchedule = defaultSweepSchedule
	}
	if cfg.DBReadRetries < 0 {
		cfg.DBReadRetries = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
}

func validate(cfg *Config) error {
	if cfg.DatabaseURI == "" {
		return fmt.Errorf("database URI must be provided")
	}
	if cfg.GatewayURL == "" {
		return fmt.Errorf("payment gateway URL must be provided")
	}
	if cfg.GatewayKeyID == "" || cfg.GatewayKeySecret == "" {
		return fmt.Errorf("payment gateway credentials must be provided")
	}
	if cfg.AuthStrategy != "jwt" && cfg.AuthStrategy != "hmac" {
		return fmt.Errorf("unsupported auth strategy %q", cfg.AuthStrategy)
	}
	return nil
}

// LogValue renders the configuration with every secret redacted.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_address", c.RunAddress),
		slog.String("database_uri", redactDSN(c.DatabaseURI)),
		slog.String("gateway_url", c.GatewayURL),
		slog.String("gateway_key_id", c.GatewayKeyID),
		slog.String("gateway_key_secret", redactSecret(c.GatewayKeySecret)),
		slog.String("payment_secret", redactSecret(c.PaymentSecret)),
		slog.String("payment_currency", c.PaymentCurrency),
		slog.String("auth_secret", redactSecret(c.AuthSecret)),
		slog.String("auth_strategy", c.AuthStrategy),
		slog.Duration("auth_token_ttl", c.AuthTokenTTL),
		slog.Int("notify_workers", c.NotifyWorkers),
		slog.Int("notify_queue_size", c.NotifyQueueSize),
		slog.Any("kafka_brokers", c.KafkaBrokers),
		slog.String("kafka_topic", c.KafkaTopic),
		slog.String("redis_addr", c.RedisAddr),
		slog.String("redis_password", redactSecret(c.RedisPassword)),
		slog.Int("redis_db", c.RedisDB),
		slog.Duration("pending_expiry", c.PendingExpiry),
		slog.String("sweep_schedule", c.SweepSchedule),
		slog.Int("db_read_retries", c.DBReadRetries),
		slog.Duration("shutdown_timeout", c.ShutdownTimeout),
		slog.String("log_level", c.LogLevel),
	)
}

func redactSecret(v string) string {
	if v == "" {
		return ""
	}
	return redacted
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return redactSecret(dsn)
	}
	return u.Redacted()
}

func readSecretFile(lookup envLookup, key string, target *string) error {
	path, ok := lookup(key)
	if !ok || path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	*target = strings.TrimSpace(string(content))
	return nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
