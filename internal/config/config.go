package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	CheckoutAddress     string
	TokenSecret         string
	AdminEmail          string
	AdminPassword       string
	PaymentPollInterval time.Duration
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
	MaxPaymentsBatch    int
}

const (
	defaultRunAddress          = ":8080"
	defaultTokenSecret         = "change-me-in-production"
	defaultPaymentPollInterval = 5 * time.Second
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
	defaultMaxPaymentsBatch    = 32
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		CheckoutAddress:     getString(lookup, "CHECKOUT_ADDRESS", ""),
		TokenSecret:         getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		AdminEmail:          getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:       getString(lookup, "ADMIN_PASSWORD", ""),
		PaymentPollInterval: getDuration(lookup, "PAYMENT_POLL_INTERVAL", defaultPaymentPollInterval),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxPaymentsBatch:    getInt(lookup, "POLL_BATCH_SIZE", defaultMaxPaymentsBatch),
	}

	fs := flag.NewFlagSet("copydesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PaymentPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CheckoutAddress, "r", cfg.CheckoutAddress, "Checkout processor base URL")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "Bootstrap administrator email")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Bootstrap administrator password")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent payment workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between checkout polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxPaymentsBatch, "poll-batch", cfg.MaxPaymentsBatch, "Maximum payments per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PaymentPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxPaymentsBatch <= 0 {
		cfg.MaxPaymentsBatch = defaultMaxPaymentsBatch
	}

	if cfg.PaymentPollInterval <= 0 {
		cfg.PaymentPollInterval = defaultPaymentPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.CheckoutAddress == "" {
		return nil, fmt.Errorf("checkout processor address must be provided")
	}

	return cfg, nil
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
