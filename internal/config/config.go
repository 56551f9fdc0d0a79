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
	RunAddress         string
	DatabaseURI        string
	RedisURL           string
	JWTSecret          string
	PayoutAPIAddress   string
	PayoutAPIKey       string
	PayoutPollInterval time.Duration
	WorkerPoolSize     int
	PayoutBatchSize    int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultPayoutPollInterval = 5 * time.Second
	defaultWorkerPoolSize     = 2
	defaultPayoutBatchSize    = 16
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		RedisURL:           getString(lookup, "REDIS_URL", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		PayoutAPIAddress:   getString(lookup, "PAYOUT_API_ADDRESS", ""),
		PayoutAPIKey:       getString(lookup, "PAYOUT_API_KEY", ""),
		PayoutPollInterval: getDuration(lookup, "PAYOUT_POLL_INTERVAL", defaultPayoutPollInterval),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		PayoutBatchSize:    getInt(lookup, "PAYOUT_BATCH_SIZE", defaultPayoutBatchSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("minegram", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PayoutPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for cache invalidation (optional)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.PayoutAPIAddress, "payout-address", cfg.PayoutAPIAddress, "Payout provider base URL (optional)")
	fs.StringVar(&cfg.PayoutAPIKey, "payout-key", cfg.PayoutAPIKey, "Payout provider API key")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent payout workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payout dispatch polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.PayoutBatchSize, "poll-batch", cfg.PayoutBatchSize, "Maximum withdrawals per dispatch batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PayoutPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.PayoutBatchSize <= 0 {
		cfg.PayoutBatchSize = defaultPayoutBatchSize
	}

	if cfg.PayoutPollInterval <= 0 {
		cfg.PayoutPollInterval = defaultPayoutPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
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
