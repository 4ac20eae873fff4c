// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Backend names for the order store.
const (
	OrdersBackendJSON   = "json"
	OrdersBackendSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Port          string
	FrontendURL   string
	OrdersBackend string // "json" = flat file (default), "sqlite" = embedded store
	OrdersPath    string
	DBPath        string
	ImprovSeed    uint64 // 0 = random seed
	EventLog      EventLogConfig
}

// EventLogConfig controls NDJSON session event logging.
type EventLogConfig struct {
	Enabled       bool
	Dir           string
	GlobalEnabled bool
	GlobalPath    string
	QueueSize     int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	queueSize := getEnvInt("EVENT_LOG_QUEUE_SIZE", 1000)
	if queueSize <= 0 {
		queueSize = 1000
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		FrontendURL:   getEnv("FRONTEND_URL", ""),
		OrdersBackend: strings.ToLower(getEnv("ORDERS_BACKEND", OrdersBackendJSON)),
		OrdersPath:    getEnv("ORDERS_PATH", "./data/orders.json"),
		DBPath:        getEnv("DB_PATH", "./data/orders.db"),
		ImprovSeed:    getEnvUint64("IMPROV_SEED", 0),
		EventLog: EventLogConfig{
			Enabled:       getEnvBool("EVENT_LOG_ENABLED", true),
			Dir:           getEnv("EVENT_LOG_DIR", "./data/logs/sessions"),
			GlobalEnabled: getEnvBool("EVENT_LOG_GLOBAL_ENABLED", false),
			GlobalPath:    getEnv("EVENT_LOG_GLOBAL_PATH", "./data/logs/sessions/all.ndjson"),
			QueueSize:     queueSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.OrdersBackend {
	case OrdersBackendJSON:
		if c.OrdersPath == "" {
			return fmt.Errorf("ORDERS_PATH cannot be empty")
		}
	case OrdersBackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty")
		}
	default:
		return fmt.Errorf("ORDERS_BACKEND must be %q or %q, got %q",
			OrdersBackendJSON, OrdersBackendSQLite, c.OrdersBackend)
	}
	if c.EventLog.Enabled && c.EventLog.Dir == "" {
		return fmt.Errorf("EVENT_LOG_DIR cannot be empty")
	}
	if c.EventLog.GlobalEnabled && c.EventLog.GlobalPath == "" {
		return fmt.Errorf("EVENT_LOG_GLOBAL_PATH cannot be empty")
	}
	if c.EventLog.QueueSize <= 0 {
		return fmt.Errorf("EVENT_LOG_QUEUE_SIZE must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvUint64(key string, fallback uint64) uint64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
