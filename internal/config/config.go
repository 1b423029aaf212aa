// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Parse    ParseConfig
	CORS     CORSConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8000)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8000"`

	// ReadTimeout is the maximum duration for reading the request, body included (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// ParseConfig holds settings for the parse pipeline.
type ParseConfig struct {
	// MaxInputSize is the maximum request body in bytes (default: 32MiB)
	MaxInputSize int64 `env:"PARSE_MAX_INPUT_SIZE" default:"33554432"`

	// MaxConcurrent is the maximum number of parses running at once (default: 8)
	MaxConcurrent int `env:"PARSE_MAX_CONCURRENT" default:"8"`

	// MaxWaitTime is how long a request waits for a parse slot (default: 10s)
	MaxWaitTime time.Duration `env:"PARSE_MAX_WAIT_TIME" default:"10s"`

	// EnableSpreadsheet registers the .xlsx decoder. When false, .xlsx
	// uploads fail as a missing server capability (default: true)
	EnableSpreadsheet bool `env:"PARSE_ENABLE_SPREADSHEET" default:"true"`

	// ExposeInternalErrors includes the technical message of unexpected
	// errors in responses (default: true)
	ExposeInternalErrors bool `env:"PARSE_EXPOSE_INTERNAL_ERRORS" default:"true"`
}

// CORSConfig holds cross-origin settings for browser clients.
type CORSConfig struct {
	// AllowedOrigins is a comma-separated list of origins
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8000"`

	// AllowCredentials allows cookies and auth headers cross-origin (default: true)
	AllowCredentials bool `env:"CORS_ALLOW_CREDENTIALS" default:"true"`

	// MaxAge is how long browsers may cache preflight responses (default: 5m)
	MaxAge time.Duration `env:"CORS_MAX_AGE" default:"5m"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
