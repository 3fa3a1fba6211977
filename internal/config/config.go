package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment variables the defaults are read from.
const (
	EnvTimeout    = "TALKBACK_RTSP_TIMEOUT"
	EnvClientPort = "TALKBACK_CLIENT_PORT"
	EnvLogLevel   = "TALKBACK_LOG_LEVEL"
)

// Config holds process-wide defaults, read once at startup and
// read-only after.
type Config struct {
	Timeout    time.Duration // connect / per-read timeout
	ClientPort int           // first port of the client_port pair
	LogLevel   string
}

// FromEnv builds a Config from TALKBACK_* environment variables,
// falling back to the defaults (5s, 5000, info).
func FromEnv() (*Config, error) {
	cfg := &Config{
		Timeout:    5 * time.Second,
		ClientPort: 5000,
		LogLevel:   "info",
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number of seconds", EnvTimeout, v)
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv(EnvClientPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a port", EnvClientPort, v)
		}
		cfg.ClientPort = port
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	// SETUP offers the pair ClientPort..ClientPort+1, so both must be
	// valid ports.
	if c.ClientPort < 1 || c.ClientPort > 65534 {
		return fmt.Errorf("client port must be in 1..65534, got %d", c.ClientPort)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}
