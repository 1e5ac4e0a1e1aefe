package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the tab janitor.
type Config struct {
	// CDP connection settings
	CDPAddress string
	CDPPort    int

	// HTTP behavior
	HTTPTimeoutMS int
	CloseDelayMS  int

	// Site rules
	SitesFile string

	// Sweep history (empty disables it)
	DataDir string

	// Optional ntfy summary endpoint (empty disables it)
	NTFYEndpoint string

	// Logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables and optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	cfg := &Config{
		CDPAddress:    getEnvOrDefault("TABJANITOR_CDP_ADDRESS", "127.0.0.1"),
		CDPPort:       getEnvIntOrDefault("TABJANITOR_CDP_PORT", 9222),
		HTTPTimeoutMS: getEnvIntOrDefault("TABJANITOR_HTTP_TIMEOUT_MS", 5000),
		CloseDelayMS:  getEnvIntOrDefault("TABJANITOR_CLOSE_DELAY_MS", 100),
		SitesFile:     getEnvOrDefault("TABJANITOR_SITES_FILE", "sites.json"),
		DataDir:       getEnvOrDefault("TABJANITOR_DATA_DIR", ""),
		NTFYEndpoint:  getEnvOrDefault("TABJANITOR_NTFY_ENDPOINT", ""),
		LogLevel:      getEnvOrDefault("TABJANITOR_LOG_LEVEL", "info"),
		LogFile:       getEnvOrDefault("TABJANITOR_LOG_FILE", "logs/tabjanitor.log"),
	}

	return cfg, nil
}

// DevToolsURL returns the base URL of the browser's remote debugging endpoint.
func (c *Config) DevToolsURL() string {
	return fmt.Sprintf("http://%s:%d", c.CDPAddress, c.CDPPort)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
