package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration
type Config struct {
	// Remote API configuration
	API struct {
		BaseURL string
		Timeout time.Duration
	}

	// Local session storage configuration
	Storage struct {
		DataDir string
	}

	// Chat configuration
	Chat struct {
		HistoryLimit int
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}
}

var (
	instance *Config
	once     sync.Once
)

// New creates a new Config instance with values from environment variables
// Uses singleton pattern to ensure only one instance exists
func New() *Config {
	once.Do(func() {
		// Load .env file if exists
		godotenv.Load()

		instance = &Config{}

		// API config
		instance.API.BaseURL = getEnvString("API_BASE_URL", "http://localhost:8000")
		instance.API.Timeout = getEnvDuration("API_TIMEOUT", 60*time.Second)

		// Storage config
		instance.Storage.DataDir = getEnvString("DATA_DIR", defaultDataDir())

		// Chat config
		instance.Chat.HistoryLimit = getEnvInt("CHAT_HISTORY_LIMIT", 50)

		// Logging config
		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "text")
	})

	return instance
}

// Get returns the singleton Config instance
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

// defaultDataDir places the session database under the user config
// directory, falling back to a dotfile directory in $HOME.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "persona-chat")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".persona-chat"
	}
	return filepath.Join(home, ".persona-chat")
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
