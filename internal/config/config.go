// internal/config/config.go
//
// Environment-driven configuration for the WordScramble server.
// Values are read once at startup (after godotenv has loaded .env) and
// fall back to development-friendly defaults.

package config

import (
	"os"
	"strconv"
	"time"
)

// Dictionary backends.
const (
	BackendEmbedded = "embedded"
	BackendSQLite   = "sqlite"
	BackendRemote   = "remote"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Game       GameConfig
	Dictionary DictionaryConfig
	Session    SessionConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port         string
	ClientOrigin string
	Production   bool
}

// GameConfig holds round settings.
type GameConfig struct {
	Language  string
	StartFile string // empty means the embedded start.txt
	DailySalt string
}

// DictionaryConfig selects and configures the spelling oracle.
type DictionaryConfig struct {
	Backend string
	File    string // empty means the embedded dictionary.txt
	DBPath  string
	URL     string
	Timeout time.Duration
}

// SessionConfig holds session token and eviction settings.
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			Production:   os.Getenv("NODE_ENV") == "production",
		},
		Game: GameConfig{
			Language:  getEnv("GAME_LANGUAGE", "en"),
			StartFile: os.Getenv("WORDS_START_FILE"),
			DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),
		},
		Dictionary: DictionaryConfig{
			Backend: getEnv("DICTIONARY_BACKEND", BackendEmbedded),
			File:    os.Getenv("DICTIONARY_FILE"),
			DBPath:  getEnv("DICTIONARY_DB", "./data/dictionary.db"),
			URL:     getEnv("DICTIONARY_URL", "https://api.dictionaryapi.dev/api/v2/entries"),
			Timeout: getEnvDuration("DICTIONARY_TIMEOUT", 3*time.Second),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "dev_secret_change_me"),
			TTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("COOKIE_NAME", "scramble_session"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := getEnvInt(k, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
