// Package config resolves process configuration from the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/aloud/internal/catalog"
)

// DefaultAPIURL is where clients look for the assistance server.
const DefaultAPIURL = "http://localhost:3000"

// Config holds everything outside the LLM provider settings, which
// llm.ResolveConfig reads on its own.
type Config struct {
	APIURL     string
	Host       string
	Port       int
	DBPath     string // empty: store.DefaultDBPath
	Catalog    string // YAML override, optional
	Difficulty catalog.Difficulty

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	LogLevel string
	LogFile  string
}

// Addr is the listen address for the server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads .env from the working directory when present, then the
// environment. Variables already set win over .env entries.
func Load() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

// LoadDotEnv loads path into the environment. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		APIURL:     firstEnv(DefaultAPIURL, "ALOUD_API_URL", "API_URL"),
		Host:       firstEnv("0.0.0.0", "ALOUD_HOST"),
		Port:       3000,
		DBPath:     os.Getenv("ALOUD_DB"),
		Catalog:    os.Getenv("ALOUD_CATALOG"),
		Difficulty: catalog.Easy,

		RedisAddr:     os.Getenv("ALOUD_REDIS_ADDR"),
		RedisPassword: os.Getenv("ALOUD_REDIS_PASSWORD"),
		CacheTTL:      time.Hour,

		LogLevel: firstEnv("info", "ALOUD_LOG_LEVEL"),
		LogFile:  os.Getenv("ALOUD_LOG_FILE"),
	}

	if p := firstEnv("", "ALOUD_PORT", "PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid port %q", p)
		}
		cfg.Port = port
	}

	if v := os.Getenv("ALOUD_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ALOUD_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	if v := os.Getenv("ALOUD_DIFFICULTY"); v != "" {
		d, err := catalog.ParseDifficulty(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ALOUD_DIFFICULTY: %w", err)
		}
		cfg.Difficulty = d
	}

	return cfg, nil
}

// firstEnv returns the first non-empty variable among keys, or def.
func firstEnv(def string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}
