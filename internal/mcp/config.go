package mcp

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/combiner"
)

// Environment variables read by ConfigFromEnv
const (
	EnvDBPath         = "RXNSMILES_DB_PATH"
	EnvCacheSize      = "RXNSMILES_CACHE_SIZE"
	EnvWorkers        = "RXNSMILES_WORKERS"
	EnvRemoveAtomMaps = "RXNSMILES_REMOVE_ATOM_MAPS"
	EnvFallback       = "RXNSMILES_FALLBACK"
	EnvLogLevel       = "RXNSMILES_LOG_LEVEL"
)

// Config contains server configuration
type Config struct {
	DBPath         string     // Database directory (default: ~/.rxnsmiles)
	CacheSize      int        // Toolkit LRU size (default: 10000)
	Workers        int        // Batch workers (default: runtime.NumCPU())
	RemoveAtomMaps bool       // Strip atom maps when importing extended reaction SMILES
	Fallback       string     // Emitted for reactions that cannot be built (default: ">>")
	LogLevel       slog.Level // Minimum log level (default: info)
}

// DefaultConfig returns the configuration used when no variable is set
func DefaultConfig() *Config {
	return &Config{
		DBPath:    DefaultDBPath,
		CacheSize: chem.DefaultCacheSize,
		Workers:   runtime.NumCPU(),
		Fallback:  combiner.DefaultFallback,
		LogLevel:  slog.LevelInfo,
	}
}

// ConfigFromEnv builds a Config from RXNSMILES_* environment variables
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive integer", EnvCacheSize, v)
		}
		cfg.CacheSize = n
	}

	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a positive integer", EnvWorkers, v)
		}
		cfg.Workers = n
	}

	if v := os.Getenv(EnvRemoveAtomMaps); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvRemoveAtomMaps, v, err)
		}
		cfg.RemoveAtomMaps = b
	}

	if v, ok := os.LookupEnv(EnvFallback); ok && v != "" {
		cfg.Fallback = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvLogLevel, v, err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// databaseFile expands "~" in the configured directory, creates it, and
// returns the database file path
func (c *Config) databaseFile() (string, error) {
	dir := c.DBPath
	if dir == "" {
		dir = DefaultDBPath
	}

	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	return filepath.Join(dir, DatabaseFileName), nil
}
