package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
)

// Config holds all configuration for the application
type Config struct {
	Dungeon DungeonConfig
	Redis   RedisConfig
}

// DungeonConfig holds generation configuration
type DungeonConfig struct {
	Settings dungeon.Settings
	// Seed fixes the random sequence; zero seeds from the clock
	Seed int64
	// Timeout bounds a single generation; zero means no limit
	Timeout   time.Duration
	LevelsDir string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is a redis:// connection string; empty keeps layouts in memory
	URL string
}

// Enabled reports whether layouts should be stored in Redis
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// DefaultSettings returns the generation limits used when nothing is configured
func DefaultSettings() dungeon.Settings {
	return dungeon.DefaultSettings()
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	defaults := DefaultSettings()

	cfg := &Config{
		Dungeon: DungeonConfig{
			Settings: dungeon.Settings{
				MaxBuildAttempts:           getEnvAsIntOrDefault("DUNGEON_MAX_BUILD_ATTEMPTS", defaults.MaxBuildAttempts),
				MaxRebuildAttemptsForGraph: getEnvAsIntOrDefault("DUNGEON_MAX_REBUILD_ATTEMPTS_FOR_GRAPH", defaults.MaxRebuildAttemptsForGraph),
				MaxChildCorridors:          getEnvAsIntOrDefault("DUNGEON_MAX_CHILD_CORRIDORS", defaults.MaxChildCorridors),
			},
			LevelsDir: getEnvOrDefault("DUNGEON_LEVELS_DIR", "data/levels"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
	}

	if value := os.Getenv("DUNGEON_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DUNGEON_SEED must be an integer: %w", err)
		}
		cfg.Dungeon.Seed = seed
	}

	if value := os.Getenv("DUNGEON_GENERATION_TIMEOUT"); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("DUNGEON_GENERATION_TIMEOUT must be a duration: %w", err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("DUNGEON_GENERATION_TIMEOUT cannot be negative")
		}
		cfg.Dungeon.Timeout = timeout
	}

	// Validate generation limits
	if err := cfg.Dungeon.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dungeon settings: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
