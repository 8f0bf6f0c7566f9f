package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultDatabaseURL points at the local "parks" PostgreSQL database
const DefaultDatabaseURL = "postgresql:///parks?sslmode=disable"

// Config holds application configuration
type Config struct {
	DatabaseType       string `yaml:"database_type"`
	DatabaseURL        string `yaml:"database_url"`
	DatabasePath       string `yaml:"database_path"`
	TrackModifications bool   `yaml:"track_modifications"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DatabaseType:       "postgres",
		DatabaseURL:        DefaultDatabaseURL,
		DatabasePath:       "./parks.db",
		TrackModifications: false,
	}
}

// Load builds the configuration from defaults, an optional .env file, an
// optional YAML file named by PARKS_CONFIG and finally the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("PARKS_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile overlays values from a YAML file onto the config
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.DatabaseType = getEnv("DATABASE_TYPE", c.DatabaseType)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.DatabasePath = getEnv("DB_PATH", c.DatabasePath)

	if value := os.Getenv("TRACK_MODIFICATIONS"); value != "" {
		track, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid TRACK_MODIFICATIONS value %q: %w", value, err)
		}
		c.TrackModifications = track
	}

	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
