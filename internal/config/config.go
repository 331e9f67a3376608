// Package config provides configuration loading and validation for the member form service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Duration is a time.Duration that reads "30m" style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var secs int64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	*d = Duration(time.Duration(secs) * time.Second)
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Storage
	Store       string   `json:"store,omitempty"`        // memory, redis or postgres
	RedisURL    string   `json:"redis_url,omitempty"`    // redis://host:port/db
	DatabaseURL string   `json:"database_url,omitempty"` // PostgreSQL connection URL
	RecordTTL   Duration `json:"record_ttl,omitempty"`   // Redis expiry of stored records, 0 keeps them

	// Sessions
	SessionTTL Duration `json:"session_ttl,omitempty"` // Idle expiry of a form session
	Reveal     string   `json:"reveal,omitempty"`      // all or touched

	// Options
	JobPositionsFile string `json:"job_positions_file,omitempty"` // JSON catalog, built-in list when empty

	// Logging
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:       8080,
		Store:      "memory",
		SessionTTL: Duration(30 * time.Minute),
		Reveal:     "all",
		LogLevel:   "info",
		LogFormat:  "JSON",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv overlays environment variables onto c. Unset variables leave fields unchanged.
func (c *Config) FromEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("RECORD_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RECORD_TTL: %v", err)
		}
		c.RecordTTL = Duration(d)
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL: %v", err)
		}
		c.SessionTTL = Duration(d)
	}
	if v := os.Getenv("REVEAL_POLICY"); v != "" {
		c.Reveal = v
	}
	if v := os.Getenv("JOB_POSITIONS_FILE"); v != "" {
		c.JobPositionsFile = v
	}
	if v := os.Getenv("LOGGING_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOGGING_FORMAT"); v != "" {
		c.LogFormat = v
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	switch c.Store {
	case "", "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis store")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	default:
		return fmt.Errorf("config error: unknown store %q (must be memory, redis or postgres)", c.Store)
	}

	if c.SessionTTL < 0 || c.RecordTTL < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}

	switch c.Reveal {
	case "", "all", "touched":
	default:
		return fmt.Errorf("config error: 'reveal' must be all or touched, got %q", c.Reveal)
	}

	if c.JobPositionsFile != "" {
		if _, err := os.Stat(c.JobPositionsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: job positions file not found: %s", c.JobPositionsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RecordTTL == 0 {
		result.RecordTTL = defaults.RecordTTL
	}
	if result.SessionTTL == 0 {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.Reveal == "" {
		result.Reveal = defaults.Reveal
	}
	if result.JobPositionsFile == "" {
		result.JobPositionsFile = defaults.JobPositionsFile
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	return result
}

// Load reads the optional file at path, overlays the environment and fills defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.FromEnv(); err != nil {
		return Config{}, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
