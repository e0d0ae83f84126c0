package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Ingest  IngestConfig  `toml:"ingest"`
	Enrich  EnrichConfig  `toml:"enrich"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port" validate:"gte=0,lte=65535"`
	StaticDir string `toml:"static_dir"`
}

type StorageConfig struct {
	SQLite SQLiteConfig `toml:"sqlite"`
}

// SQLiteConfig represents SQLite-specific configuration
type SQLiteConfig struct {
	Path          string `toml:"path" validate:"required"`
	CacheSizeMB   int    `toml:"cache_size_mb"`
	BusyTimeoutMS int    `toml:"busy_timeout_ms"`
	WALMode       bool   `toml:"wal_mode"`
}

// IngestConfig controls source discovery for the ingest pass
type IngestConfig struct {
	SourceDir string `toml:"source_dir" validate:"required"`
}

// EnrichConfig controls the LLM enrichment batch
type EnrichConfig struct {
	Provider       string  `toml:"provider" validate:"oneof=gemini claude"`
	GoogleAPIKey   string  `toml:"google_api_key"`
	ClaudeAPIKey   string  `toml:"claude_api_key"`
	Model          string  `toml:"model"`
	Timeout        string  `toml:"timeout"`
	Concurrency    int     `toml:"concurrency" validate:"gte=1,lte=32"`
	MaxRetries     int     `toml:"max_retries" validate:"gte=0,lte=10"`
	MinScore       int     `toml:"min_score"`
	RequestsPerMin float64 `toml:"requests_per_min"`
	Schedule       string  `toml:"schedule"` // cron expression, empty disables periodic sweeps
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// DefaultConfig returns the baseline configuration before file, env and
// flag overrides are applied.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "localhost",
			Port:      8001,
			StaticDir: "static",
		},
		Storage: StorageConfig{
			SQLite: SQLiteConfig{
				Path:          "./data/scrutari.db",
				CacheSizeMB:   50,
				BusyTimeoutMS: 5000,
				WALMode:       true,
			},
		},
		Ingest: IngestConfig{
			SourceDir: ".",
		},
		Enrich: EnrichConfig{
			Provider:       "gemini",
			Model:          "gemini-2.0-flash",
			Timeout:        "60s",
			Concurrency:    5,
			MaxRetries:     3,
			MinScore:       40,
			RequestsPerMin: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFile loads configuration: defaults -> TOML file -> env.
// A missing path is not an error; defaults and env still apply.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies SCRUTARI_* environment variables on top of
// file values. API keys also fall back to the conventional vendor names.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SCRUTARI_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("SCRUTARI_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("SCRUTARI_SQLITE_PATH"); v != "" {
		config.Storage.SQLite.Path = v
	}
	if v := os.Getenv("SCRUTARI_SOURCE_DIR"); v != "" {
		config.Ingest.SourceDir = v
	}
	if v := os.Getenv("SCRUTARI_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("SCRUTARI_GOOGLE_API_KEY"); v != "" {
		config.Enrich.GoogleAPIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && config.Enrich.GoogleAPIKey == "" {
		config.Enrich.GoogleAPIKey = v
	}
	if v := os.Getenv("SCRUTARI_CLAUDE_API_KEY"); v != "" {
		config.Enrich.ClaudeAPIKey = v
	} else if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && config.Enrich.ClaudeAPIKey == "" {
		config.Enrich.ClaudeAPIKey = v
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
