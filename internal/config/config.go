package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"`
	CORSOrigins string `yaml:"cors_origins"`
	TablePrefix string `yaml:"table_prefix"`
	// Logging
	LogDir      string `yaml:"log_dir"`
	LogMaxFiles int    `yaml:"log_max_files"`
	// Search index
	ReconcileInterval time.Duration `yaml:"reconcile_interval"` // 0 disables the background repair pass
	HighlightStart    string        `yaml:"highlight_start"`
	HighlightStop     string        `yaml:"highlight_stop"`
}

// Load reads configuration from the environment. When CONFIG_FILE names a YAML file,
// its values are applied first and environment variables override them.
func Load() (*Config, error) {
	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	env := getEnv("ENVIRONMENT", orDefault(cfg.Environment, "dev"))

	interval, err := getDuration("RECONCILE_INTERVAL", cfg.ReconcileInterval, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	maxFiles, err := getInt("LOG_MAX_FILES", cfg.LogMaxFiles, 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:              getEnv("PORT", orDefault(cfg.Port, "8080")),
		Environment:       env,
		DatabaseURL:       getEnv("DATABASE_URL", cfg.DatabaseURL),
		CORSOrigins:       getEnv("CORS_ORIGINS", orDefault(cfg.CORSOrigins, "http://localhost:5173,http://localhost:3000")),
		TablePrefix:       getTablePrefix(env, cfg.TablePrefix),
		LogDir:            getEnv("LOG_DIR", cfg.LogDir),
		LogMaxFiles:       maxFiles,
		ReconcileInterval: interval,
		HighlightStart:    getEnv("SEARCH_HIGHLIGHT_START", cfg.HighlightStart),
		HighlightStop:     getEnv("SEARCH_HIGHLIGHT_STOP", cfg.HighlightStop),
	}, nil
}

// Validate checks settings required to serve traffic
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env, fromFile string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	if fromFile != "" {
		return fromFile
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, fromFile, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		if fromFile != 0 {
			return fromFile, nil
		}
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getDuration(key string, fromFile, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		if fromFile != 0 {
			return fromFile, nil
		}
		return defaultValue, nil
	}
	if value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}
