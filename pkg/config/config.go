// Package config loads the service configuration from a YAML file, an
// optional .env file and environment variables, in that order of precedence
// from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendCSV      = "csv"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config is the top-level configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Storage Storage `yaml:"storage"`
	Auth    Auth    `yaml:"auth"`
	Average Average `yaml:"average"`
	Logging Logging `yaml:"logging"`
	Tracing Tracing `yaml:"tracing"`
}

// Server holds listener settings. TLS is used when both files are set.
type Server struct {
	Addr     string `yaml:"addr"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// Storage selects and configures the dataset backend.
type Storage struct {
	Backend   string `yaml:"backend"`
	CSVPath   string `yaml:"csv_path"`
	DSN       string `yaml:"dsn"`
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
}

// Auth holds the shared secret for bulk delete.
type Auth struct {
	AdminKey string `yaml:"admin_key"`
}

// Average configures the trailing average endpoint.
type Average struct {
	Strict bool `yaml:"strict"`
}

// Logging configures the application logger.
type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Tracing configures the OTLP exporter.
type Tracing struct {
	Host        string  `yaml:"host"`
	Probability float64 `yaml:"probability"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server:  Server{Addr: ":8080"},
		Storage: Storage{Backend: BackendCSV, CSVPath: "AAPL.csv", RedisKey: "stockdata:prices"},
		Auth:    Auth{AdminKey: "IAMADMIN123"},
		Logging: Logging{Level: "info", MaxSizeMB: 100, MaxBackups: 5, MaxAgeDays: 30},
		Tracing: Tracing{Probability: 1.0},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), a .env file in the working directory if present, and
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STOCKDATA_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("STOCKDATA_CERT_FILE"); v != "" {
		cfg.Server.CertFile = v
	}
	if v := os.Getenv("STOCKDATA_KEY_FILE"); v != "" {
		cfg.Server.KeyFile = v
	}
	if v := os.Getenv("STOCKDATA_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("STOCKDATA_CSV_PATH"); v != "" {
		cfg.Storage.CSVPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("STOCKDATA_REDIS_KEY"); v != "" {
		cfg.Storage.RedisKey = v
	}
	if v := os.Getenv("STOCKDATA_ADMIN_KEY"); v != "" {
		cfg.Auth.AdminKey = v
	}
	if v := os.Getenv("STOCKDATA_STRICT_AVERAGE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STOCKDATA_STRICT_AVERAGE: %w", err)
		}
		cfg.Average.Strict = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("STOCKDATA_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("OTEL_HOST"); v != "" {
		cfg.Tracing.Host = v
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c.Auth.AdminKey == "" {
		return errors.New("auth.admin_key must not be empty")
	}
	switch c.Storage.Backend {
	case BackendCSV:
		if c.Storage.CSVPath == "" {
			return errors.New("storage.csv_path is required for the csv backend")
		}
	case BackendSQLite, BackendPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s backend", c.Storage.Backend)
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" || c.Storage.RedisKey == "" {
			return errors.New("storage.redis_addr and storage.redis_key are required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Tracing.Probability < 0 || c.Tracing.Probability > 1 {
		return fmt.Errorf("tracing.probability %v out of range [0,1]", c.Tracing.Probability)
	}
	return nil
}
