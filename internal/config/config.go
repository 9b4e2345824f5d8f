package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage driver names accepted in config.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Session backend names accepted in config.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
	SessionJWT    = "jwt"
)

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	StorageDriver   string `yaml:"storageDriver"`
	DatabasePath    string `yaml:"databasePath"`
	DatabaseURL     string `yaml:"databaseURL"`
	SessionBackend  string `yaml:"sessionBackend"`
	SessionTTL      string `yaml:"sessionTTL"`
	RedisAddr       string `yaml:"redisAddr"`
	RedisPassword   string `yaml:"redisPassword"`
	JWTSecret       string `yaml:"jwtSecret"`
	LogLevel        string `yaml:"logLevel"`
	VerifyPasswords *bool  `yaml:"verifyPasswords"`
}

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// Load reads config from path (defaults to config.yaml) and applies
// environment-variable overrides.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("BANDBOOK_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = v
	}
	if v := os.Getenv("BANDBOOK_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("BANDBOOK_SESSION_BACKEND"); v != "" {
		cfg.SessionBackend = v
	}
	if v := os.Getenv("BANDBOOK_SESSION_TTL"); v != "" {
		cfg.SessionTTL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("BANDBOOK_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("BANDBOOK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BANDBOOK_VERIFY_PASSWORDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.VerifyPasswords = &b
		}
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = DriverMemory
	}
	if cfg.SessionBackend == "" {
		cfg.SessionBackend = SessionMemory
	}
	if cfg.SessionTTL == "" {
		cfg.SessionTTL = "720h"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.VerifyPasswords == nil {
		verify := true
		cfg.VerifyPasswords = &verify
	}
}

// SessionTTLDuration parses the configured session TTL, falling back to 30
// days on invalid input.
func (c FileConfig) SessionTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 30 * 24 * time.Hour
	}
	return d
}
