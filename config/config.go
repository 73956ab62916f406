package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar points at an optional YAML file layered under the
// environment.
const ConfigPathEnvVar = "CONFIG_PATH"

const defaultConfigPath = "config.yaml"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Seed      SeedConfig      `koanf:"seed"`
}

type ServerConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	// URL is sqlite:///relative/path, sqlite:////absolute/path or a
	// postgres:// / postgresql:// URL.
	URL           string        `koanf:"url"`
	MaxOpenConns  int           `koanf:"max_open_conns"`
	MaxIdleConns  int           `koanf:"max_idle_conns"`
	SlowThreshold time.Duration `koanf:"slow_threshold"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig limits API requests per client. TrustProxy keys clients by
// X-Forwarded-For / X-Real-IP; enable it only behind a proxy that overwrites
// those headers.
type RateLimitConfig struct {
	Requests   int           `koanf:"requests"`
	Window     time.Duration `koanf:"window"`
	Disabled   bool          `koanf:"disabled"`
	TrustProxy bool          `koanf:"trust_proxy"`
}

type SeedConfig struct {
	GoalTemplates bool `koanf:"goal_templates"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL:           "sqlite:///data/inspections.db",
			MaxOpenConns:  20,
			MaxIdleConns:  5,
			SlowThreshold: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Requests: 300,
			Window:   time.Minute,
		},
		Seed: SeedConfig{
			GoalTemplates: true,
		},
	}
}

// envMappings maps supported environment variables to config keys.
// DB_DSN is kept for deployments that predate DATABASE_URL.
var envMappings = map[string]string{
	"port":                   "server.port",
	"server_read_timeout":    "server.read_timeout",
	"server_write_timeout":   "server.write_timeout",
	"db_dsn":                 "database.url",
	"database_url":           "database.url",
	"db_max_open_conns":      "database.max_open_conns",
	"db_max_idle_conns":      "database.max_idle_conns",
	"db_slow_query":          "database.slow_threshold",
	"log_level":              "logging.level",
	"log_format":             "logging.format",
	"log_caller":             "logging.caller",
	"cors_allowed_origins":   "cors.allowed_origins",
	"rate_limit_requests":    "rate_limit.requests",
	"rate_limit_window":      "rate_limit.window",
	"rate_limit_disabled":    "rate_limit.disabled",
	"rate_limit_trust_proxy": "rate_limit.trust_proxy",
	"seed_goal_templates":    "seed.goal_templates",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

var sliceConfigPaths = []string{"cors.allowed_origins"}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing priority. A .env file in the working directory
// is loaded into the environment first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// DATABASE_URL wins over DB_DSN when both are set.
	if err := k.Load(env.Provider("", ".", func(key string) string {
		if strings.EqualFold(key, "DB_DSN") && os.Getenv("DATABASE_URL") != "" {
			return ""
		}
		return envTransformFunc(key)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

// processSliceFields splits comma-separated environment values into lists.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := []string{}
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if _, _, err := ParseDatabaseURL(c.Database.URL); err != nil {
		errs = append(errs, err)
	}
	if !c.RateLimit.Disabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("rate_limit.requests and rate_limit.window must be positive"))
	}
	return errors.Join(errs...)
}
