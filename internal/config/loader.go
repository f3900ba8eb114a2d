package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "skydeck.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "SKYDECK_PORT")
	setString(&cfg.Server.BaseURL, "SKYDECK_BASE_URL")
	setString(&cfg.Server.CORSOrigin, "SKYDECK_CORS_ORIGIN")
	setInt64(&cfg.Server.MaxBodyBytes, "SKYDECK_MAX_BODY_BYTES")

	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "SKYDECK_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "SKYDECK_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "SKYDECK_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "SKYDECK_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "SKYDECK_PG_HEALTH_CHECK")

	setString(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "OPENAI_MODEL")
	setFloat64(&cfg.OpenAI.Temperature, "SKYDECK_OPENAI_TEMPERATURE")
	setInt(&cfg.OpenAI.MaxTokens, "SKYDECK_OPENAI_MAX_TOKENS")
	setDuration(&cfg.OpenAI.Timeout, "SKYDECK_OPENAI_TIMEOUT")

	setInt(&cfg.Chat.MaxToolRounds, "SKYDECK_CHAT_MAX_TOOL_ROUNDS")
	setInt64(&cfg.Chat.MaxConcurrent, "SKYDECK_CHAT_MAX_CONCURRENT")

	setBool(&cfg.MCP.Enabled, "SKYDECK_MCP_ENABLED")
	setString(&cfg.MCP.Addr, "SKYDECK_MCP_ADDR")
	setString(&cfg.MCP.Name, "SKYDECK_MCP_NAME")
	setString(&cfg.MCP.Version, "SKYDECK_MCP_VERSION")
	setString(&cfg.MCP.APIKey, "SKYDECK_MCP_API_KEY")

	setInt64(&cfg.Cache.MaxSizeMB, "SKYDECK_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.AirportTTL, "SKYDECK_CACHE_AIRPORT_TTL")
	setDuration(&cfg.Cache.WeatherTTL, "SKYDECK_CACHE_WEATHER_TTL")

	setString(&cfg.Logging.Level, "SKYDECK_LOG_LEVEL")
	setString(&cfg.Logging.Service, "SKYDECK_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "SKYDECK_LOG_ASYNC")

	setInt(&cfg.Breaker.MaxFailures, "SKYDECK_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "SKYDECK_BREAKER_TIMEOUT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.OpenAI.BaseURL == "" {
		return errors.New("openai.base_url is required")
	}
	if cfg.OpenAI.Model == "" {
		return errors.New("openai.model is required")
	}
	if cfg.Chat.MaxToolRounds < 1 {
		return errors.New("chat.max_tool_rounds must be >= 1")
	}
	if cfg.Chat.MaxConcurrent < 1 {
		return errors.New("chat.max_concurrent must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
