package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port        string     `toml:"port"`
	Environment string     `toml:"environment"`
	Log         LogConfig  `toml:"log"`
	OTel        OTelConfig `toml:"otel"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type OTelConfig struct {
	ServiceName  string `toml:"service_name"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
	Disabled     bool   `toml:"disabled"`
}

func Default() *Config {
	return &Config{
		Port:        "8080",
		Environment: "development",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		OTel: OTelConfig{
			ServiceName:  "parking-lot-service",
			OTLPEndpoint: "http://localhost:4318",
		},
	}
}

// Load builds the configuration from defaults, then the optional TOML file at
// path, then the environment. Later sources win.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.Port = envOr("APP_PORT", cfg.Port)
	cfg.Environment = envOr("ENVIRONMENT", cfg.Environment)
	cfg.Log.Level = envOr("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOr("LOG_FORMAT", cfg.Log.Format)
	cfg.OTel.ServiceName = envOr("OTEL_SERVICE_NAME", cfg.OTel.ServiceName)
	cfg.OTel.OTLPEndpoint = envOr("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTel.OTLPEndpoint)
	cfg.OTel.Disabled = envOrBool("OTEL_SDK_DISABLED", cfg.OTel.Disabled)

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
