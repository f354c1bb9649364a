// Package config loads server configuration from defaults, an optional
// YAML file, and FLIGHTMCP_ environment variables, in that order.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
)

const envPrefix = "FLIGHTMCP_"

// Config holds all server settings.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `koanf:"addr"`

	// AssetDir is the directory holding HTML templates and the
	// component bundle served by the UI endpoints.
	AssetDir string `koanf:"asset_dir"`

	// PublicBaseURL is the externally reachable base URL of this
	// server, used when tools embed links back to it.
	PublicBaseURL string `koanf:"public_base_url"`

	// ExternalUIURL is the page embedded by the external-URL demo tool.
	ExternalUIURL string `koanf:"external_ui_url"`

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:          ":3000",
		AssetDir:      "assets",
		PublicBaseURL: "http://localhost:3000",
		ExternalUIURL: "https://example.com",
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Load builds the configuration. A missing file at path is not an error
// when path is empty; an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, errors.Wrapf(err, "loading config file %s", path)
		}
	} else if _, err := os.Stat("flightmcp.yaml"); err == nil {
		if err := k.Load(file.Provider("flightmcp.yaml"), yaml.Parser()); err != nil {
			return cfg, errors.Wrap(err, "loading flightmcp.yaml")
		}
	}

	// FLIGHTMCP_LOG_LEVEL maps to log.level, and so on. Underscores
	// after the first segment stay literal so asset_dir works.
	err := k.Load(env.ProviderWithValue(envPrefix, "", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if rest, ok := strings.CutPrefix(key, "log_"); ok {
			return "log." + rest, value
		}
		return key, value
	}), nil)
	if err != nil {
		return cfg, errors.Wrap(err, "loading environment")
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "unmarshaling config")
	}
	return cfg, nil
}

// LoggerConfig translates the log settings into a logging.Config.
func (c Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.LogLevel(c.Log.Level)
	lc.Development = c.Log.Development
	return lc
}
