// Package cliutil holds the small pieces every ort CLI front end shares:
// schema loading, logger construction, and the ort.yaml/ORT_* config
// layer built on viper.
package cliutil

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/ortschema/ort/model"
	"github.com/ortschema/ort/model/parse"
)

// EnvPrefix is the prefix every ORT_* environment variable carries when
// overriding an ort.yaml setting (ORT_LOG_LEVEL, ORT_LOG_FORMAT, ...).
const EnvPrefix = "ORT"

// Settings holds the ambient configuration shared by every ort subcommand,
// loaded from ort.yaml (searched in the working directory and $HOME) and
// overridable by ORT_* environment variables or explicit flags.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat selects the slog handler: text or json.
	LogFormat string
}

// LoadSettings reads ort.yaml from the working directory (if present) and
// layers ORT_* environment variables on top. A missing config file is not
// an error: Settings falls back to its zero-ish defaults.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigName("ort")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("cliutil: reading ort.yaml: %w", err)
		}
	}

	return &Settings{
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}, nil
}

// NewLogger builds the slog.Logger a command should use for diagnostics,
// writing to stderr so stdout stays reserved for a command's primary
// output (a report, a JSON document, generated SQL).
func (s *Settings) NewLogger() *slog.Logger {
	level := parseLevel(s.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadSchema reads and parses the schema file at path.
func LoadSchema(path string) (*model.Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cliutil: reading %s: %w", path, err)
	}
	p := parse.NewParser(string(src), path)
	cfg, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("cliutil: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveRole finds role by name in cfg, returning a descriptive error
// listing the role's absence rather than a bare nil-pointer downstream.
func ResolveRole(cfg *model.Config, name string) (*model.Role, error) {
	r := cfg.RoleByName(name)
	if r == nil {
		return nil, fmt.Errorf("cliutil: no such role %q", name)
	}
	return r, nil
}
