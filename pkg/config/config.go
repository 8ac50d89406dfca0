// Package config loads maestro settings from defaults, YAML files, the
// environment and command-line overrides, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jllopis/maestro/pkg/errors"
)

// EnvPrefix is the prefix of environment overrides (MAESTRO_LOG_LEVEL -> log.level).
const EnvPrefix = "MAESTRO_"

type Config struct {
	Log          LogConfig          `koanf:"log"`
	Telemetry    TelemetryConfig    `koanf:"telemetry"`
	Roles        RolesConfig        `koanf:"roles"`
	Orchestrator OrchestratorConfig `koanf:"orchestrator"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

type TelemetryConfig struct {
	Exporter     string `koanf:"exporter"` // none, stdout, otlp
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

type RolesConfig struct {
	// File replaces the embedded role catalog when set.
	File string `koanf:"file"`
}

type OrchestratorConfig struct {
	DefaultRole string `koanf:"default_role"`
}

func defaults(k *koanf.Koanf) {
	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("telemetry.exporter", "none")
	k.Set("telemetry.otlp_insecure", true)
	k.Set("orchestrator.default_role", "project_manager")
}

// Load reads defaults, then the YAML file at path (if any), then the environment.
func Load(path string) (*Config, error) {
	return LoadWithProfile(path, "")
}

// LoadWithProfile is Load plus an optional profile overlay: for
// config.yaml and profile "dev", config.dev.yaml is merged on top when it exists.
func LoadWithProfile(path, profile string) (*Config, error) {
	return load(path, profile, nil)
}

// LoadWithCLI parses --config, --profile (alias --env) and repeated
// --set key=value arguments. --set values win over every other source.
func LoadWithCLI(args []string) (*Config, error) {
	var (
		path, profile string
		sets          []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--config", "-config", "--profile", "-profile", "--env", "-env", "--set", "-set":
		default:
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, errors.New(errors.CodeConfig, fmt.Sprintf("missing value for %s", name), nil)
			}
			value = args[i+1]
			i++
		}
		switch strings.TrimLeft(name, "-") {
		case "config":
			path = value
		case "profile", "env":
			profile = value
		case "set":
			sets = append(sets, value)
		}
	}
	return load(path, profile, sets)
}

func load(path, profile string, sets []string) (*Config, error) {
	k := koanf.New(".")
	defaults(k)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.New(errors.CodeConfig, "load config file", err).WithContext("path", path)
		}
	}
	if overlay := profileConfigPath(path, profile); overlay != "" {
		if err := k.Load(file.Provider(overlay), yaml.Parser()); err != nil {
			return nil, errors.New(errors.CodeConfig, "load profile config", err).WithContext("path", overlay)
		}
	}

	// MAESTRO_ORCHESTRATOR_DEFAULT_ROLE -> orchestrator.default_role
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.New(errors.CodeConfig, "load environment", err)
	}

	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.New(errors.CodeConfig, fmt.Sprintf("invalid --set %q, want key=value", kv), nil)
		}
		k.Set(strings.TrimSpace(key), value)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.New(errors.CodeConfig, "decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// profileConfigPath returns the overlay path for profile, or "" when there is none.
func profileConfigPath(base, profile string) string {
	if base == "" || profile == "" {
		return ""
	}
	ext := filepath.Ext(base)
	candidate := strings.TrimSuffix(base, ext) + "." + profile + ext
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}

// Validate rejects unknown log formats and telemetry exporters.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New(errors.CodeConfig, fmt.Sprintf("unknown log format %q", c.Log.Format), nil)
	}
	switch c.Telemetry.Exporter {
	case "none", "stdout":
	case "otlp":
		if c.Telemetry.OTLPEndpoint == "" {
			return errors.New(errors.CodeConfig, "telemetry.otlp_endpoint is required for the otlp exporter", nil)
		}
	default:
		return errors.New(errors.CodeConfig, fmt.Sprintf("unknown telemetry exporter %q", c.Telemetry.Exporter), nil)
	}
	if strings.TrimSpace(c.Orchestrator.DefaultRole) == "" {
		return errors.New(errors.CodeConfig, "orchestrator.default_role must not be empty", nil)
	}
	return nil
}
