// Package config contains the loader and strongly typed model for deployctl.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/opsdash/deployctl/internal/env"
	"github.com/opsdash/deployctl/internal/terraform"
)

// DefaultPath is the default path to the deployctl configuration file.
const DefaultPath = "deployctl.yaml"

// tfVarPrefix is how terraform-compatible tools pick up input variables
// from the environment.
const tfVarPrefix = "TF_VAR_"

// Config describes everything deployctl needs to drive the tool: where the
// declarative configuration lives, which binary to run, and how long each
// operation class may take. Values come from deployctl.yaml, overridden by
// DEPLOYCTL_* environment variables, overridden by flags.
type Config struct {
	// WorkDir is the directory holding the tool's declarative configuration.
	WorkDir string `yaml:"workdir" env:"DEPLOYCTL_WORKDIR" validate:"required"`
	// Binary is the tool executable name or path.
	Binary string `yaml:"binary" env:"DEPLOYCTL_BINARY" validate:"required"`
	// PlanFile is the plan artifact filename inside WorkDir.
	PlanFile string `yaml:"planFile" env:"DEPLOYCTL_PLAN_FILE" validate:"required"`
	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel" env:"DEPLOYCTL_LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	// EnvFiles lists .env files loaded into the subprocess environment,
	// resolved relative to the config file location.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Vars holds input variables exported to the subprocess as TF_VAR_*.
	Vars map[string]string `yaml:"vars,omitempty"`
	// Timeouts holds string-form durations per operation class.
	Timeouts TimeoutConfig `yaml:"timeouts,omitempty"`

	// baseDir is where the config file was loaded from; env file paths are
	// resolved against it.
	baseDir string
}

// TimeoutConfig holds per-operation bounds as duration strings (e.g. "10m").
// Empty values fall back to built-in defaults.
type TimeoutConfig struct {
	// Version bounds the availability probe.
	Version string `yaml:"version,omitempty" env:"DEPLOYCTL_TIMEOUT_VERSION" validate:"omitempty,duration"`
	// Plan bounds the plan operation.
	Plan string `yaml:"plan,omitempty" env:"DEPLOYCTL_TIMEOUT_PLAN" validate:"omitempty,duration"`
	// Apply bounds the apply operation.
	Apply string `yaml:"apply,omitempty" env:"DEPLOYCTL_TIMEOUT_APPLY" validate:"omitempty,duration"`
	// Destroy bounds the destroy operation.
	Destroy string `yaml:"destroy,omitempty" env:"DEPLOYCTL_TIMEOUT_DESTROY" validate:"omitempty,duration"`
	// Show bounds the state and outputs dumps.
	Show string `yaml:"show,omitempty" env:"DEPLOYCTL_TIMEOUT_SHOW" validate:"omitempty,duration"`
}

// Default returns a Config with built-in defaults applied.
func Default() *Config {
	return &Config{
		WorkDir:  "terraform",
		Binary:   "terraform",
		PlanFile: "tfplan",
		LogLevel: "info",
		baseDir:  ".",
	}
}

// Load reads the configuration file at path (skipped when path is empty),
// applies DEPLOYCTL_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("decode config %q: %w", path, err)
		}
		cfg.baseDir = filepath.Dir(path)
	}

	if err := envparse.Parse(cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Durations converts the string-form timeouts into terraform.Timeouts. Empty
// fields stay zero so the orchestrator fills in its defaults.
func (c *Config) Durations() (terraform.Timeouts, error) {
	var t terraform.Timeouts
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"version", c.Timeouts.Version, &t.Version},
		{"plan", c.Timeouts.Plan, &t.Plan},
		{"apply", c.Timeouts.Apply, &t.Apply},
		{"destroy", c.Timeouts.Destroy, &t.Destroy},
		{"show", c.Timeouts.Show, &t.Show},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		d, err := time.ParseDuration(f.value)
		if err != nil {
			return t, fmt.Errorf("timeouts.%s: %w", f.name, err)
		}
		*f.dst = d
	}
	return t, nil
}

// SubprocessEnv builds the extra environment passed to the tool: env files
// in listed order, then configured vars as TF_VAR_*. Later sources win.
func (c *Config) SubprocessEnv() (env.Vars, error) {
	fileVars, err := env.LoadEnvFiles(c.baseDir, c.EnvFiles)
	if err != nil {
		return nil, err
	}
	return env.Merge(fileVars, env.WithPrefix(c.Vars, tfVarPrefix)), nil
}
