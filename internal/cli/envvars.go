package cli

import (
	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from DEPLOYCTL_* env vars.
type baseEnv struct {
	// ConfigPath is the deployctl.yaml path from DEPLOYCTL_CONFIG.
	ConfigPath string `env:"DEPLOYCTL_CONFIG"`
	// WorkDir is the working directory from DEPLOYCTL_WORKDIR.
	WorkDir string `env:"DEPLOYCTL_WORKDIR"`
	// Binary is the tool executable from DEPLOYCTL_BINARY.
	Binary string `env:"DEPLOYCTL_BINARY"`
	// LogLevel is the logging level from DEPLOYCTL_LOG_LEVEL.
	LogLevel string `env:"DEPLOYCTL_LOG_LEVEL"`
}

// varsEnv describes inline vars and env files passed via env.
type varsEnv struct {
	// Vars is a k=v,k2=v2 list from DEPLOYCTL_VARS.
	Vars string `env:"DEPLOYCTL_VARS"`
	// EnvFile is a .env path from DEPLOYCTL_ENV_FILE.
	EnvFile string `env:"DEPLOYCTL_ENV_FILE"`
}

// parseEnv fills target from DEPLOYCTL_* env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}
