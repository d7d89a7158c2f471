package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-gmi2html/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath    string // GMI2HTML_CONFIG: config file path
	InputDir      string // GMI2HTML_INPUT_DIR: default input directory
	OutputDir     string // GMI2HTML_OUTPUT_DIR: default output directory
	Workers       int    // GMI2HTML_WORKERS: parallel workers
	Addr          string // GMI2HTML_ADDR: serve listen address
	CacheAddr     string // GMI2HTML_CACHE_ADDR: Valkey address
	CachePassword string // GMI2HTML_CACHE_PASSWORD: Valkey password
}

// knownEnvVars lists valid GMI2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"GMI2HTML_CONFIG":         true,
	"GMI2HTML_INPUT_DIR":      true,
	"GMI2HTML_OUTPUT_DIR":     true,
	"GMI2HTML_WORKERS":        true,
	"GMI2HTML_ADDR":           true,
	"GMI2HTML_CACHE_ADDR":     true,
	"GMI2HTML_CACHE_PASSWORD": true,
}

// loadEnvConfig reads recognized GMI2HTML_* values. Workers that do not
// parse as a positive integer are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:    getenv("GMI2HTML_CONFIG"),
		InputDir:      getenv("GMI2HTML_INPUT_DIR"),
		OutputDir:     getenv("GMI2HTML_OUTPUT_DIR"),
		Addr:          getenv("GMI2HTML_ADDR"),
		CacheAddr:     getenv("GMI2HTML_CACHE_ADDR"),
		CachePassword: getenv("GMI2HTML_CACHE_PASSWORD"),
	}

	if workers := getenv("GMI2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized GMI2HTML_*
// variable, e.g. GMI2HTML_WORKER instead of GMI2HTML_WORKERS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "GMI2HTML_") {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment values.
// CLI flags are applied afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.CacheAddr != "" {
		cfg.Server.Cache.Addr = env.CacheAddr
	}
	if env.CachePassword != "" {
		cfg.Server.Cache.Password = env.CachePassword
	}
}

// loadConfig builds the effective configuration: defaults, then the config
// file named by flag or GMI2HTML_CONFIG, then environment overrides.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
