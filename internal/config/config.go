package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-gmi2html/internal/fileutil"
	"github.com/alnah/go-gmi2html/internal/hints"
	"github.com/alnah/go-gmi2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDirName is the directory under the user config dir searched for configs.
const appDirName = "go-gmi2html"

// Server limits.
const (
	DefaultAddr         = "127.0.0.1:8965"
	DefaultMaxBodyBytes = 1 << 20  // 1MB
	MinMaxBodyBytes     = 1 << 10  // 1KB
	MaxMaxBodyBytes     = 64 << 20 // 64MB
	DefaultCacheTTL     = "10m"
	MaxCacheDB          = 15
)

// DefaultExtensions lists gemtext file extensions discovered in directories.
var DefaultExtensions = []string{".gmi", ".gemini"}

// Config holds all configuration for gemtext conversion.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default input directory (empty = stdin)
	Extensions []string `yaml:"extensions"` // Extensions picked up in directories
}

// OutputConfig defines output layout and destination options.
type OutputConfig struct {
	DefaultDir      string `yaml:"defaultDir"`      // Default output directory (empty = next to source)
	Extension       string `yaml:"extension"`       // Output file extension (default: ".html")
	Separators      bool   `yaml:"separators"`      // Blank line after each classified line
	CloseOpenBlocks bool   `yaml:"closeOpenBlocks"` // Close list/pre left open at end of input
	Legacy          bool   `yaml:"legacy"`          // Overrides both switches above
}

// ServerConfig defines options for the HTTP conversion endpoint.
type ServerConfig struct {
	Addr         string      `yaml:"addr"`
	MaxBodyBytes int64       `yaml:"maxBodyBytes"`
	Cache        CacheConfig `yaml:"cache"`
}

// CacheConfig defines the optional Valkey result cache.
type CacheConfig struct {
	Addr     string `yaml:"addr"` // host:port, empty = no cache
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      string `yaml:"ttl"` // Go duration, e.g. "10m"
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Output: OutputConfig{
			Extension:       ".html",
			Separators:      true,
			CloseOpenBlocks: true,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			Cache:        CacheConfig{TTL: DefaultCacheTTL},
		},
	}
}

// Validate checks field values. Called automatically by LoadConfig, but
// available for callers who construct Config manually.
func (c *Config) Validate() error {
	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("%w: input.extensions: at least one extension required", ErrInvalidValue)
	}
	for i, ext := range c.Input.Extensions {
		if err := validateExtension(ext); err != nil {
			return fmt.Errorf("%w: input.extensions[%d]: %v", ErrInvalidValue, i, err)
		}
	}
	if err := validateExtension(c.Output.Extension); err != nil {
		return fmt.Errorf("%w: output.extension: %v", ErrInvalidValue, err)
	}
	for _, ext := range c.Input.Extensions {
		if strings.EqualFold(ext, c.Output.Extension) {
			return fmt.Errorf("%w: output.extension %q would overwrite inputs", ErrInvalidValue, c.Output.Extension)
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr: cannot be empty", ErrInvalidValue)
	}
	if c.Server.MaxBodyBytes < MinMaxBodyBytes || c.Server.MaxBodyBytes > MaxMaxBodyBytes {
		return fmt.Errorf("%w: server.maxBodyBytes: must be between %d and %d, got %d",
			ErrInvalidValue, MinMaxBodyBytes, MaxMaxBodyBytes, c.Server.MaxBodyBytes)
	}
	if c.Server.Cache.DB < 0 || c.Server.Cache.DB > MaxCacheDB {
		return fmt.Errorf("%w: server.cache.db: must be between 0 and %d, got %d", ErrInvalidValue, MaxCacheDB, c.Server.Cache.DB)
	}
	if _, err := c.Server.Cache.TTLDuration(); err != nil {
		return err
	}

	return nil
}

// TTLDuration parses the cache TTL. Empty means DefaultCacheTTL.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	ttl := c.TTL
	if ttl == "" {
		ttl = DefaultCacheTTL
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return 0, fmt.Errorf("%w: server.cache.ttl: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: server.cache.ttl: must be positive, got %s", ErrInvalidValue, ttl)
	}
	return d, nil
}

// validateExtension requires a leading dot and a safe file name suffix.
func validateExtension(ext string) error {
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return fmt.Errorf("extension %q must start with a dot", ext)
	}
	return fileutil.ValidateExtension(ext[1:])
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, user config dir/go-gmi2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
