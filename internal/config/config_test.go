package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults are valid
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if !cfg.Output.Separators || !cfg.Output.CloseOpenBlocks {
		t.Error("separators and closeOpenBlocks should default to true")
	}
	if cfg.Output.Extension != ".html" {
		t.Errorf("Output.Extension = %q, want %q", cfg.Output.Extension, ".html")
	}

	// Mutating one default must not leak into the next.
	cfg.Input.Extensions[0] = ".txt"
	if DefaultConfig().Input.Extensions[0] != ".gmi" {
		t.Error("DefaultConfig shares its extensions slice")
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field checks
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"no input extensions", func(c *Config) { c.Input.Extensions = nil }, "input.extensions"},
		{"extension without dot", func(c *Config) { c.Input.Extensions = []string{"gmi"} }, "input.extensions[0]"},
		{"extension traversal", func(c *Config) { c.Output.Extension = "./x" }, "output.extension"},
		{"output overwrites input", func(c *Config) { c.Output.Extension = ".GMI" }, "overwrite"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"body too small", func(c *Config) { c.Server.MaxBodyBytes = 10 }, "server.maxBodyBytes"},
		{"body too large", func(c *Config) { c.Server.MaxBodyBytes = MaxMaxBodyBytes + 1 }, "server.maxBodyBytes"},
		{"negative db", func(c *Config) { c.Server.Cache.DB = -1 }, "server.cache.db"},
		{"bad ttl", func(c *Config) { c.Server.Cache.TTL = "soon" }, "server.cache.ttl"},
		{"zero ttl", func(c *Config) { c.Server.Cache.TTL = "0s" }, "server.cache.ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("got %v, want %v", err, ErrInvalidValue)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q should mention %q", err, tt.errMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCacheConfig_TTLDuration - Parsing and default
// ---------------------------------------------------------------------------

func TestCacheConfig_TTLDuration(t *testing.T) {
	t.Parallel()

	d, err := CacheConfig{}.TTLDuration()
	if err != nil || d != 10*time.Minute {
		t.Errorf("empty TTL = %v, %v, want 10m, nil", d, err)
	}
	d, err = CacheConfig{TTL: "90s"}.TTLDuration()
	if err != nil || d != 90*time.Second {
		t.Errorf("TTL 90s = %v, %v, want 90s, nil", d, err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Loading by path
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "site.yaml", `
input:
  defaultDir: capsule
output:
  separators: false
server:
  cache:
    addr: "localhost:6379"
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Input.DefaultDir != "capsule" {
			t.Errorf("Input.DefaultDir = %q, want %q", cfg.Input.DefaultDir, "capsule")
		}
		if cfg.Output.Separators {
			t.Error("Output.Separators = true, want false from file")
		}
		if !cfg.Output.CloseOpenBlocks {
			t.Error("Output.CloseOpenBlocks should keep its default")
		}
		if cfg.Server.Addr != DefaultAddr {
			t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, DefaultAddr)
		}
		if cfg.Server.Cache.Addr != "localhost:6379" {
			t.Errorf("Server.Cache.Addr = %q, want %q", cfg.Server.Cache.Addr, "localhost:6379")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "output:\n  separator: false\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("got %v, want %v", err, ErrConfigParse)
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "server:\n  maxBodyBytes: 5\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("got %v, want %v", err, ErrInvalidValue)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("got %v, want %v", err, ErrConfigNotFound)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("got %v, want %v", err, ErrEmptyConfigName)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - Lookup in the working directory
// ---------------------------------------------------------------------------

// Not parallel: changes the working directory.
func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "capsule.yml", "output:\n  legacy: true\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("capsule")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Output.Legacy {
		t.Error("Output.Legacy = false, want true")
	}

	_, err = LoadConfig("missing-config-name")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("got %v, want %v", err, ErrConfigNotFound)
	}
}
