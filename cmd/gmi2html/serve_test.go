package main

// Notes:
// - runServe sets the default slog logger, so these tests do not run in
//   parallel with each other.
// - Serving is exercised with an already canceled context; request handling
//   is covered in internal/server.

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/alnah/go-gmi2html/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunServe_Errors - Argument, config, and cache failures
// ---------------------------------------------------------------------------

func TestRunServe_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"positional argument", []string{"index.gmi"}, ErrUsage},
		{"unknown flag", []string{"--bogus"}, ErrUsage},
		{"body too small", []string{"--max-body", "10"}, config.ErrInvalidValue},
		{"cache unreachable", []string{"--addr", "127.0.0.1:0", "--cache-addr", "127.0.0.1:1"}, ErrCacheConnect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _, _ := testEnv("", nil)
			err := runServe(context.Background(), tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runServe(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunServe_Shutdown - Canceled context stops the server cleanly
// ---------------------------------------------------------------------------

func TestRunServe_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, _, stderr := testEnv("", nil)
	if err := runServe(ctx, []string{"--addr", "127.0.0.1:0", "--legacy"}, env); err != nil {
		t.Fatalf("runServe() error = %v", err)
	}
	if !strings.Contains(stderr.String(), "separators=false;closeOpenBlocks=false") {
		t.Errorf("startup log should record the layout: %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestMergeServeFlags - Serve flags override config
// ---------------------------------------------------------------------------

func TestMergeServeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	mergeServeFlags(&serveFlags{}, cfg)
	if cfg.Server.Addr != config.DefaultAddr || cfg.Server.MaxBodyBytes != config.DefaultMaxBodyBytes {
		t.Errorf("unset flags changed config: %+v", cfg.Server)
	}

	mergeServeFlags(&serveFlags{addr: ":8080", maxBody: 4096, cacheAddr: "valkey:6379"}, cfg)
	if cfg.Server.Addr != ":8080" || cfg.Server.MaxBodyBytes != 4096 || cfg.Server.Cache.Addr != "valkey:6379" {
		t.Errorf("flags not applied: %+v", cfg.Server)
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Verbosity to slog level
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags commonFlags
		level slog.Level
	}{
		{"default", commonFlags{}, slog.LevelInfo},
		{"verbose", commonFlags{verbose: true}, slog.LevelDebug},
		{"quiet", commonFlags{quiet: true}, slog.LevelError},
		{"quiet wins", commonFlags{quiet: true, verbose: true}, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			logger := newLogger(&buf, tt.flags)
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.level) {
				t.Errorf("level %v should be enabled", tt.level)
			}
			if tt.level > slog.LevelDebug && logger.Enabled(ctx, tt.level-1) {
				t.Errorf("level below %v should be disabled", tt.level)
			}
		})
	}
}
