package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	gmi2html "github.com/alnah/go-gmi2html"
	"github.com/alnah/go-gmi2html/internal/cache"
	"github.com/alnah/go-gmi2html/internal/config"
	"github.com/alnah/go-gmi2html/internal/hints"
	"github.com/alnah/go-gmi2html/internal/server"
)

// Sentinel errors for the serve command.
var (
	ErrCacheConnect = errors.New("cache unavailable")
	ErrListen       = errors.New("server failed")
)

// runServe exposes the converter over HTTP until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional[0])
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeLayoutFlags(flags.layout, cfg)
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	slog.SetDefault(logger)

	conv := gmi2html.NewConverter(converterOptions(cfg.Output)...)
	opts := server.Options{MaxBodyBytes: cfg.Server.MaxBodyBytes}

	if cfg.Server.Cache.Addr != "" {
		client, err := cache.Connect(cfg.Server.Cache.Addr, cfg.Server.Cache.Password, cfg.Server.Cache.DB)
		if err != nil {
			return fmt.Errorf("%w: %v%s", ErrCacheConnect, err, hints.ForCacheConnect(cfg.Server.Cache.Addr))
		}
		defer func() {
			_ = client.Close()
		}()

		// Validate already parsed the TTL.
		ttl, _ := cfg.Server.Cache.TTLDuration()
		opts.Cache = cache.NewResultCache(client, ttl)
		logger.Info("result cache enabled", "addr", cfg.Server.Cache.Addr, "ttl", ttl.String())
	}

	logger.Info("configuration loaded",
		"version", Version,
		"addr", cfg.Server.Addr,
		"layout", conv.Fingerprint(),
	)

	if err := server.ListenAndServe(ctx, cfg.Server.Addr, server.New(conv, opts)); err != nil {
		return fmt.Errorf("%w: %v%s", ErrListen, err, hints.ForListen())
	}
	return nil
}

// mergeServeFlags applies serve flags to config (CLI wins).
func mergeServeFlags(flags *serveFlags, cfg *config.Config) {
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.maxBody != 0 {
		cfg.Server.MaxBodyBytes = flags.maxBody
	}
	if flags.cacheAddr != "" {
		cfg.Server.Cache.Addr = flags.cacheAddr
	}
}

// newLogger returns a text logger. --verbose enables debug records and
// --quiet keeps only errors.
func newLogger(w io.Writer, flags commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case flags.quiet:
		level = slog.LevelError
	case flags.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
