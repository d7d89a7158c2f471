// Package server exposes the converter over HTTP for publishing pipelines
// that prefer a network hop to a subprocess.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	gmi2html "github.com/alnah/go-gmi2html"
	"github.com/alnah/go-gmi2html/internal/cache"
)

// Server timeouts.
const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 15 * time.Second
)

// defaultMaxBodyBytes applies when Options.MaxBodyBytes is not positive.
const defaultMaxBodyBytes = 1 << 20

// Cache headers.
const (
	cacheHeader = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

// Converter is the conversion contract the handlers depend on.
type Converter interface {
	Convert(ctx context.Context, input gmi2html.Input) (*gmi2html.Result, error)
	Fingerprint() string
}

// Compile-time interface implementation check.
var _ Converter = (*gmi2html.Converter)(nil)

// Cache stores converted fragments. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

var _ Cache = (*cache.ResultCache)(nil)

// Options configures the HTTP handlers.
type Options struct {
	MaxBodyBytes int64
	Cache        Cache
}

// handlers holds the dependencies shared by route handlers.
type handlers struct {
	conv Converter
	opts Options
}

// New returns the router with middleware and routes wired up.
func New(conv Converter, opts Options) chi.Router {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	h := &handlers{conv: conv, opts: opts}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recoverer)
	r.Use(Logger)

	r.Get("/health", h.health)
	r.Post("/convert", h.convert)

	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// convert reads a gemtext body and responds with the HTML fragment.
func (h *handlers) convert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var key string
	if h.opts.Cache != nil {
		key = cache.Key(h.conv.Fingerprint(), body)
		if html, ok := h.opts.Cache.Get(r.Context(), key); ok {
			writeFragment(w, html, cacheHit)
			return
		}
	}

	result, err := h.conv.Convert(r.Context(), gmi2html.Input{Gemtext: string(body)})
	if err != nil {
		slog.Error("conversion failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		http.Error(w, "conversion failed", http.StatusInternalServerError)
		return
	}

	html := []byte(result.HTML)
	if h.opts.Cache != nil {
		h.opts.Cache.Set(r.Context(), key, html)
	}
	writeFragment(w, html, cacheMiss)
}

func writeFragment(w http.ResponseWriter, html []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(cacheHeader, cacheStatus)
	_, _ = w.Write(html)
}

// ListenAndServe serves h on addr until ctx is canceled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
