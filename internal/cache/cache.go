// Package cache stores converted HTML fragments in Valkey (Redis-compatible)
// so repeated conversions of the same document skip the transducer.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces cached fragments.
	keyPrefix = "gmi2html:"

	// DefaultTTL is how long a fragment stays cached.
	DefaultTTL = 10 * time.Minute

	pingTimeout = 5 * time.Second
)

// Connect creates a Valkey client and verifies the connection with a ping.
func Connect(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr, "db", db)
	return client, nil
}

// Key derives the cache key for a document converted with a given layout
// fingerprint.
func Key(fingerprint string, gemtext []byte) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(gemtext)
	return hex.EncodeToString(h.Sum(nil))
}

// ResultCache caches HTML fragments in Valkey. Errors are logged and
// treated as misses so the cache never fails a conversion.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a cache backed by client. A zero ttl means DefaultTTL.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached fragment for key, or false on a miss.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("result cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("result cache hit", "key", key)
	return val, true
}

// Set stores a fragment under key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, html []byte) {
	if err := c.client.Set(ctx, keyPrefix+key, html, c.ttl).Err(); err != nil {
		slog.Warn("result cache set error", "key", key, "error", err)
	}
}
