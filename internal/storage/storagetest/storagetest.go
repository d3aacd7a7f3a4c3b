// Package storagetest provides in-process storage backends for tests.
package storagetest

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/event-monitor/internal/storage"
	"github.com/redis/go-redis/v9"
)

// NewRedisStore starts an in-process Redis and returns a store bound to it.
// The server is closed when the test ends.
func NewRedisStore(t testing.TB) (*storage.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return storage.NewRedisStoreFromClient(client), mr
}
