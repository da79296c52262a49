package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedis(t)

	// Miss on empty cache
	data, hit, err := c.Get(ctx, "matrix:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get on empty cache = %q, %v, want miss", data, hit)
	}

	if err := c.Set(ctx, "matrix:abc", []byte(`{"rows":0}`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err = c.Get(ctx, "matrix:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set = %v, %v", hit, err)
	}
	if string(data) != `{"rows":0}` {
		t.Errorf("Get data = %q", data)
	}

	if err := c.Delete(ctx, "matrix:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "matrix:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "matrix:missing"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("k"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should expire after its TTL")
	}
}

func TestRedisCacheClosed(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedis(t)
	c.Close()

	_, _, err := c.Get(ctx, "k")
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Get on closed cache error = %v, want ErrClosed", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache("not-a-url://"); err == nil {
		t.Error("NewRedisCache should reject a malformed url")
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	k := NewScopedKeyer(NewDefaultKeyer(), "team:")
	matrix := k.MatrixKey("x", "", MatrixKeyOpts{Height: 2})
	bigdag := k.BigDAGKey("x", BigDAGKeyOpts{Format: "svg"})
	for _, key := range []string{matrix, bigdag} {
		if err := c.Set(ctx, key, []byte("v"), 0); err != nil {
			t.Fatal(err)
		}
	}
	// Keys of other applications sharing the server.
	mr.Set("session:matrix", "keep")
	mr.Set("matrix", "keep")

	n, err := c.Clear(ctx, KeyTypeMatrix)
	if err != nil || n != 1 {
		t.Fatalf("Clear(matrix) = %d, %v, want 1", n, err)
	}
	if mr.Exists(matrix) || !mr.Exists(bigdag) {
		t.Error("Clear(matrix) should only remove matrix entries")
	}

	if n, err := c.Clear(ctx, ""); err != nil || n != 1 {
		t.Errorf("Clear(all) = %d, %v, want 1", n, err)
	}
	if !mr.Exists("session:matrix") || !mr.Exists("matrix") {
		t.Error("Clear should leave foreign keys alone")
	}
	if _, err := c.Clear(ctx, "session"); err == nil {
		t.Error("Clear with unknown key type should fail")
	}
}
