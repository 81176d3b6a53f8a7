package cacheimpl

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, logger.NewNop()), mr
}

func TestRedis_GetMiss(t *testing.T) {
	r, _ := newTestRedis(t)

	val, ok, err := r.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || val != "" {
		t.Errorf("Get(missing) = (%q, %v), want miss", val, ok)
	}
}

func TestRedis_SetIsPermanent(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	if err := r.Set(ctx, "fb_page_id:https://www.facebook.com/x", "42"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("fb_page_id:https://www.facebook.com/x"); ttl != 0 {
		t.Errorf("ttl = %s, want none", ttl)
	}

	mr.FastForward(24 * time.Hour)

	val, ok, err := r.Get(ctx, "fb_page_id:https://www.facebook.com/x")
	if err != nil || !ok || val != "42" {
		t.Errorf("Get after a day = (%q, %v, %v), want (42, true, nil)", val, ok, err)
	}
}

func TestRedis_SetWithTTLExpires(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	if err := r.SetWithTTL(ctx, "twitter:bob", `{"url":"https://x.com/bob"}`, 300*time.Second); err != nil {
		t.Fatalf("setex: %v", err)
	}
	if ttl := mr.TTL("twitter:bob"); ttl != 300*time.Second {
		t.Errorf("ttl = %s, want 5m0s", ttl)
	}

	if _, ok, _ := r.Get(ctx, "twitter:bob"); !ok {
		t.Fatal("expected hit before expiry")
	}

	mr.FastForward(301 * time.Second)

	if _, ok, _ := r.Get(ctx, "twitter:bob"); ok {
		t.Error("expected miss after expiry")
	}
}

func TestRedis_SetWithTTLRejectsNonPositive(t *testing.T) {
	r, _ := newTestRedis(t)
	if err := r.SetWithTTL(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestRedis_GetUnreachable(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()

	if _, _, err := r.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
