package store

import (
	"context"
	"testing"
	"time"
)

func TestRedisNilSafety(t *testing.T) {
	t.Parallel()

	var r *Redis
	if r.Healthy(context.Background()) {
		t.Error("nil wrapper must report unhealthy")
	}
	if err := r.Close(); err != nil {
		t.Errorf("nil wrapper close must be a no-op, got %v", err)
	}
}

func TestNewRedisTimeoutFallback(t *testing.T) {
	t.Parallel()

	r := NewRedis("localhost:6379", -time.Second)
	defer r.Close()
	if got := r.Client.Options().ReadTimeout; got != 2*time.Second {
		t.Errorf("non-positive timeout must fall back to 2s, got %v", got)
	}
	if got := r.Client.Options().DialTimeout; got != 2*time.Second {
		t.Errorf("dial timeout must follow the fallback, got %v", got)
	}
}

func TestNewRedisTimeoutApplied(t *testing.T) {
	t.Parallel()

	r := NewRedis("localhost:6379", 500*time.Millisecond)
	defer r.Close()
	if got := r.Client.Options().ReadTimeout; got != 500*time.Millisecond {
		t.Errorf("expected configured timeout, got %v", got)
	}
}
