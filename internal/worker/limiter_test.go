package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllowsBurst(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow() {
		t.Error("first request should be allowed")
	}
	if !l.Allow() {
		t.Error("second request should fit in the burst")
	}
	if l.Allow() {
		t.Error("third immediate request should be throttled")
	}
}

func TestLimiterUnlimited(t *testing.T) {
	l := NewLimiter(0, 0)

	for i := 0; i < 100; i++ {
		if !l.Allow() {
			t.Fatalf("request %d throttled by an unlimited limiter", i)
		}
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow() // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected Wait to fail once the context expires")
	}
}
