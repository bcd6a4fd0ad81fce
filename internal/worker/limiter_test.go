package worker

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter_DefaultBurst(t *testing.T) {
	if l := NewLimiter(10, 5); l.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", l.defaultBurst)
	}
	if l := NewLimiter(10, -1); l.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.defaultBurst)
	}
}

func TestLimiter_PerHostBuckets(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://www.reddit.com/search.json"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	// Another host has its own bucket
	if err := limiter.Wait(ctx, "https://www.googleapis.com/youtube/v3/search"); err != nil {
		t.Fatalf("other host wait failed: %v", err)
	}

	// Same host is exhausted; the deadline expires first
	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(short, "https://www.reddit.com/r/x/comments/1/.json"); err == nil {
		t.Error("expected exhausted host to fail within the deadline")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "http://example.com", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.WaitWithDelay(ctx, "http://other.example.com", time.Second); err == nil {
		t.Error("expected cancelled context to abort the delay")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(1000, 10)
	limiter.SetHostRate("slow.example.com", 0.001, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://slow.example.com/a"); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(short, "http://slow.example.com/b"); err == nil {
		t.Error("second request to slow host should not fit the deadline")
	}
	if err := limiter.Wait(short, "http://fast.example.com/"); err != nil {
		t.Errorf("fast host should pass: %v", err)
	}
}

func TestHostOf(t *testing.T) {
	host, err := hostOf("http://example.com/foo")
	if err != nil {
		t.Fatalf("hostOf failed: %v", err)
	}
	if host != "example.com" {
		t.Errorf("expected example.com, got %s", host)
	}

	if _, err := hostOf("::invalid"); err == nil {
		t.Error("expected error for invalid URL")
	}
	if _, err := hostOf("/relative/path"); err == nil {
		t.Error("expected error for URL without host")
	}
}
