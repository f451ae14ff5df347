package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingSweeper struct {
	mu    sync.Mutex
	calls int
	ttl   time.Duration
}

func (c *countingSweeper) CleanupStaleSessions(ttl time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.ttl = ttl
	return 0
}

func (c *countingSweeper) snapshot() (int, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls, c.ttl
}

func TestWorkerSweepsUntilCancelled(t *testing.T) {
	s := &countingSweeper{}
	w := NewWorker(s, 30*time.Minute, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := w.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		calls, _ := s.snapshot()
		if calls >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("worker only swept %d times", calls)
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop after cancel")
	}

	_, ttl := s.snapshot()
	if ttl != 30*time.Minute {
		t.Fatalf("expected configured ttl, got %v", ttl)
	}
}

func TestWorkerDefaultsNonPositivePeriods(t *testing.T) {
	s := &countingSweeper{}
	w := NewWorker(s, 0, -time.Minute, zerolog.Nop())
	if w.interval != DefaultInterval || w.ttl != DefaultTTL {
		t.Fatalf("expected defaults, got interval %v ttl %v", w.interval, w.ttl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := w.Start(ctx)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop after cancel")
	}
	if _, ttl := s.snapshot(); ttl != DefaultTTL {
		t.Fatalf("first sweep should use the default ttl, got %v", ttl)
	}
}
