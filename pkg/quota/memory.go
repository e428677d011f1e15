package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryTracker keeps the counter in process memory.
type MemoryTracker struct {
	mu       sync.Mutex
	capacity int
	used     int
	resetAt  time.Time
	now      Clock
}

func NewMemoryTracker(capacity int, now Clock) *MemoryTracker {
	if now == nil {
		now = time.Now
	}
	return &MemoryTracker{
		capacity: capacity,
		resetAt:  NextReset(now()),
		now:      now,
	}
}

func (t *MemoryTracker) TryConsume(_ context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfDue()
	if t.used >= t.capacity {
		return false
	}
	t.used++
	return true
}

func (t *MemoryTracker) State(_ context.Context) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetIfDue()
	return State{Used: t.used, Capacity: t.capacity, ResetAt: t.resetAt}, nil
}

// must hold t.mu
func (t *MemoryTracker) resetIfDue() {
	now := t.now()
	if now.Before(t.resetAt) {
		return
	}
	t.used = 0
	t.resetAt = NextReset(now)
}
