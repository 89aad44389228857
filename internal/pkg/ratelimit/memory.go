package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/authgate/internal/pkg/clock"
)

const janitorInterval = time.Minute

type window struct {
	count   uint
	resetAt time.Time
}

// Memory is an in-process fixed-window Limiter.
//
// Counters live in a map guarded by a mutex. Expired windows are replaced
// lazily on the next Allow call for the same key; a background janitor sweeps
// windows whose clients never came back. Call Close to stop the janitor.
type Memory struct {
	limit  uint
	period time.Duration
	clock  clock.Clocker

	mu      sync.Mutex
	windows map[string]window
	done    chan struct{}
	once    sync.Once
}

// NewMemory constructs a Memory limiter allowing limit requests per period.
func NewMemory(limit uint, period time.Duration, clk clock.Clocker) *Memory {
	if limit == 0 {
		limit = 1
	}
	if period <= 0 {
		period = time.Minute
	}

	m := &Memory{
		limit:   limit,
		period:  period,
		clock:   clk,
		windows: make(map[string]window),
		done:    make(chan struct{}),
	}

	go m.janitor()

	return m
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, w := range m.windows {
		if now.After(w.resetAt) {
			delete(m.windows, key)
		}
	}
}

// Allow increments the counter for key within the current window.
func (m *Memory) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		m.windows[key] = window{count: 1, resetAt: now.Add(m.period)}
		return true, 0, nil
	}

	if w.count >= m.limit {
		return false, w.resetAt.Sub(now), nil
	}

	w.count++
	m.windows[key] = w

	return true, 0, nil
}

// Close stops the background janitor.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.done) })

	return nil
}
