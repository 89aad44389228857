package session

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/authgate/internal/auth/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

const janitorInterval = time.Minute

type memoryEntry struct {
	login     entity.PendingLogin
	expiresAt time.Time
}

// Memory is an in-process pending login store. Suitable for a single
// instance; use Redis when running more than one replica.
type Memory struct {
	clk     clock.Clocker
	mu      sync.Mutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

// NewMemory creates an in-memory store and starts a background janitor that
// sweeps expired entries. Call Close to stop the janitor.
func NewMemory(clk clock.Clocker) *Memory {
	m := &Memory{
		clk:     clk,
		entries: make(map[string]memoryEntry),
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
	now := m.clk.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}

// Save stores a pending login under the hashed handle, replacing any
// previous entry for the same key.
func (m *Memory) Save(_ context.Context, handleHash string, in entity.PendingLogin, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[handleHash] = memoryEntry{login: in, expiresAt: m.clk.Now().Add(ttl)}

	return nil
}

// Get peeks at a pending login without removing it.
func (m *Memory) Get(_ context.Context, handleHash string) (*entity.PendingLogin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[handleHash]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	if m.clk.Now().After(e.expiresAt) {
		delete(m.entries, handleHash)
		return nil, goerror.ErrNotFound
	}

	login := e.login

	return &login, nil
}

// Consume removes a pending login and returns it. Exactly one of any number
// of concurrent Consume calls for the same key succeeds.
func (m *Memory) Consume(_ context.Context, handleHash string) (*entity.PendingLogin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[handleHash]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	delete(m.entries, handleHash)

	if m.clk.Now().After(e.expiresAt) {
		return nil, goerror.ErrNotFound
	}

	login := e.login

	return &login, nil
}

// Close stops the background janitor.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.done) })

	return nil
}
