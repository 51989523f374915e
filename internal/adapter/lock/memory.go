package lock

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	token     uint64
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory implements Locker and Store within a single process.
type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	seq     uint64
	locks   map[string]entry
	entries map[string]entry
}

// NewMemory creates an empty in-process backend.
func NewMemory() *Memory {
	return &Memory{
		now:     time.Now,
		locks:   make(map[string]entry),
		entries: make(map[string]entry),
	}
}

func (m *Memory) Acquire(_ context.Context, key string, ttl time.Duration) (Lock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if held, ok := m.locks[key]; ok && !held.expired(now) {
		return nil, ErrNotAcquired
	}
	m.seq++
	e := entry{token: m.seq}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	m.locks[key] = e
	return &memoryLock{owner: m, key: key, token: e.token}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

type memoryLock struct {
	owner *Memory
	key   string
	token uint64
}

func (l *memoryLock) Release(context.Context) error {
	l.owner.mu.Lock()
	defer l.owner.mu.Unlock()

	if held, ok := l.owner.locks[l.key]; ok && held.token == l.token {
		delete(l.owner.locks, l.key)
	}
	return nil
}
