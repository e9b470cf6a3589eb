package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const memorySweepEvery = 1024

type memoryEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Memory is an in-process token bucket per key: Max tokens, refilled evenly
// over Window. Idle keys are dropped once their bucket would be full again.
type Memory struct {
	rule Rule
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*memoryEntry
	calls   int
}

func NewMemory(rule Rule) Limiter {
	if rule.disabled() {
		return Unlimited()
	}
	return &Memory{
		rule:    rule,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.calls%memorySweepEvery == 0 {
		m.sweep(now)
	}

	e, ok := m.entries[key]
	if !ok {
		every := m.rule.window() / time.Duration(m.rule.Max)
		e = &memoryEntry{lim: rate.NewLimiter(rate.Every(every), m.rule.Max)}
		m.entries[key] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1), nil
}

func (m *Memory) sweep(now time.Time) {
	idle := m.rule.window()
	for k, e := range m.entries {
		if now.Sub(e.lastSeen) > idle {
			delete(m.entries, k)
		}
	}
}
