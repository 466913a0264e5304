package query

import (
	"context"
	"sync"
	"time"
)

type slot struct {
	client   *Client
	lastUsed time.Time
}

// Registry hands out one Client per tab and forgets idle tabs.
type Registry struct {
	mu        sync.Mutex
	slots     map[string]*slot
	staleTime time.Duration
	idleTTL   time.Duration
	now       func() time.Time
}

func NewRegistry(staleTime, idleTTL time.Duration) *Registry {
	return &Registry{
		slots:     make(map[string]*slot),
		staleTime: staleTime,
		idleTTL:   idleTTL,
		now:       time.Now,
	}
}

func (r *Registry) Client(tabID string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[tabID]
	if !ok {
		s = &slot{client: NewClient(r.staleTime)}
		r.slots[tabID] = s
	}
	s.lastUsed = r.now()
	return s.client
}

func (r *Registry) Drop(tabID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, tabID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Sweep drops clients idle for longer than the idle TTL, skipping tabs with
// a mutation in flight.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.idleTTL)
	n := 0
	for id, s := range r.slots {
		if s.lastUsed.After(cutoff) || s.client.busy() {
			continue
		}
		delete(r.slots, id)
		n++
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
