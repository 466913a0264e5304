package session

import (
	"context"
	"sync"
	"time"
)

type memoryToken struct {
	token     string
	expiresAt time.Time
}

// MemoryStore keeps tokens in process, each expiring ttl after its write.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]memoryToken
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]memoryToken),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *MemoryStore) Read(_ context.Context, tabID string) (Session, error) {
	if tabID == "" {
		return NoSession, ErrEmptyTab
	}
	s.mu.RLock()
	t, ok := s.tokens[tabID]
	s.mu.RUnlock()
	if !ok {
		return NoSession, nil
	}
	if !s.now().Before(t.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.tokens[tabID]; ok && cur == t {
			delete(s.tokens, tabID)
		}
		s.mu.Unlock()
		return NoSession, nil
	}
	return New(t.token), nil
}

func (s *MemoryStore) Write(_ context.Context, tabID, token string) error {
	if err := checkWrite(tabID, token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tabID] = memoryToken{token: token, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, tabID string) error {
	if tabID == "" {
		return ErrEmptyTab
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tabID)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// Sweep drops expired tokens and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, t := range s.tokens {
		if now.Before(t.expiresAt) {
			continue
		}
		delete(s.tokens, id)
		n++
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
