package mem

import (
	"sync"
	"time"
)

// PendingTierStore remembers which tier a checkout was started for, keyed by
// the provider order code. The payment success page reads it back when the
// return URL lost its tier parameter, and the post-payment signup reads it
// again on retry, so entries are peeked rather than consumed.
type PendingTierStore interface {
	Set(orderCode int64, tier string, ttl time.Duration)
	Peek(orderCode int64) (string, bool)
	Drop(orderCode int64)
}

type tierEntry struct {
	tier      string
	expiresAt time.Time
}

type PendingTiers struct {
	mu   sync.RWMutex
	data map[int64]tierEntry
}

func NewPendingTiers() *PendingTiers {
	return &PendingTiers{
		data: make(map[int64]tierEntry),
	}
}

func (s *PendingTiers) Set(orderCode int64, tier string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[orderCode] = tierEntry{
		tier:      tier,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *PendingTiers) Peek(orderCode int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[orderCode]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.tier, true
}

func (s *PendingTiers) Drop(orderCode int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, orderCode)
}
