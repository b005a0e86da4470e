package mem

import (
	"sync"
	"time"
)

// CreditStore tracks free-chat credits per session key. Keys look like
// "guest:<session-id>" or "acct:<account-id>". Counts only ever grow within
// a session, except through Reset.
type CreditStore interface {
	// Spend consumes one credit for key. When the key is already at the
	// ceiling it is a no-op and reports atLimit=true.
	Spend(key string) (remaining int, atLimit bool)

	// Remaining returns ceiling minus consumed, floored at 0.
	Remaining(key string) int

	// Reset clears the count for key (fresh anonymous session, tests).
	Reset(key string)

	// Ceiling returns the configured ceiling.
	Ceiling() int
}

type creditEntry struct {
	used      int
	expiresAt time.Time
}

// UsageCredits is an in-memory CreditStore. Entries expire after ttl so
// abandoned guest sessions do not accumulate forever.
type UsageCredits struct {
	mu      sync.Mutex
	ceiling int
	ttl     time.Duration
	data    map[string]creditEntry
}

func NewUsageCredits(ceiling int, ttl time.Duration) *UsageCredits {
	if ceiling < 0 {
		ceiling = 0
	}
	return &UsageCredits{
		ceiling: ceiling,
		ttl:     ttl,
		data:    make(map[string]creditEntry),
	}
}

func (s *UsageCredits) Spend(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(key)
	if e.used >= s.ceiling {
		return 0, true
	}
	e.used++
	e.expiresAt = time.Now().Add(s.ttl)
	s.data[key] = e
	return s.ceiling - e.used, false
}

func (s *UsageCredits) Remaining(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(key)
	if e.used >= s.ceiling {
		return 0
	}
	return s.ceiling - e.used
}

func (s *UsageCredits) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *UsageCredits) Ceiling() int {
	return s.ceiling
}

// live returns the entry for key, dropping it first if expired. Callers hold
// the lock.
func (s *UsageCredits) live(key string) creditEntry {
	e, ok := s.data[key]
	if !ok {
		return creditEntry{}
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, key)
		return creditEntry{}
	}
	return e
}
