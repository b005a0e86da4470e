package mem

import (
	"sync"
	"time"
)

// TokenDenylist holds JWTs revoked by logout until they would have expired
// anyway.
type TokenDenylist interface {
	Revoke(token string, ttl time.Duration)
	IsRevoked(token string) bool
}

type DenyList struct {
	mu   sync.RWMutex
	data map[string]time.Time
}

func NewDenyList() *DenyList {
	return &DenyList{
		data: make(map[string]time.Time),
	}
}

func (d *DenyList) Revoke(token string, ttl time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data[token] = time.Now().Add(ttl)
}

func (d *DenyList) IsRevoked(token string) bool {
	d.mu.RLock()
	expiresAt, ok := d.data[token]
	d.mu.RUnlock()

	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		d.mu.Lock()
		delete(d.data, token) // cleanup expired
		d.mu.Unlock()
		return false
	}
	return true
}
