package otp

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	code      string
	expiresAt time.Time
	attempts  int
	evict     *time.Timer
}

// MemoryStore is a mutex-guarded in-process Store. Entries are evicted both
// by a one-shot timer and by the expiry check inside Verify; the timer keeps
// abandoned codes from accumulating between requests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory store with the standard TTL.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     TTL,
		now:     time.Now,
	}
}

// Save stores a code for the phone, replacing any pending one.
func (s *MemoryStore) Save(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[phone]; ok && prev.evict != nil {
		prev.evict.Stop()
	}

	entry := &memoryEntry{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	entry.evict = time.AfterFunc(s.ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if current, ok := s.entries[phone]; ok && current == entry {
			delete(s.entries, phone)
		}
	})
	s.entries[phone] = entry

	return nil
}

// Verify checks the submitted code against the pending entry.
func (s *MemoryStore) Verify(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[phone]
	if !ok {
		return ErrNotFound
	}

	if s.now().After(entry.expiresAt) {
		s.remove(phone, entry)
		return ErrExpired
	}

	if entry.attempts >= MaxAttempts {
		s.remove(phone, entry)
		return ErrExhausted
	}

	if entry.code != code {
		entry.attempts++
		return ErrInvalid
	}

	s.remove(phone, entry)
	return nil
}

func (s *MemoryStore) remove(phone string, entry *memoryEntry) {
	if entry.evict != nil {
		entry.evict.Stop()
	}
	delete(s.entries, phone)
}
