package mem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubmissionLock serialises writes that share a key for a short time window.
type SubmissionLock interface {
	// Acquire returns a token and true when the key was free.
	// A held key yields ("", false, nil).
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error)

	// Release frees the key only if it is still held with token.
	Release(ctx context.Context, key, token string) error
}

type entry struct {
	token     string
	expiresAt time.Time
}

// MemoryLock is a process-local SubmissionLock.
type MemoryLock struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryLock() *MemoryLock {
	return &MemoryLock{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryLock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.data[key]; ok && now.Before(e.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	s.data[key] = entry{token: token, expiresAt: now.Add(ttl)}
	s.sweepLocked(now)
	return token, true, nil
}

func (s *MemoryLock) Release(_ context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.data[key]; ok && e.token == token {
		delete(s.data, key)
	}
	return nil
}

// Len reports how many keys are tracked, expired ones included.
func (s *MemoryLock) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *MemoryLock) sweepLocked(now time.Time) {
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
