// Package code stores pending one-time codes keyed by (participant, election).
package code

import (
	"context"
	"sync"
	"time"

	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
	"votecast/pkg/platform/sentinel"
)

// InMemoryStore keeps one pending code per key. Expired entries stay
// readable until DeleteExpired or a compare-and-delete removes them, so the
// verifier can tell an expired code from a missing one.
type InMemoryStore struct {
	mu    sync.RWMutex
	codes map[models.CodeKey]models.PendingCode
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{codes: make(map[models.CodeKey]models.PendingCode)}
}

// Put replaces whatever was stored for the key.
func (s *InMemoryStore) Put(_ context.Context, code *models.PendingCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *code
	cp.CodeHash = append([]byte(nil), code.CodeHash...)
	s.codes[code.Key()] = cp
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, key models.CodeKey) (*models.PendingCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.codes[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &code, nil
}

func (s *InMemoryStore) Delete(_ context.Context, key models.CodeKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, key)
	return nil
}

// CompareAndDelete removes the entry only if it still belongs to issueID.
func (s *InMemoryStore) CompareAndDelete(_ context.Context, key models.CodeKey, issueID id.IssueID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[key]
	if !ok || code.IssueID != issueID {
		return false, nil
	}
	delete(s.codes, key)
	return true, nil
}

// DeleteExpired drops entries whose expiry is strictly before now.
func (s *InMemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, code := range s.codes {
		if code.IsExpiredAt(now) {
			delete(s.codes, key)
			removed++
		}
	}
	return removed, nil
}

// Len is used by tests and the sweeper log line.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.codes)
}
