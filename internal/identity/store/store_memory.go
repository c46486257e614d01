// Package store persists participants for eligibility lookups.
package store

import (
	"context"
	"fmt"
	"sync"

	"votecast/internal/identity/models"
	id "votecast/pkg/domain"
	"votecast/pkg/platform/sentinel"
)

// InMemoryStore keys participants by ID with a secondary email index.
type InMemoryStore struct {
	mu           sync.RWMutex
	participants map[id.ParticipantID]*models.Participant
	byEmail      map[string]id.ParticipantID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		participants: make(map[id.ParticipantID]*models.Participant),
		byEmail:      make(map[string]id.ParticipantID),
	}
}

// Save inserts or replaces a participant. An email already held by a
// different participant is a conflict.
func (s *InMemoryStore) Save(_ context.Context, p *models.Participant) error {
	if p == nil {
		return fmt.Errorf("participant is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.byEmail[p.Email]; ok && owner != p.ID {
		return fmt.Errorf("email %s: %w", p.Email, sentinel.ErrConflict)
	}
	if prev, ok := s.participants[p.ID]; ok && prev.Email != p.Email {
		delete(s.byEmail, prev.Email)
	}
	cp := *p
	s.participants[p.ID] = &cp
	s.byEmail[p.Email] = p.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[participantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, address string) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participantID, ok := s.byEmail[address]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.participants[participantID]
	return &cp, nil
}
