// Package store persists elections, candidates, voter entries, result rows
// and vote history.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"votecast/internal/election/models"
	id "votecast/pkg/domain"
	"votecast/pkg/platform/sentinel"
)

type voterKey struct {
	election    id.ElectionID
	participant id.ParticipantID
}

type resultKey struct {
	election  id.ElectionID
	candidate id.CandidateID
}

// InMemoryStore keeps the whole aggregate behind one RWMutex. Ballot writes
// go through ShardedTx, which stages them and applies the batch at once.
type InMemoryStore struct {
	mu         sync.RWMutex
	elections  map[id.ElectionID]*models.Election
	candidates map[id.CandidateID]*models.Candidate
	voters     map[voterKey]models.VoterEntry
	results    map[resultKey]int64
	history    map[id.ParticipantID][]models.VoteRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		elections:  make(map[id.ElectionID]*models.Election),
		candidates: make(map[id.CandidateID]*models.Candidate),
		voters:     make(map[voterKey]models.VoterEntry),
		results:    make(map[resultKey]int64),
		history:    make(map[id.ParticipantID][]models.VoteRecord),
	}
}

func (s *InMemoryStore) CreateElection(_ context.Context, election *models.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[election.ID]; ok {
		return fmt.Errorf("election %s: %w", election.ID, sentinel.ErrConflict)
	}
	cp := cloneElection(election)
	cp.Candidates = nil
	s.elections[election.ID] = cp
	return nil
}

// CreateCandidate adds a candidate and appends it to the election's
// candidate order.
func (s *InMemoryStore) CreateCandidate(_ context.Context, candidate *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	election, ok := s.elections[candidate.ElectionID]
	if !ok {
		return fmt.Errorf("election %s: %w", candidate.ElectionID, sentinel.ErrNotFound)
	}
	if _, ok := s.candidates[candidate.ID]; ok {
		return fmt.Errorf("candidate %s: %w", candidate.ID, sentinel.ErrConflict)
	}
	cp := *candidate
	s.candidates[candidate.ID] = &cp
	election.Candidates = append(election.Candidates, candidate.ID)
	sort.SliceStable(election.Candidates, func(i, j int) bool {
		return s.candidates[election.Candidates[i]].Position < s.candidates[election.Candidates[j]].Position
	})
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, electionID id.ElectionID) (*models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[electionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneElection(election), nil
}

// ListByStatus returns elections in any of the given statuses, ordered by
// start time.
func (s *InMemoryStore) ListByStatus(_ context.Context, statuses ...models.Status) ([]*models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Election
	for _, election := range s.elections {
		for _, status := range statuses {
			if election.Status == status {
				out = append(out, cloneElection(election))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out, nil
}

// FindCandidates returns the election's candidates in display order.
func (s *InMemoryStore) FindCandidates(_ context.Context, electionID id.ElectionID) ([]*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[electionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]*models.Candidate, 0, len(election.Candidates))
	for _, candidateID := range election.Candidates {
		cp := *s.candidates[candidateID]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemoryStore) FindVoter(_ context.Context, electionID id.ElectionID, participantID id.ParticipantID) (*models.VoterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.voters[voterKey{electionID, participantID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &entry, nil
}

// CountVoted returns the number of voter entries with HasVoted set.
func (s *InMemoryStore) CountVoted(_ context.Context, electionID id.ElectionID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for key, entry := range s.voters {
		if key.election == electionID && entry.HasVoted {
			n++
		}
	}
	return n, nil
}

// Results returns the tally rows that exist. Candidates with no votes may
// have no row.
func (s *InMemoryStore) Results(_ context.Context, electionID id.ElectionID) ([]models.ResultEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ResultEntry
	for key, count := range s.results {
		if key.election == electionID {
			out = append(out, models.ResultEntry{ElectionID: electionID, CandidateID: key.candidate, VoteCount: count})
		}
	}
	return out, nil
}

// History returns a participant's vote records, newest first.
func (s *InMemoryStore) History(_ context.Context, participantID id.ParticipantID) ([]models.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]models.VoteRecord{}, s.history[participantID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].VotedAt.After(out[j].VotedAt) })
	return out, nil
}

func (s *InMemoryStore) SetStatus(_ context.Context, electionID id.ElectionID, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	election, ok := s.elections[electionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	election.Status = status
	return nil
}

func (s *InMemoryStore) IncrementVoteCount(_ context.Context, candidateID id.CandidateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.candidates[candidateID]
	if !ok {
		return sentinel.ErrNotFound
	}
	candidate.VoteCount++
	return nil
}

func (s *InMemoryStore) SetVoteCount(_ context.Context, candidateID id.CandidateID, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.candidates[candidateID]
	if !ok {
		return sentinel.ErrNotFound
	}
	candidate.VoteCount = count
	return nil
}

// apply commits a staged batch. Callers hold the election's shard lock, so
// the voter checks made while staging still hold.
func (s *InMemoryStore) apply(b *memoryBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range b.voters {
		s.voters[key] = entry
	}
	for key, delta := range b.results {
		s.results[key] += delta
	}
	for _, record := range b.history {
		s.history[record.ParticipantID] = append(s.history[record.ParticipantID], record)
	}
}

func (s *InMemoryStore) hasVoted(key voterKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voters[key].HasVoted
}

func (s *InMemoryStore) hasHistory(participantID id.ParticipantID, electionID id.ElectionID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.history[participantID] {
		if record.ElectionID == electionID {
			return true
		}
	}
	return false
}

func cloneElection(e *models.Election) *models.Election {
	cp := *e
	cp.Candidates = append([]id.CandidateID(nil), e.Candidates...)
	return &cp
}
