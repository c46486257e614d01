package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"votecast/internal/election/models"
	"votecast/internal/platform/database"
	id "votecast/pkg/domain"
	"votecast/pkg/platform/sentinel"
)

type electionStore interface {
	CreateElection(ctx context.Context, e *models.Election) error
	CreateCandidate(ctx context.Context, c *models.Candidate) error
	FindByID(ctx context.Context, electionID id.ElectionID) (*models.Election, error)
	ListByStatus(ctx context.Context, statuses ...models.Status) ([]*models.Election, error)
	FindCandidates(ctx context.Context, electionID id.ElectionID) ([]*models.Candidate, error)
	FindVoter(ctx context.Context, electionID id.ElectionID, participantID id.ParticipantID) (*models.VoterEntry, error)
	CountVoted(ctx context.Context, electionID id.ElectionID) (int64, error)
	Results(ctx context.Context, electionID id.ElectionID) ([]models.ResultEntry, error)
	History(ctx context.Context, participantID id.ParticipantID) ([]models.VoteRecord, error)
	IncrementVoteCount(ctx context.Context, candidateID id.CandidateID) error
	SetVoteCount(ctx context.Context, candidateID id.CandidateID, count int64) error
	SetStatus(ctx context.Context, electionID id.ElectionID, status models.Status) error
}

type ballotTx interface {
	RunInTx(ctx context.Context, electionID id.ElectionID, fn func(ctx context.Context, w models.BallotWriter) error) error
}

// ElectionStoreSuite runs the aggregate contract against each backend.
type ElectionStoreSuite struct {
	suite.Suite
	backend func() (electionStore, ballotTx)

	store electionStore
	tx    ballotTx
	ctx   context.Context
	now   time.Time
}

func TestInMemoryElectionStore(t *testing.T) {
	suite.Run(t, &ElectionStoreSuite{backend: func() (electionStore, ballotTx) {
		s := NewInMemoryStore()
		return s, NewShardedTx(s)
	}})
}

func TestSQLiteElectionStore(t *testing.T) {
	s := &ElectionStoreSuite{}
	s.backend = func() (electionStore, ballotTx) {
		ctx := context.Background()
		db, err := database.Open(ctx, "sqlite", filepath.Join(s.T().TempDir(), "election.db"), database.Options{})
		s.Require().NoError(err)
		s.T().Cleanup(func() { _ = db.Close() })
		s.Require().NoError(db.Migrate(ctx))
		store := NewSQLStore(db)
		return store, NewSQLTx(store)
	}
	suite.Run(t, s)
}

func (s *ElectionStoreSuite) SetupTest() {
	s.store, s.tx = s.backend()
	s.ctx = context.Background()
	s.now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ElectionStoreSuite) seedElection(status models.Status, names ...string) (*models.Election, []id.CandidateID) {
	election := &models.Election{
		ID:        id.NewElectionID(),
		Title:     "Student Council",
		Status:    status,
		StartAt:   s.now.Add(-time.Hour),
		EndAt:     s.now.Add(time.Hour),
		CreatedAt: s.now.Add(-24 * time.Hour),
	}
	s.Require().NoError(s.store.CreateElection(s.ctx, election))

	ids := make([]id.CandidateID, 0, len(names))
	for i, name := range names {
		c := &models.Candidate{
			ID:         id.NewCandidateID(),
			ElectionID: election.ID,
			Name:       name,
			Position:   i,
			Status:     models.CandidateApproved,
		}
		s.Require().NoError(s.store.CreateCandidate(s.ctx, c))
		ids = append(ids, c.ID)
	}
	return election, ids
}

func (s *ElectionStoreSuite) castBallot(electionID id.ElectionID, participantID id.ParticipantID, candidateID id.CandidateID) error {
	return s.tx.RunInTx(s.ctx, electionID, func(ctx context.Context, w models.BallotWriter) error {
		if err := w.MarkVoted(ctx, models.VoterEntry{
			ElectionID:      electionID,
			ParticipantID:   participantID,
			VotedAt:         s.now,
			TransactionHash: "0xabc",
		}); err != nil {
			return err
		}
		if err := w.IncrementResult(ctx, electionID, candidateID); err != nil {
			return err
		}
		return w.AppendHistory(ctx, models.VoteRecord{
			ParticipantID:   participantID,
			ElectionID:      electionID,
			ElectionTitle:   "Student Council",
			VotedAt:         s.now,
			TransactionHash: "0xabc",
			Verified:        true,
		})
	})
}

func (s *ElectionStoreSuite) resultsByCandidate(electionID id.ElectionID) map[id.CandidateID]int64 {
	rows, err := s.store.Results(s.ctx, electionID)
	s.Require().NoError(err)
	out := make(map[id.CandidateID]int64, len(rows))
	for _, r := range rows {
		out[r.CandidateID] = r.VoteCount
	}
	return out
}

func (s *ElectionStoreSuite) TestLookups() {
	election, candidates := s.seedElection(models.StatusActive, "Ada", "Grace", "Alan")
	s.seedElection(models.StatusDraft, "Nobody")

	found, err := s.store.FindByID(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Equal(election.Title, found.Title)
	s.Equal(candidates, found.Candidates, "candidate order follows position")
	s.True(found.IsOpenAt(s.now))

	_, err = s.store.FindByID(s.ctx, id.NewElectionID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	active, err := s.store.ListByStatus(s.ctx, models.StatusActive)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(election.ID, active[0].ID)

	both, err := s.store.ListByStatus(s.ctx, models.StatusActive, models.StatusDraft)
	s.Require().NoError(err)
	s.Len(both, 2)

	list, err := s.store.FindCandidates(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("Grace", list[1].Name)

	_, err = s.store.FindVoter(s.ctx, election.ID, id.NewParticipantID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ElectionStoreSuite) TestBallotCommitsAllWrites() {
	election, candidates := s.seedElection(models.StatusActive, "Ada", "Grace")
	participantID := id.NewParticipantID()

	s.Require().NoError(s.castBallot(election.ID, participantID, candidates[1]))

	voter, err := s.store.FindVoter(s.ctx, election.ID, participantID)
	s.Require().NoError(err)
	s.True(voter.HasVoted)
	s.Equal("0xabc", voter.TransactionHash)

	s.Equal(map[id.CandidateID]int64{candidates[1]: 1}, s.resultsByCandidate(election.ID))

	history, err := s.store.History(s.ctx, participantID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal("Student Council", history[0].ElectionTitle)
	s.True(history[0].Verified)
}

func (s *ElectionStoreSuite) TestSecondBallotConflicts() {
	election, candidates := s.seedElection(models.StatusActive, "Ada", "Grace")
	participantID := id.NewParticipantID()

	s.Require().NoError(s.castBallot(election.ID, participantID, candidates[0]))
	err := s.castBallot(election.ID, participantID, candidates[1])
	s.ErrorIs(err, sentinel.ErrConflict)

	s.Equal(map[id.CandidateID]int64{candidates[0]: 1}, s.resultsByCandidate(election.ID))
}

func (s *ElectionStoreSuite) TestFailedBallotRollsBack() {
	election, candidates := s.seedElection(models.StatusActive, "Ada")
	participantID := id.NewParticipantID()
	boom := errors.New("boom")

	err := s.tx.RunInTx(s.ctx, election.ID, func(ctx context.Context, w models.BallotWriter) error {
		s.Require().NoError(w.MarkVoted(ctx, models.VoterEntry{ElectionID: election.ID, ParticipantID: participantID, VotedAt: s.now}))
		s.Require().NoError(w.IncrementResult(ctx, election.ID, candidates[0]))
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.store.FindVoter(s.ctx, election.ID, participantID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Empty(s.resultsByCandidate(election.ID))

	s.Require().NoError(s.castBallot(election.ID, participantID, candidates[0]), "participant can still vote")
}

func (s *ElectionStoreSuite) TestConcurrentBallotsForOneParticipant() {
	election, candidates := s.seedElection(models.StatusActive, "Ada", "Grace")
	participantID := id.NewParticipantID()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.castBallot(election.ID, participantID, candidates[i%2])
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(attempts-1), conflicts.Load())

	var total int64
	for _, n := range s.resultsByCandidate(election.ID) {
		total += n
	}
	voted, err := s.store.CountVoted(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(voted, total, "tally equals number of voters")
}

func (s *ElectionStoreSuite) TestConcurrentBallotsForManyParticipants() {
	election, candidates := s.seedElection(models.StatusActive, "Ada", "Grace", "Alan")

	const voters = 24
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.NoError(s.castBallot(election.ID, id.NewParticipantID(), candidates[i%3]))
		}(i)
	}
	wg.Wait()

	results := s.resultsByCandidate(election.ID)
	for _, candidateID := range candidates {
		s.Equal(int64(voters/3), results[candidateID])
	}
	voted, err := s.store.CountVoted(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Equal(int64(voters), voted)
}

func (s *ElectionStoreSuite) TestCandidateCounter() {
	election, candidates := s.seedElection(models.StatusActive, "Ada")

	s.Require().NoError(s.store.IncrementVoteCount(s.ctx, candidates[0]))
	s.Require().NoError(s.store.IncrementVoteCount(s.ctx, candidates[0]))
	list, err := s.store.FindCandidates(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), list[0].VoteCount)

	s.Require().NoError(s.store.SetVoteCount(s.ctx, candidates[0], 7))
	list, err = s.store.FindCandidates(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Equal(int64(7), list[0].VoteCount)

	s.ErrorIs(s.store.IncrementVoteCount(s.ctx, id.NewCandidateID()), sentinel.ErrNotFound)
	s.ErrorIs(s.store.SetVoteCount(s.ctx, id.NewCandidateID(), 1), sentinel.ErrNotFound)
}

func (s *ElectionStoreSuite) TestSetStatus() {
	election, _ := s.seedElection(models.StatusActive, "Ada")

	s.Require().NoError(s.store.SetStatus(s.ctx, election.ID, models.StatusCompleted))
	got, err := s.store.FindByID(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, got.Status)

	s.ErrorIs(s.store.SetStatus(s.ctx, id.NewElectionID(), models.StatusCompleted), sentinel.ErrNotFound)
}

func (s *ElectionStoreSuite) TestCancelledContext() {
	election, _ := s.seedElection(models.StatusActive, "Ada")
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	called := false
	err := s.tx.RunInTx(ctx, election.ID, func(context.Context, models.BallotWriter) error {
		called = true
		return nil
	})
	s.Error(err)
	s.False(called)
}
