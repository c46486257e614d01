package models

import (
	"context"
	"slices"
	"time"

	id "votecast/pkg/domain"
)

// Status is the election lifecycle state. Scheduling transitions are owned
// by the election management subsystem.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Election is the aggregate that owns the voters map and the tally.
// Voter entries and result counts are stored as separate rows.
type Election struct {
	ID          id.ElectionID
	Title       string
	Description string
	Status      Status
	StartAt     time.Time
	EndAt       time.Time
	// Candidates is in display order.
	Candidates []id.CandidateID
	CreatedAt  time.Time
}

// IsOpenAt reports whether ballots are accepted at now. The window is
// half-open: [StartAt, EndAt).
func (e *Election) IsOpenAt(now time.Time) bool {
	return e.Status == StatusActive && !now.Before(e.StartAt) && now.Before(e.EndAt)
}

func (e *Election) HasCandidate(candidateID id.CandidateID) bool {
	return slices.Contains(e.Candidates, candidateID)
}

type CandidateStatus string

const (
	CandidatePending  CandidateStatus = "pending"
	CandidateApproved CandidateStatus = "approved"
	CandidateRejected CandidateStatus = "rejected"
)

// Candidate is a ballot option. VoteCount is a projection of the election's
// result rows and may lag behind them until reconciled.
type Candidate struct {
	ID         id.CandidateID
	ElectionID id.ElectionID
	Name       string
	Party      string
	Position   int
	Status     CandidateStatus
	VoteCount  int64
}

// VoterEntry records that a participant has used their ballot.
type VoterEntry struct {
	ElectionID      id.ElectionID
	ParticipantID   id.ParticipantID
	HasVoted        bool
	VotedAt         time.Time
	TransactionHash string
	WalletAddress   string
}

// ResultEntry is one candidate's authoritative count in the tally.
type ResultEntry struct {
	ElectionID  id.ElectionID
	CandidateID id.CandidateID
	VoteCount   int64
}

// VoteRecord is a participant's receipt for one election. Never updated.
type VoteRecord struct {
	ParticipantID   id.ParticipantID
	ElectionID      id.ElectionID
	ElectionTitle   string
	VotedAt         time.Time
	TransactionHash string
	// Verified is true when the transaction reference passed format checks.
	Verified bool
}

// BallotWriter is the set of writes a vote makes. Implementations are only
// handed out inside a transaction; either all calls take effect or none.
type BallotWriter interface {
	// MarkVoted sets HasVoted only if it is currently false and returns
	// sentinel.ErrConflict otherwise.
	MarkVoted(ctx context.Context, entry VoterEntry) error
	IncrementResult(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) error
	AppendHistory(ctx context.Context, record VoteRecord) error
}
