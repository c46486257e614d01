package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	emodels "votecast/internal/election/models"
	imodels "votecast/internal/identity/models"
	"votecast/internal/voting/models"
	"votecast/internal/voting/throttle"
	id "votecast/pkg/domain"
	audit "votecast/pkg/platform/audit"
)

type ParticipantStore interface {
	FindByID(ctx context.Context, participantID id.ParticipantID) (*imodels.Participant, error)
}

type ElectionStore interface {
	FindByID(ctx context.Context, electionID id.ElectionID) (*emodels.Election, error)
	ListByStatus(ctx context.Context, statuses ...emodels.Status) ([]*emodels.Election, error)
	FindCandidates(ctx context.Context, electionID id.ElectionID) ([]*emodels.Candidate, error)
	FindVoter(ctx context.Context, electionID id.ElectionID, participantID id.ParticipantID) (*emodels.VoterEntry, error)
	CountVoted(ctx context.Context, electionID id.ElectionID) (int64, error)
	Results(ctx context.Context, electionID id.ElectionID) ([]emodels.ResultEntry, error)
	History(ctx context.Context, participantID id.ParticipantID) ([]emodels.VoteRecord, error)
}

// CandidateStore maintains the per-candidate counter projection.
type CandidateStore interface {
	IncrementVoteCount(ctx context.Context, candidateID id.CandidateID) error
	SetVoteCount(ctx context.Context, candidateID id.CandidateID, count int64) error
}

// VoteTx runs the ballot writes of one vote atomically.
type VoteTx interface {
	RunInTx(ctx context.Context, electionID id.ElectionID, fn func(ctx context.Context, w emodels.BallotWriter) error) error
}

type CodeStore interface {
	Put(ctx context.Context, code *models.PendingCode) error
	Get(ctx context.Context, key models.CodeKey) (*models.PendingCode, error)
	Delete(ctx context.Context, key models.CodeKey) error
	CompareAndDelete(ctx context.Context, key models.CodeKey, issueID id.IssueID) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

type Throttle interface {
	Allow(ctx context.Context, key string) (throttle.Result, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// ReconcileQueue accepts elections whose candidate counters need repair.
// Enqueue must not block.
type ReconcileQueue interface {
	Enqueue(electionID id.ElectionID) bool
}
