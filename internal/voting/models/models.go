package models

import (
	"strings"
	"time"

	emodels "votecast/internal/election/models"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
)

// CodeLength is the number of digits in a one-time code.
const CodeLength = 6

// CodeKey identifies the single live pending code slot.
type CodeKey struct {
	ParticipantID id.ParticipantID
	ElectionID    id.ElectionID
}

func (k CodeKey) String() string {
	return k.ParticipantID.String() + ":" + k.ElectionID.String()
}

// PendingCode is an issued, not yet consumed one-time code. Only the bcrypt
// hash of the code is kept.
type PendingCode struct {
	IssueID       id.IssueID
	ParticipantID id.ParticipantID
	ElectionID    id.ElectionID
	CandidateID   id.CandidateID
	CodeHash      []byte
	Destination   string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

func (p *PendingCode) Key() CodeKey {
	return CodeKey{ParticipantID: p.ParticipantID, ElectionID: p.ElectionID}
}

// IsExpiredAt treats ExpiresAt itself as still valid.
func (p *PendingCode) IsExpiredAt(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// NormalizeCode trims surrounding whitespace and checks the code is exactly
// CodeLength ASCII digits.
func NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", dErrors.New(dErrors.CodeValidation, "otp is required")
	}
	if len(code) != CodeLength {
		return "", dErrors.New(dErrors.CodeValidation, "otp must be 6 digits")
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", dErrors.New(dErrors.CodeValidation, "otp must be 6 digits")
		}
	}
	return code, nil
}

type IssueCodeRequest struct {
	ParticipantID id.ParticipantID
	ElectionID    id.ElectionID
	CandidateID   id.CandidateID
}

type IssueCodeResult struct {
	Success   bool
	Message   string
	ExpiresAt time.Time
	// DevCode is only populated when codes are exposed for local testing.
	DevCode string
}

type VerifyCodeRequest struct {
	ParticipantID id.ParticipantID
	ElectionID    id.ElectionID
	CandidateID   id.CandidateID
	Code          string
}

type CastVoteRequest struct {
	ParticipantID   id.ParticipantID
	ElectionID      id.ElectionID
	CandidateID     id.CandidateID
	Code            string
	TransactionHash string
	WalletAddress   string
}

type CastVoteResult struct {
	Success         bool
	TransactionHash string
	VotedAt         time.Time
}

// CandidateDrift is one candidate whose counter disagreed with the tally.
type CandidateDrift struct {
	CandidateID id.CandidateID
	Before      int64
	After       int64
}

type ReconcileReport struct {
	ElectionID   id.ElectionID
	Checked      int
	Diverged     []CandidateDrift
	ReconciledAt time.Time
}

// ActiveElection pairs an open election with the caller's ballot state.
type ActiveElection struct {
	Election   *emodels.Election
	Candidates []*emodels.Candidate
	HasVoted   bool
}
