// Package domain holds identifier types shared across modules.
//
// Each aggregate has its own ID type over uuid.UUID so a participant ID can
// never be passed where an election ID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "votecast/pkg/domain-errors"
)

type (
	ParticipantID uuid.UUID
	ElectionID    uuid.UUID
	CandidateID   uuid.UUID
	IssueID       uuid.UUID
)

func (id ParticipantID) String() string { return uuid.UUID(id).String() }
func (id ParticipantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id ElectionID) String() string { return uuid.UUID(id).String() }
func (id ElectionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id CandidateID) String() string { return uuid.UUID(id).String() }
func (id CandidateID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id IssueID) String() string { return uuid.UUID(id).String() }
func (id IssueID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewParticipantID, NewElectionID and NewCandidateID mint random IDs.
func NewParticipantID() ParticipantID { return ParticipantID(uuid.New()) }
func NewElectionID() ElectionID       { return ElectionID(uuid.New()) }
func NewCandidateID() CandidateID     { return CandidateID(uuid.New()) }
func NewIssueID() IssueID             { return IssueID(uuid.New()) }

func ParseParticipantID(s string) (ParticipantID, error) {
	u, err := parseUUID(s, "participant")
	return ParticipantID(u), err
}

func ParseElectionID(s string) (ElectionID, error) {
	u, err := parseUUID(s, "election")
	return ElectionID(u), err
}

func ParseCandidateID(s string) (CandidateID, error) {
	u, err := parseUUID(s, "candidate")
	return CandidateID(u), err
}

func ParseIssueID(s string) (IssueID, error) {
	u, err := parseUUID(s, "issue")
	return IssueID(u), err
}

// parseUUID rejects empty, malformed and nil UUIDs at trust boundaries.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must not be nil")
	}
	return u, nil
}
