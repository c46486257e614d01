package models

import (
	"strings"
	"time"

	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	"votecast/pkg/email"
)

// Role gates which operations a participant may invoke.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Participant is a registered member of the institution. Registration and
// email verification happen elsewhere; voting only reads these fields.
type Participant struct {
	ID            id.ParticipantID
	Email         string
	Name          string
	Role          Role
	Verified      bool
	WalletAddress string
	CreatedAt     time.Time
}

// NewParticipant normalizes the email and derives a display name from it
// when none is supplied.
func NewParticipant(participantID id.ParticipantID, address, name string, role Role, verified bool, now time.Time) (*Participant, error) {
	normalized, ok := email.Normalize(address)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid email address")
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = email.DeriveNameFromEmail(normalized)
	}
	return &Participant{
		ID:        participantID,
		Email:     normalized,
		Name:      name,
		Role:      role,
		Verified:  verified,
		CreatedAt: now,
	}, nil
}

func (p *Participant) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
