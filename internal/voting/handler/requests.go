package handler

import (
	"strings"

	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
)

// ballotTarget is the election and candidate pair every vote request names.
type ballotTarget struct {
	ElectionID  string `json:"electionId"`
	CandidateID string `json:"candidateId"`

	electionID  id.ElectionID
	candidateID id.CandidateID
}

func (b *ballotTarget) parse() error {
	var err error
	if b.electionID, err = id.ParseElectionID(strings.TrimSpace(b.ElectionID)); err != nil {
		return err
	}
	if b.candidateID, err = id.ParseCandidateID(strings.TrimSpace(b.CandidateID)); err != nil {
		return err
	}
	return nil
}

type RequestOTPBody struct {
	ballotTarget
}

func (b *RequestOTPBody) Validate() error {
	return b.parse()
}

func (b *RequestOTPBody) toRequest(participantID id.ParticipantID) models.IssueCodeRequest {
	return models.IssueCodeRequest{
		ParticipantID: participantID,
		ElectionID:    b.electionID,
		CandidateID:   b.candidateID,
	}
}

type VerifyOTPBody struct {
	ballotTarget
	OTP string `json:"otp"`
}

func (b *VerifyOTPBody) Validate() error {
	if err := b.parse(); err != nil {
		return err
	}
	code, err := models.NormalizeCode(b.OTP)
	if err != nil {
		return err
	}
	b.OTP = code
	return nil
}

func (b *VerifyOTPBody) toRequest(participantID id.ParticipantID) models.VerifyCodeRequest {
	return models.VerifyCodeRequest{
		ParticipantID: participantID,
		ElectionID:    b.electionID,
		CandidateID:   b.candidateID,
		Code:          b.OTP,
	}
}

// CastVoteBody carries the code and the external transaction reference.
// Format checks on the reference depend on server policy and happen in the
// service.
type CastVoteBody struct {
	ballotTarget
	OTP             string `json:"otp"`
	TransactionHash string `json:"transactionHash"`
	WalletAddress   string `json:"walletAddress,omitempty"`
}

func (b *CastVoteBody) Validate() error {
	if err := b.parse(); err != nil {
		return err
	}
	code, err := models.NormalizeCode(b.OTP)
	if err != nil {
		return err
	}
	b.OTP = code
	b.TransactionHash = strings.TrimSpace(b.TransactionHash)
	if b.TransactionHash == "" {
		return dErrors.New(dErrors.CodeValidation, "transactionHash is required")
	}
	b.WalletAddress = strings.TrimSpace(b.WalletAddress)
	return nil
}

func (b *CastVoteBody) toRequest(participantID id.ParticipantID) models.CastVoteRequest {
	return models.CastVoteRequest{
		ParticipantID:   participantID,
		ElectionID:      b.electionID,
		CandidateID:     b.candidateID,
		Code:            b.OTP,
		TransactionHash: b.TransactionHash,
		WalletAddress:   b.WalletAddress,
	}
}
