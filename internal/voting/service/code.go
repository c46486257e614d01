package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	audit "votecast/pkg/platform/audit"
	"votecast/pkg/platform/sentinel"
	"votecast/pkg/requestcontext"
)

// IssueCode generates a one-time code bound to the chosen candidate and
// delivers it to the participant. A new code replaces any earlier one for the
// same participant and election.
func (s *Service) IssueCode(ctx context.Context, req models.IssueCodeRequest) (*models.IssueCodeResult, error) {
	ctx, span := s.tracer.Start(ctx, "voting.IssueCode")
	var err error
	defer func() { endSpan(span, err) }()

	participant, election, err := s.checkEligibility(ctx, req.ParticipantID, req.ElectionID)
	if err != nil {
		return nil, err
	}
	if !election.HasCandidate(req.CandidateID) {
		err = dErrors.New(dErrors.CodeCandidateNotInElection, "candidate is not part of this election")
		return nil, err
	}
	if err = s.allowIssue(ctx, req.ParticipantID); err != nil {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate code")
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cfg.HashCost)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash code")
		return nil, err
	}

	now := requestcontext.Now(ctx)
	pending := &models.PendingCode{
		IssueID:       id.NewIssueID(),
		ParticipantID: req.ParticipantID,
		ElectionID:    req.ElectionID,
		CandidateID:   req.CandidateID,
		CodeHash:      hash,
		Destination:   participant.Email,
		IssuedAt:      now,
		ExpiresAt:     now.Add(s.cfg.CodeTTL),
	}
	if err = s.codes.Put(ctx, pending); err != nil {
		err = storeError(ctx, err, "code store")
		return nil, err
	}

	if err = s.notifier.Notify(ctx, participant.Email, codeSubject, s.codeBody(code)); err != nil {
		s.withdrawCode(ctx, pending)
		s.metrics.IncDeliveryFailure()
		s.emitAudit(ctx, audit.EventCodeDeliveryFailed, req.ParticipantID, req.ElectionID, "failed", err.Error())
		err = dErrors.Wrap(err, dErrors.CodeDeliveryFailed, "failed to deliver code")
		return nil, err
	}

	s.metrics.IncCodesIssued()
	s.emitAudit(ctx, audit.EventCodeIssued, req.ParticipantID, req.ElectionID, "issued", "")

	result := &models.IssueCodeResult{
		Success:   true,
		Message:   issuedMessage,
		ExpiresAt: pending.ExpiresAt,
	}
	if s.cfg.ExposeCodes {
		result.DevCode = code
	}
	return result, nil
}

func (s *Service) codeBody(code string) string {
	return fmt.Sprintf("Your OTP for voting is: %s. It will expire in %d minutes.", code, int(s.cfg.CodeTTL.Minutes()))
}

func (s *Service) allowIssue(ctx context.Context, participantID id.ParticipantID) error {
	if s.throttle == nil {
		return nil
	}
	res, err := s.throttle.Allow(ctx, "otp:"+participantID.String())
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "issuance throttle unavailable")
	}
	if !res.Allowed {
		s.metrics.IncCodeRejected("rate_limited")
		return dErrors.New(dErrors.CodeRateLimited, "too many code requests, try again later")
	}
	return nil
}

// withdrawCode removes pending only if no newer issuance replaced it.
func (s *Service) withdrawCode(ctx context.Context, pending *models.PendingCode) {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.codes.CompareAndDelete(ctx, pending.Key(), pending.IssueID); err != nil {
		s.logger.WarnContext(ctx, "failed to withdraw undelivered code",
			"participant_id", pending.ParticipantID.String(),
			"election_id", pending.ElectionID.String(),
			"error", err,
		)
	}
}

// VerifyCode checks a presented code against the live pending code without
// consuming it. Expired codes are removed.
func (s *Service) VerifyCode(ctx context.Context, req models.VerifyCodeRequest) (*models.PendingCode, error) {
	code, err := models.NormalizeCode(req.Code)
	if err != nil {
		return nil, err
	}

	pending, err := s.verify(ctx, req.ParticipantID, req.ElectionID, req.CandidateID, code)
	if err != nil {
		reason := string(dErrors.CodeOf(err))
		s.metrics.IncCodeRejected(reason)
		s.emitAudit(ctx, audit.EventCodeRejected, req.ParticipantID, req.ElectionID, "rejected", reason)
		return nil, err
	}
	return pending, nil
}

func (s *Service) verify(ctx context.Context, participantID id.ParticipantID, electionID id.ElectionID, candidateID id.CandidateID, code string) (*models.PendingCode, error) {
	key := models.CodeKey{ParticipantID: participantID, ElectionID: electionID}
	pending, err := s.codes.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeCodeNotFound, "no pending code, request a new one")
	}
	if err != nil {
		return nil, storeError(ctx, err, "code store")
	}

	if pending.IsExpiredAt(requestcontext.Now(ctx)) {
		if _, err := s.codes.CompareAndDelete(ctx, key, pending.IssueID); err != nil {
			s.logger.WarnContext(ctx, "failed to remove expired code", "key", key.String(), "error", err)
		}
		return nil, dErrors.New(dErrors.CodeCodeExpired, "code has expired, request a new one")
	}
	if bcrypt.CompareHashAndPassword(pending.CodeHash, []byte(code)) != nil {
		return nil, dErrors.New(dErrors.CodeCodeMismatch, "invalid code")
	}
	if pending.CandidateID != candidateID || pending.ElectionID != electionID {
		return nil, dErrors.New(dErrors.CodeBindingMismatch, "code was issued for a different candidate")
	}
	return pending, nil
}

// SweepExpiredCodes removes codes that expired before now.
func (s *Service) SweepExpiredCodes(ctx context.Context) (int, error) {
	n, err := s.codes.DeleteExpired(ctx, requestcontext.Now(ctx))
	if err != nil {
		return 0, storeError(ctx, err, "code store")
	}
	s.metrics.AddCodesSwept(n)
	return n, nil
}
