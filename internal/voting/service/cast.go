package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.opentelemetry.io/otel/attribute"

	emodels "votecast/internal/election/models"
	"votecast/internal/voting/models"
	dErrors "votecast/pkg/domain-errors"
	audit "votecast/pkg/platform/audit"
	"votecast/pkg/platform/sentinel"
	"votecast/pkg/requestcontext"
)

// CastVote verifies the code and records the ballot exactly once.
func (s *Service) CastVote(ctx context.Context, req models.CastVoteRequest) (*models.CastVoteResult, error) {
	ctx, span := s.tracer.Start(ctx, "voting.CastVote")
	span.SetAttributes(attribute.String("election.id", req.ElectionID.String()))
	start := time.Now()

	result, err := s.castVote(ctx, req)
	endSpan(span, err)
	if err != nil {
		code := string(dErrors.CodeOf(err))
		s.metrics.IncVoteRejected(code)
		s.emitAudit(ctx, audit.EventVoteRejected, req.ParticipantID, req.ElectionID, "rejected", code)
		return nil, err
	}

	s.metrics.ObserveVoteCast(time.Since(start))
	s.emitAudit(ctx, audit.EventVoteCast, req.ParticipantID, req.ElectionID, "cast", "")
	return result, nil
}

func (s *Service) castVote(ctx context.Context, req models.CastVoteRequest) (*models.CastVoteResult, error) {
	txRef, verified, err := s.normalizeTxRef(req.TransactionHash)
	if err != nil {
		return nil, err
	}
	wallet, err := normalizeWallet(req.WalletAddress)
	if err != nil {
		return nil, err
	}
	code, err := models.NormalizeCode(req.Code)
	if err != nil {
		return nil, err
	}

	_, election, err := s.checkEligibility(ctx, req.ParticipantID, req.ElectionID)
	if err != nil {
		return nil, err
	}
	pending, err := s.VerifyCode(ctx, models.VerifyCodeRequest{
		ParticipantID: req.ParticipantID,
		ElectionID:    req.ElectionID,
		CandidateID:   req.CandidateID,
		Code:          code,
	})
	if err != nil {
		return nil, s.settleCodeError(ctx, req, err)
	}

	votedAt := requestcontext.Now(ctx)
	err = s.tx.RunInTx(ctx, req.ElectionID, func(ctx context.Context, w emodels.BallotWriter) error {
		if err := w.MarkVoted(ctx, emodels.VoterEntry{
			ElectionID:      req.ElectionID,
			ParticipantID:   req.ParticipantID,
			HasVoted:        true,
			VotedAt:         votedAt,
			TransactionHash: txRef,
			WalletAddress:   wallet,
		}); err != nil {
			return err
		}
		if err := w.IncrementResult(ctx, req.ElectionID, req.CandidateID); err != nil {
			return err
		}
		return w.AppendHistory(ctx, emodels.VoteRecord{
			ParticipantID:   req.ParticipantID,
			ElectionID:      req.ElectionID,
			ElectionTitle:   election.Title,
			VotedAt:         votedAt,
			TransactionHash: txRef,
			Verified:        verified,
		})
	})
	if err != nil {
		return nil, recordError(ctx, err)
	}

	s.syncCandidateCounter(ctx, req)
	if _, err := s.codes.CompareAndDelete(context.WithoutCancel(ctx), pending.Key(), pending.IssueID); err != nil {
		s.logger.WarnContext(ctx, "failed to consume code after vote",
			"participant_id", req.ParticipantID.String(),
			"election_id", req.ElectionID.String(),
			"error", err,
		)
	}

	return &models.CastVoteResult{
		Success:         true,
		TransactionHash: txRef,
		VotedAt:         votedAt,
	}, nil
}

// settleCodeError reports already_voted when the code vanished because a
// concurrent cast by the same participant committed first.
func (s *Service) settleCodeError(ctx context.Context, req models.CastVoteRequest, err error) error {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeCodeNotFound, dErrors.CodeCodeMismatch:
	default:
		return err
	}
	voted, verr := s.hasVoted(ctx, req.ElectionID, req.ParticipantID)
	if verr != nil || !voted {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeAlreadyVoted, "participant has already voted in this election")
}

func recordError(ctx context.Context, err error) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeAlreadyVoted, "participant has already voted in this election")
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "timed out recording vote")
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to record vote")
	}
}

// syncCandidateCounter updates the derived per-candidate counter. The ballot
// is already committed, so failures are reported and queued for repair.
func (s *Service) syncCandidateCounter(ctx context.Context, req models.CastVoteRequest) {
	err := s.candidates.IncrementVoteCount(context.WithoutCancel(ctx), req.CandidateID)
	if err == nil {
		return
	}

	s.logger.ErrorContext(ctx, "candidate counter out of sync with tally",
		"code", string(dErrors.CodeInvariantViolation),
		"election_id", req.ElectionID.String(),
		"candidate_id", req.CandidateID.String(),
		"error", err,
	)
	s.metrics.IncInvariantViolation("candidate_counter")
	s.emitAudit(ctx, audit.EventInvariantViolation, req.ParticipantID, req.ElectionID, "detected", "candidate_counter")
	if s.reconcileQueue != nil && !s.reconcileQueue.Enqueue(req.ElectionID) {
		s.logger.WarnContext(ctx, "reconcile queue full", "election_id", req.ElectionID.String())
	}
}

// normalizeTxRef returns the stored form of the transaction reference and
// whether it passed format checks.
func (s *Service) normalizeTxRef(ref string) (string, bool, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false, dErrors.New(dErrors.CodeValidation, "transactionHash is required")
	}
	if b, err := hexutil.Decode(ref); err == nil && len(b) == common.HashLength {
		return common.BytesToHash(b).Hex(), true, nil
	}
	if s.cfg.AllowUnverifiedTxRef {
		return ref, false, nil
	}
	return "", false, dErrors.New(dErrors.CodeValidation, "transactionHash must be a 0x-prefixed 32-byte hex hash")
}

func normalizeWallet(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", nil
	}
	if !common.IsHexAddress(addr) {
		return "", dErrors.New(dErrors.CodeValidation, "walletAddress must be a hex address")
	}
	return common.HexToAddress(addr).Hex(), nil
}
