package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	emodels "votecast/internal/election/models"
	imodels "votecast/internal/identity/models"
	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	"votecast/pkg/platform/sentinel"
	"votecast/pkg/requestcontext"
)

const activeElectionConcurrency = 8

// CanVote reports whether participantID may cast a ballot in electionID now.
// It has no side effects.
func (s *Service) CanVote(ctx context.Context, participantID id.ParticipantID, electionID id.ElectionID) error {
	_, _, err := s.checkEligibility(ctx, participantID, electionID)
	return err
}

// checkEligibility returns the loaded aggregates so callers do not reload them.
func (s *Service) checkEligibility(ctx context.Context, participantID id.ParticipantID, electionID id.ElectionID) (*imodels.Participant, *emodels.Election, error) {
	var (
		participant *imodels.Participant
		election    *emodels.Election
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.elections.FindByID(gctx, electionID)
		if err != nil {
			return storeError(gctx, err, "election")
		}
		election = e
		return nil
	})
	g.Go(func() error {
		p, err := s.participants.FindByID(gctx, participantID)
		if err != nil {
			return storeError(gctx, err, "participant")
		}
		participant = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if !election.IsOpenAt(requestcontext.Now(ctx)) {
		return nil, nil, dErrors.New(dErrors.CodeElectionNotActive, "election is not active")
	}
	if participant.Role != imodels.RoleStudent || !participant.Verified {
		return nil, nil, dErrors.New(dErrors.CodeNotEligible, "participant is not eligible to vote")
	}

	voted, err := s.hasVoted(ctx, electionID, participantID)
	if err != nil {
		return nil, nil, err
	}
	if voted {
		return nil, nil, dErrors.New(dErrors.CodeAlreadyVoted, "participant has already voted in this election")
	}
	return participant, election, nil
}

func (s *Service) hasVoted(ctx context.Context, electionID id.ElectionID, participantID id.ParticipantID) (bool, error) {
	entry, err := s.elections.FindVoter(ctx, electionID, participantID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(ctx, err, "voter entry")
	}
	return entry.HasVoted, nil
}

// ActiveElections lists elections currently accepting ballots together with
// the caller's ballot state.
func (s *Service) ActiveElections(ctx context.Context, participantID id.ParticipantID) ([]models.ActiveElection, error) {
	elections, err := s.elections.ListByStatus(ctx, emodels.StatusActive)
	if err != nil {
		return nil, storeError(ctx, err, "elections")
	}

	now := requestcontext.Now(ctx)
	open := make([]*emodels.Election, 0, len(elections))
	for _, e := range elections {
		if e.IsOpenAt(now) {
			open = append(open, e)
		}
	}

	out := make([]models.ActiveElection, len(open))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(activeElectionConcurrency)
	for i, e := range open {
		g.Go(func() error {
			candidates, err := s.elections.FindCandidates(gctx, e.ID)
			if err != nil {
				return storeError(gctx, err, "candidates")
			}
			voted, err := s.hasVoted(gctx, e.ID, participantID)
			if err != nil {
				return err
			}
			out[i] = models.ActiveElection{Election: e, Candidates: candidates, HasVoted: voted}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
