package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	emodels "votecast/internal/election/models"
	imodels "votecast/internal/identity/models"
	"votecast/internal/voting/models"
	"votecast/internal/voting/tally"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	audit "votecast/pkg/platform/audit"
	"votecast/pkg/platform/sentinel"
	"votecast/pkg/requestcontext"
)

// GetResults returns the ranked tally. Completed elections are public; any
// other status is visible to admins only.
func (s *Service) GetResults(ctx context.Context, viewerID id.ParticipantID, electionID id.ElectionID) (_ *tally.Results, err error) {
	ctx, span := s.tracer.Start(ctx, "voting.GetResults")
	span.SetAttributes(attribute.String("election.id", electionID.String()))
	defer func() { endSpan(span, err) }()

	election, candidates, rows, err := s.loadTally(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if election.Status != emodels.StatusCompleted {
		viewer, err := s.participants.FindByID(ctx, viewerID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, storeError(ctx, err, "participant")
		}
		if viewer == nil || !viewer.IsAdmin() {
			return nil, dErrors.New(dErrors.CodeForbidden, "results are available once the election is completed")
		}
		s.emitAudit(ctx, audit.EventResultsViewed, viewerID, electionID, "granted", string(election.Status))
	}

	return tally.Compute(election, candidates, rows), nil
}

// CompletedResults returns the tally of every completed election, most
// recently ended first.
func (s *Service) CompletedResults(ctx context.Context) (_ []*tally.Results, err error) {
	ctx, span := s.tracer.Start(ctx, "voting.CompletedResults")
	defer func() { endSpan(span, err) }()

	elections, err := s.elections.ListByStatus(ctx, emodels.StatusCompleted)
	if err != nil {
		return nil, storeError(ctx, err, "elections")
	}
	sort.SliceStable(elections, func(i, j int) bool {
		return elections[i].EndAt.After(elections[j].EndAt)
	})

	out := make([]*tally.Results, len(elections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(activeElectionConcurrency)
	for i, e := range elections {
		g.Go(func() error {
			candidates, err := s.elections.FindCandidates(gctx, e.ID)
			if err != nil {
				return storeError(gctx, err, "candidates")
			}
			rows, err := s.elections.Results(gctx, e.ID)
			if err != nil {
				return storeError(gctx, err, "results")
			}
			out[i] = tally.Compute(e, candidates, rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) loadTally(ctx context.Context, electionID id.ElectionID) (*emodels.Election, []*emodels.Candidate, []emodels.ResultEntry, error) {
	var (
		election   *emodels.Election
		candidates []*emodels.Candidate
		rows       []emodels.ResultEntry
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
		c, err := s.elections.FindCandidates(gctx, electionID)
		if err != nil {
			return storeError(gctx, err, "candidates")
		}
		candidates = c
		return nil
	})
	g.Go(func() error {
		r, err := s.elections.Results(gctx, electionID)
		if err != nil {
			return storeError(gctx, err, "results")
		}
		rows = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return election, candidates, rows, nil
}

// History lists the participant's vote receipts, newest first.
func (s *Service) History(ctx context.Context, participantID id.ParticipantID) ([]emodels.VoteRecord, error) {
	records, err := s.elections.History(ctx, participantID)
	if err != nil {
		return nil, storeError(ctx, err, "vote history")
	}
	return records, nil
}

// Reconcile overwrites each candidate counter with the authoritative tally
// count. Running it twice changes nothing the second time.
func (s *Service) Reconcile(ctx context.Context, electionID id.ElectionID) (_ *models.ReconcileReport, err error) {
	ctx, span := s.tracer.Start(ctx, "voting.Reconcile")
	span.SetAttributes(attribute.String("election.id", electionID.String()))
	defer func() { endSpan(span, err) }()

	_, candidates, rows, err := s.loadTally(ctx, electionID)
	if err != nil {
		return nil, err
	}
	voted, err := s.elections.CountVoted(ctx, electionID)
	if err != nil {
		return nil, storeError(ctx, err, "voter entries")
	}

	counts := make(map[id.CandidateID]int64, len(rows))
	var total int64
	for _, r := range rows {
		counts[r.CandidateID] += r.VoteCount
		total += r.VoteCount
	}
	if total != voted {
		s.logger.ErrorContext(ctx, "tally total differs from voters who voted",
			"code", string(dErrors.CodeInvariantViolation),
			"election_id", electionID.String(),
			"tally_total", total,
			"voted", voted,
		)
		s.metrics.IncInvariantViolation("tally_total")
		s.emitAudit(ctx, audit.EventInvariantViolation, requestcontext.ParticipantID(ctx), electionID, "detected",
			fmt.Sprintf("tally_total=%d voted=%d", total, voted))
	}

	report := &models.ReconcileReport{
		ElectionID:   electionID,
		Checked:      len(candidates),
		ReconciledAt: requestcontext.Now(ctx),
	}
	for _, c := range candidates {
		want := counts[c.ID]
		if c.VoteCount == want {
			continue
		}
		if err := s.candidates.SetVoteCount(ctx, c.ID, want); err != nil {
			return nil, storeError(ctx, err, "candidate")
		}
		report.Diverged = append(report.Diverged, models.CandidateDrift{CandidateID: c.ID, Before: c.VoteCount, After: want})
	}

	s.metrics.AddCandidatesRepaired(len(report.Diverged))
	if len(report.Diverged) > 0 {
		s.emitAudit(ctx, audit.EventTallyReconciled, requestcontext.ParticipantID(ctx), electionID, "repaired",
			fmt.Sprintf("%d candidate counters", len(report.Diverged)))
	}
	return report, nil
}

// ReconcileAll reconciles every active and completed election. It keeps
// going past individual failures and returns them joined.
func (s *Service) ReconcileAll(ctx context.Context) ([]*models.ReconcileReport, error) {
	elections, err := s.elections.ListByStatus(ctx, emodels.StatusActive, emodels.StatusCompleted)
	if err != nil {
		return nil, storeError(ctx, err, "elections")
	}
	var (
		reports []*models.ReconcileReport
		errs    []error
	)
	for _, e := range elections {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		report, err := s.Reconcile(ctx, e.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("election %s: %w", e.ID, err))
			continue
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

// IsAdmin reports whether the participant holds the admin role.
func (s *Service) IsAdmin(ctx context.Context, participantID id.ParticipantID) (bool, error) {
	p, err := s.participants.FindByID(ctx, participantID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(ctx, err, "participant")
	}
	return p.Role == imodels.RoleAdmin, nil
}
