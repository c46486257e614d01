// Package handler exposes the voting service over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	emodels "votecast/internal/election/models"
	"votecast/internal/voting/models"
	"votecast/internal/voting/tally"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	"votecast/pkg/platform/httputil"
	"votecast/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the subset of the voting service the HTTP layer calls.
type Service interface {
	IssueCode(ctx context.Context, req models.IssueCodeRequest) (*models.IssueCodeResult, error)
	VerifyCode(ctx context.Context, req models.VerifyCodeRequest) (*models.PendingCode, error)
	CastVote(ctx context.Context, req models.CastVoteRequest) (*models.CastVoteResult, error)
	History(ctx context.Context, participantID id.ParticipantID) ([]emodels.VoteRecord, error)
	ActiveElections(ctx context.Context, participantID id.ParticipantID) ([]models.ActiveElection, error)
	GetResults(ctx context.Context, viewerID id.ParticipantID, electionID id.ElectionID) (*tally.Results, error)
	CompletedResults(ctx context.Context) ([]*tally.Results, error)
	Reconcile(ctx context.Context, electionID id.ElectionID) (*models.ReconcileReport, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the participant routes. Callers wrap r with the auth
// middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/votes/request-otp", h.handleRequestOTP)
	r.Post("/votes/verify", h.handleVerifyOTP)
	r.Post("/votes/cast", h.handleCastVote)
	r.Get("/votes/history", h.handleHistory)
	r.Get("/elections/active", h.handleActiveElections)
	r.Get("/elections/results", h.handleCompletedResults)
	r.Get("/elections/{id}/results", h.handleResults)
}

// RegisterAdmin mounts the operator routes. Callers wrap r with the admin
// token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/elections/{id}/reconcile", h.handleReconcile)
}

func (h *Handler) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	participantID, ok := h.requireParticipant(ctx, w)
	if !ok {
		return
	}
	body, ok := httputil.DecodeAndPrepare[RequestOTPBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.IssueCode(ctx, body.toRequest(participantID))
	if err != nil {
		h.writeServiceError(ctx, w, "request otp", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RequestOTPResponse{
		Success:   res.Success,
		Message:   res.Message,
		ExpiresAt: res.ExpiresAt,
		DevCode:   res.DevCode,
	})
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	participantID, ok := h.requireParticipant(ctx, w)
	if !ok {
		return
	}
	body, ok := httputil.DecodeAndPrepare[VerifyOTPBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if _, err := h.service.VerifyCode(ctx, body.toRequest(participantID)); err != nil {
		h.writeServiceError(ctx, w, "verify otp", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, VerifyOTPResponse{Success: true, Message: "OTP verified"})
}

func (h *Handler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	participantID, ok := h.requireParticipant(ctx, w)
	if !ok {
		return
	}
	body, ok := httputil.DecodeAndPrepare[CastVoteBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.CastVote(ctx, body.toRequest(participantID))
	if err != nil {
		h.writeServiceError(ctx, w, "cast vote", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CastVoteResponse{
		Success:         res.Success,
		Message:         "Vote cast successfully",
		TransactionHash: res.TransactionHash,
		VotedAt:         res.VotedAt,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID, ok := h.requireParticipant(ctx, w)
	if !ok {
		return
	}
	records, err := h.service.History(ctx, participantID)
	if err != nil {
		h.writeServiceError(ctx, w, "vote history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHistoryResponse(records))
}

func (h *Handler) handleActiveElections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID, ok := h.requireParticipant(ctx, w)
	if !ok {
		return
	}
	list, err := h.service.ActiveElections(ctx, participantID)
	if err != nil {
		h.writeServiceError(ctx, w, "active elections", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toActiveElectionsResponse(list))
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	participantID, ok := h.requireParticipant(ctx, w)
	if !ok {
		return
	}
	electionID, err := id.ParseElectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.service.GetResults(ctx, participantID, electionID)
	if err != nil {
		h.writeServiceError(ctx, w, "election results", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResultsResponse(res))
}

func (h *Handler) handleCompletedResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.requireParticipant(ctx, w); !ok {
		return
	}
	list, err := h.service.CompletedResults(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "completed results", err)
		return
	}
	out := CompletedResultsResponse{Elections: make([]ResultsResponse, 0, len(list))}
	for _, res := range list {
		out.Elections = append(out.Elections, toResultsResponse(res))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	electionID, err := id.ParseElectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, err := h.service.Reconcile(ctx, electionID)
	if err != nil {
		h.writeServiceError(ctx, w, "reconcile", err)
		return
	}
	h.logger.InfoContext(ctx, "election reconciled",
		"request_id", requestcontext.RequestID(ctx),
		"election_id", electionID.String(),
		"diverged", len(report.Diverged),
	)
	httputil.WriteJSON(w, http.StatusOK, toReconcileResponse(report))
}

func (h *Handler) requireParticipant(ctx context.Context, w http.ResponseWriter) (id.ParticipantID, bool) {
	participantID := requestcontext.ParticipantID(ctx)
	if participantID.IsNil() {
		h.logger.ErrorContext(ctx, "participant missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.ParticipantID{}, false
	}
	return participantID, true
}

// writeServiceError logs client errors at warn and server errors at error.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := dErrors.CodeOf(err)
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"participant_id", requestcontext.ParticipantID(ctx).String(),
		"code", string(code),
		"error", err,
	}
	if httputil.StatusFor(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, op+" failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, op+" rejected", attrs...)
	}
	httputil.WriteError(w, err)
}
