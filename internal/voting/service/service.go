// Package service coordinates eligibility, one-time codes, ballot recording
// and tally reads.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"votecast/internal/voting/metrics"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	audit "votecast/pkg/platform/audit"
	"votecast/pkg/platform/sentinel"
	"votecast/pkg/requestcontext"
)

const (
	defaultCodeTTL = 10 * time.Minute
	codeSubject    = "Your Voting OTP"
	issuedMessage  = "OTP sent to your email"
)

// Config holds the voting policy knobs.
type Config struct {
	CodeTTL time.Duration
	// AllowUnverifiedTxRef accepts any non-empty transaction reference.
	AllowUnverifiedTxRef bool
	// ExposeCodes echoes issued codes in IssueCode results.
	ExposeCodes bool
	// HashCost is the bcrypt cost for stored codes.
	HashCost int
}

func DefaultConfig() Config {
	return Config{CodeTTL: defaultCodeTTL, HashCost: bcrypt.DefaultCost}
}

// Stores groups the persistence dependencies. All are required.
type Stores struct {
	Participants ParticipantStore
	Elections    ElectionStore
	Candidates   CandidateStore
	Codes        CodeStore
	Tx           VoteTx
}

type Service struct {
	participants ParticipantStore
	elections    ElectionStore
	candidates   CandidateStore
	codes        CodeStore
	tx           VoteTx
	notifier     Notifier

	throttle       Throttle
	auditPublisher AuditPublisher
	reconcileQueue ReconcileQueue
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	cfg            Config
	generateCode   func() (string, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithThrottle(t Throttle) Option {
	return func(s *Service) {
		s.throttle = t
	}
}

func WithReconcileQueue(q ReconcileQueue) Option {
	return func(s *Service) {
		s.reconcileQueue = q
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithConfig replaces the policy. A zero CodeTTL or HashCost keeps the default.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		if cfg.CodeTTL <= 0 {
			cfg.CodeTTL = defaultCodeTTL
		}
		if cfg.HashCost == 0 {
			cfg.HashCost = bcrypt.DefaultCost
		}
		s.cfg = cfg
	}
}

// WithCodeGenerator overrides the random code source.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		if gen != nil {
			s.generateCode = gen
		}
	}
}

func New(stores Stores, notifier Notifier, opts ...Option) (*Service, error) {
	switch {
	case stores.Participants == nil:
		return nil, errors.New("participant store is required")
	case stores.Elections == nil:
		return nil, errors.New("election store is required")
	case stores.Candidates == nil:
		return nil, errors.New("candidate store is required")
	case stores.Codes == nil:
		return nil, errors.New("code store is required")
	case stores.Tx == nil:
		return nil, errors.New("vote transaction runner is required")
	case notifier == nil:
		return nil, errors.New("notifier is required")
	}

	svc := &Service{
		participants: stores.Participants,
		elections:    stores.Elections,
		candidates:   stores.Candidates,
		codes:        stores.Codes,
		tx:           stores.Tx,
		notifier:     notifier,
		logger:       slog.Default(),
		tracer:       otel.Tracer("votecast/voting"),
		cfg:          DefaultConfig(),
		generateCode: randomCode,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// randomCode returns a uniformly distributed code in [100000, 999999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// storeError maps store failures onto client-facing codes. what names the
// entity for not-found messages.
func storeError(ctx context.Context, err error, what string) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "timed out loading "+what)
	default:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load "+what)
	}
}

// emitAudit logs the event and forwards it to the publisher. Publisher
// failures are logged and never fail the operation.
func (s *Service) emitAudit(ctx context.Context, event audit.AuditEvent, participantID id.ParticipantID, electionID id.ElectionID, decision, reason string) {
	e := audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		ParticipantID: participantID,
		Action:        string(event),
		Decision:      decision,
		Reason:        reason,
		RequestID:     requestcontext.RequestID(ctx),
		ClientIP:      requestcontext.ClientIP(ctx),
		ClientInfo:    audit.ClientInfo(requestcontext.UserAgent(ctx)),
	}
	if !electionID.IsNil() {
		e.Subject = "election:" + electionID.String()
	}
	if actor := requestcontext.ParticipantID(ctx); !actor.IsNil() && actor != participantID {
		e.ActorID = actor.String()
	}

	s.logger.InfoContext(ctx, string(event),
		"log_type", "audit",
		"request_id", e.RequestID,
		"participant_id", participantID.String(),
		"subject", e.Subject,
		"decision", decision,
		"reason", reason,
	)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}
