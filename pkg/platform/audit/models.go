package audit

import (
	"context"
	"time"

	id "votecast/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so stores
// can apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers events that form the vote trail.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejected codes, races and integrity alarms.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity such as code issuance.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category      EventCategory
	Timestamp     time.Time
	ParticipantID id.ParticipantID
	// Subject names the resource acted on, usually "election:<id>".
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	ClientIP  string
	// ClientInfo is a coarse "browser/os" summary derived from the User-Agent.
	ClientInfo string
	// ActorID tracks who performed the action when different from ParticipantID.
	ActorID string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByParticipant(ctx context.Context, participantID id.ParticipantID) ([]Event, error)
}

type AuditEvent string

const (
	EventCodeIssued         AuditEvent = "code_issued"
	EventCodeDeliveryFailed AuditEvent = "code_delivery_failed"
	EventCodeRejected       AuditEvent = "code_rejected"
	EventVoteCast           AuditEvent = "vote_cast"
	EventVoteRejected       AuditEvent = "vote_rejected"
	EventInvariantViolation AuditEvent = "invariant_violation"
	EventTallyReconciled    AuditEvent = "tally_reconciled"
	EventResultsViewed      AuditEvent = "results_viewed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVoteCast:        CategoryCompliance,
	EventTallyReconciled: CategoryCompliance,

	EventCodeRejected:       CategorySecurity,
	EventVoteRejected:       CategorySecurity,
	EventInvariantViolation: CategorySecurity,
	EventCodeDeliveryFailed: CategorySecurity,

	EventCodeIssued:    CategoryOperations,
	EventResultsViewed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
