// Package sqlstore persists audit events in the audit_events table.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"votecast/internal/platform/database"
	id "votecast/pkg/domain"
	audit "votecast/pkg/platform/audit"
	txcontext "votecast/pkg/platform/tx"
)

// Store implements audit.Store. Appends join an ambient transaction when one
// is present in ctx, so a vote and its audit row commit together.
type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) execer(ctx context.Context) txcontext.Executor {
	return txcontext.Execer(ctx, s.db.DB)
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}

	var participantID string
	if !event.ParticipantID.IsNil() {
		participantID = event.ParticipantID.String()
	}

	query := s.db.Dialect.Rebind(`
		INSERT INTO audit_events (
			id, category, occurred_at, participant_id, subject, action,
			decision, reason, request_id, client_ip, client_info, actor_id
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.NewString(),
		string(category),
		database.ToMillis(event.Timestamp),
		participantID,
		event.Subject,
		event.Action,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ClientIP,
		event.ClientInfo,
		event.ActorID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByParticipant returns a participant's events, newest first.
func (s *Store) ListByParticipant(ctx context.Context, participantID id.ParticipantID) ([]audit.Event, error) {
	return s.list(ctx, `WHERE participant_id = ? ORDER BY occurred_at DESC`, participantID.String())
}

// ListByAction returns every event with the given action, oldest first.
func (s *Store) ListByAction(ctx context.Context, action audit.AuditEvent) ([]audit.Event, error) {
	return s.list(ctx, `WHERE action = ? ORDER BY occurred_at ASC`, string(action))
}

func (s *Store) list(ctx context.Context, where string, args ...any) ([]audit.Event, error) {
	query := s.db.Dialect.Rebind(`
		SELECT category, occurred_at, participant_id, subject, action,
			decision, reason, request_id, client_ip, client_info, actor_id
		FROM audit_events ` + where)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			e             audit.Event
			category      string
			occurredAt    int64
			participantID string
		)
		if err := rows.Scan(&category, &occurredAt, &participantID, &e.Subject, &e.Action,
			&e.Decision, &e.Reason, &e.RequestID, &e.ClientIP, &e.ClientInfo, &e.ActorID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.EventCategory(category)
		e.Timestamp = database.FromMillis(occurredAt)
		if participantID != "" {
			pid, err := id.ParseParticipantID(participantID)
			if err != nil {
				return nil, fmt.Errorf("stored participant id %q: %w", participantID, err)
			}
			e.ParticipantID = pid
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
