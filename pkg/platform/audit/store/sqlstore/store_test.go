package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votecast/internal/platform/database"
	id "votecast/pkg/domain"
	audit "votecast/pkg/platform/audit"
	txcontext "votecast/pkg/platform/tx"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "audit.db"), database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := New(newTestDB(t))
	participantID := id.NewParticipantID()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, audit.Event{
		Timestamp:     base,
		ParticipantID: participantID,
		Subject:       "election:e1",
		Action:        string(audit.EventCodeIssued),
		ClientInfo:    "Chrome/Linux",
	}))
	require.NoError(t, store.Append(ctx, audit.Event{
		Timestamp:     base.Add(time.Minute),
		ParticipantID: participantID,
		Subject:       "election:e1",
		Action:        string(audit.EventVoteCast),
		Decision:      "recorded",
	}))
	require.NoError(t, store.Append(ctx, audit.Event{
		Timestamp: base.Add(2 * time.Minute),
		Action:    string(audit.EventTallyReconciled),
		ActorID:   "admin",
	}))

	events, err := store.ListByParticipant(ctx, participantID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, string(audit.EventVoteCast), events[0].Action, "newest first")
	assert.Equal(t, audit.CategoryCompliance, events[0].Category, "category derived from action")
	assert.Equal(t, base.Add(time.Minute), events[0].Timestamp)
	assert.Equal(t, "Chrome/Linux", events[1].ClientInfo)

	reconciled, err := store.ListByAction(ctx, audit.EventTallyReconciled)
	require.NoError(t, err)
	require.Len(t, reconciled, 1)
	assert.True(t, reconciled[0].ParticipantID.IsNil())
	assert.Equal(t, "admin", reconciled[0].ActorID)
}

func TestStore_AppendJoinsAmbientTx(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := New(db)
	participantID := id.NewParticipantID()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.Append(txcontext.WithTx(ctx, tx), audit.Event{
		Timestamp:     time.Now(),
		ParticipantID: participantID,
		Action:        string(audit.EventVoteCast),
	}))
	require.NoError(t, tx.Rollback())

	events, err := store.ListByParticipant(ctx, participantID)
	require.NoError(t, err)
	assert.Empty(t, events, "rolled back append must not be visible")
}
