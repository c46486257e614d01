package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "votecast/pkg/domain"
	audit "votecast/pkg/platform/audit"
)

type flakyStore struct {
	failOn string
	events []audit.Event
}

func (s *flakyStore) Append(_ context.Context, event audit.Event) error {
	if event.Action == s.failOn {
		return errors.New("disk full")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *flakyStore) ListByParticipant(context.Context, id.ParticipantID) ([]audit.Event, error) {
	return s.events, nil
}

func TestWorker_DrainsUntilClosed(t *testing.T) {
	store := &flakyStore{failOn: "code_issued"}
	inbox := make(chan audit.Event, 3)
	inbox <- audit.Event{Action: "vote_cast"}
	inbox <- audit.Event{Action: "code_issued"}
	inbox <- audit.Event{Action: "results_viewed"}
	close(inbox)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := NewWorker(store, inbox, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, w.Run(ctx), "buffered events are written even after cancel")

	require.Len(t, store.events, 2)
	assert.Equal(t, "vote_cast", store.events[0].Action)
	assert.Equal(t, "results_viewed", store.events[1].Action)
	assert.Equal(t, int64(1), w.Dropped())
}
