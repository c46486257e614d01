// Package worker persists buffered audit events off the request path.
package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	audit "votecast/pkg/platform/audit"
)

const appendTimeout = 5 * time.Second

// Worker appends events from inbox to the store until inbox is closed.
type Worker struct {
	store   audit.Store
	inbox   <-chan audit.Event
	logger  *slog.Logger
	dropped atomic.Int64
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox. A failed append is logged and counted, never
// retried, so a slow audit store cannot back up into vote casting. Events
// already buffered are still written after ctx ends.
func (w *Worker) Run(ctx context.Context) error {
	for event := range w.inbox {
		w.append(context.WithoutCancel(ctx), event)
	}
	return nil
}

// Dropped is the number of events the store rejected.
func (w *Worker) Dropped() int64 {
	return w.dropped.Load()
}

func (w *Worker) append(ctx context.Context, event audit.Event) {
	ctx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()
	if err := w.store.Append(ctx, event); err != nil {
		w.dropped.Add(1)
		w.logger.WarnContext(ctx, "audit event dropped",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}
