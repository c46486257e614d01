package worker

import (
	"context"
	"log/slog"
	"time"

	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
)

const defaultQueueSize = 256

// Reconciler repairs candidate counters from the authoritative tally.
type Reconciler interface {
	Reconcile(ctx context.Context, electionID id.ElectionID) (*models.ReconcileReport, error)
	ReconcileAll(ctx context.Context) ([]*models.ReconcileReport, error)
}

// Queue is a bounded, non-blocking queue of elections awaiting repair.
type Queue struct {
	ch chan id.ElectionID
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{ch: make(chan id.ElectionID, size)}
}

// Enqueue reports false when the queue is full. The periodic full sweep
// picks up anything dropped here.
func (q *Queue) Enqueue(electionID id.ElectionID) bool {
	select {
	case q.ch <- electionID:
		return true
	default:
		return false
	}
}

func (q *Queue) Len() int {
	return len(q.ch)
}

type ReconcileWorker struct {
	target   Reconciler
	queue    *Queue
	interval time.Duration
	logger   *slog.Logger
}

func NewReconcileWorker(target Reconciler, queue *Queue, interval time.Duration, logger *slog.Logger) *ReconcileWorker {
	return &ReconcileWorker{target: target, queue: queue, interval: interval, logger: logger}
}

// Run drains the queue and, when interval is positive, reconciles every
// active and completed election on each tick.
func (w *ReconcileWorker) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case electionID := <-w.queue.ch:
			w.reconcileOne(ctx, electionID)
		case <-tick:
			w.reconcileAll(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *ReconcileWorker) reconcileOne(ctx context.Context, electionID id.ElectionID) {
	report, err := w.target.Reconcile(ctx, electionID)
	if err != nil {
		w.logger.ErrorContext(ctx, "reconcile failed", "election_id", electionID.String(), "error", err)
		return
	}
	if len(report.Diverged) > 0 {
		w.logger.InfoContext(ctx, "candidate counters repaired",
			"election_id", electionID.String(),
			"repaired", len(report.Diverged),
		)
	}
}

func (w *ReconcileWorker) reconcileAll(ctx context.Context) {
	reports, err := w.target.ReconcileAll(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "periodic reconcile incomplete", "error", err)
	}
	repaired := 0
	for _, r := range reports {
		repaired += len(r.Diverged)
	}
	if repaired > 0 {
		w.logger.InfoContext(ctx, "periodic reconcile repaired counters",
			"elections", len(reports),
			"repaired", repaired,
		)
	}
}
