package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSweeper struct {
	calls atomic.Int32
	n     int
	err   error
}

func (f *fakeSweeper) SweepExpiredCodes(context.Context) (int, error) {
	f.calls.Add(1)
	return f.n, f.err
}

type fakePruner struct{ calls atomic.Int32 }

func (f *fakePruner) Sweep() int {
	f.calls.Add(1)
	return 0
}

func TestSweeper_RunOnce(t *testing.T) {
	codes := &fakeSweeper{n: 3}
	pruner := &fakePruner{}
	s := NewSweeper(codes, time.Minute, discardLogger(), pruner)

	assert.Equal(t, 3, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), pruner.calls.Load())

	codes.err = errors.New("redis down")
	assert.Equal(t, 3, s.RunOnce(context.Background()), "failures are logged, not fatal")
	assert.Equal(t, int32(2), pruner.calls.Load())
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	codes := &fakeSweeper{}
	s := NewSweeper(codes, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return codes.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

type fakeReconciler struct {
	one chan id.ElectionID
	all atomic.Int32
}

func (f *fakeReconciler) Reconcile(_ context.Context, electionID id.ElectionID) (*models.ReconcileReport, error) {
	f.one <- electionID
	return &models.ReconcileReport{ElectionID: electionID}, nil
}

func (f *fakeReconciler) ReconcileAll(context.Context) ([]*models.ReconcileReport, error) {
	f.all.Add(1)
	return nil, nil
}

func TestQueue_EnqueueIsNonBlocking(t *testing.T) {
	q := NewQueue(2)
	assert.True(t, q.Enqueue(id.NewElectionID()))
	assert.True(t, q.Enqueue(id.NewElectionID()))
	assert.False(t, q.Enqueue(id.NewElectionID()), "full queue drops")
	assert.Equal(t, 2, q.Len())
}

func TestReconcileWorker_DrainsQueue(t *testing.T) {
	target := &fakeReconciler{one: make(chan id.ElectionID, 1)}
	q := NewQueue(4)
	w := NewReconcileWorker(target, q, 0, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	electionID := id.NewElectionID()
	require.True(t, q.Enqueue(electionID))
	select {
	case got := <-target.one:
		assert.Equal(t, electionID, got)
	case <-time.After(time.Second):
		t.Fatal("queued election was not reconciled")
	}
	assert.Zero(t, target.all.Load(), "no periodic sweep without an interval")
}

func TestReconcileWorker_PeriodicSweep(t *testing.T) {
	target := &fakeReconciler{one: make(chan id.ElectionID, 1)}
	w := NewReconcileWorker(target, NewQueue(0), 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, func() bool { return target.all.Load() >= 2 }, time.Second, time.Millisecond)
}
