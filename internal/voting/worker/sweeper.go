// Package worker runs the background maintenance loops of the voting
// module.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// CodeSweeper removes expired pending codes.
type CodeSweeper interface {
	SweepExpiredCodes(ctx context.Context) (int, error)
}

// Pruner drops stale in-memory state such as throttle buckets.
type Pruner interface {
	Sweep() int
}

type Sweeper struct {
	codes    CodeSweeper
	pruners  []Pruner
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(codes CodeSweeper, interval time.Duration, logger *slog.Logger, pruners ...Pruner) *Sweeper {
	return &Sweeper{codes: codes, pruners: pruners, interval: interval, logger: logger}
}

// Run sweeps every interval until ctx is cancelled. Sweep failures are
// logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single sweep and returns the number of codes removed.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	n, err := s.codes.SweepExpiredCodes(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "code sweep failed", "error", err)
	} else if n > 0 {
		s.logger.DebugContext(ctx, "swept expired codes", "count", n)
	}
	for _, p := range s.pruners {
		p.Sweep()
	}
	return n
}
