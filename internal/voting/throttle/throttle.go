// Package throttle limits how often a participant may request a new code.
package throttle

import (
	"context"
	"sync"
	"time"
)

// Result describes a throttle decision.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// SlidingWindow admits at most limit events per key within any window-long
// interval. State is per process.
type SlidingWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string][]time.Time
	now     func() time.Time
}

type Option func(*SlidingWindow)

func WithClock(now func() time.Time) Option {
	return func(s *SlidingWindow) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a throttle. A non-positive limit disables throttling.
func New(limit int, window time.Duration, opts ...Option) *SlidingWindow {
	s := &SlidingWindow{
		limit:   limit,
		window:  window,
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow records an event for key if it fits in the window.
func (s *SlidingWindow) Allow(_ context.Context, key string) (Result, error) {
	if s.limit <= 0 {
		return Result{Allowed: true, Remaining: -1}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	timestamps := prune(s.buckets[key], now.Add(-s.window))

	if len(timestamps) >= s.limit {
		s.buckets[key] = timestamps
		return Result{Allowed: false, ResetAt: timestamps[0].Add(s.window)}, nil
	}

	timestamps = append(timestamps, now)
	s.buckets[key] = timestamps
	return Result{
		Allowed:   true,
		Remaining: s.limit - len(timestamps),
		ResetAt:   timestamps[0].Add(s.window),
	}, nil
}

// Sweep drops keys with no events inside the window.
func (s *SlidingWindow) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.window)
	removed := 0
	for key, timestamps := range s.buckets {
		if len(prune(timestamps, cutoff)) == 0 {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed
}

// prune drops timestamps at or before cutoff. Timestamps are ascending.
func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(timestamps); i++ {
		if timestamps[i].After(cutoff) {
			break
		}
	}
	return timestamps[i:]
}
