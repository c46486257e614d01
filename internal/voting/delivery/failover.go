package delivery

import (
	"context"
	"log/slog"

	"votecast/pkg/platform/circuit"
)

// FailoverNotifier prefers the primary transport and switches to the
// fallback while the breaker is open. Once the cooldown elapses the primary
// is probed again; enough consecutive successes close the breaker.
type FailoverNotifier struct {
	primary  Notifier
	fallback Notifier
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

type FailoverOption func(*FailoverNotifier)

func WithFailoverLogger(logger *slog.Logger) FailoverOption {
	return func(f *FailoverNotifier) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func NewFailoverNotifier(primary, fallback Notifier, breaker *circuit.Breaker, opts ...FailoverOption) *FailoverNotifier {
	f := &FailoverNotifier{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FailoverNotifier) Name() string {
	return f.primary.Name() + "+" + f.fallback.Name()
}

func (f *FailoverNotifier) Notify(ctx context.Context, to, subject, body string) error {
	if !f.breaker.ShouldProbe() {
		return f.fallback.Notify(ctx, to, subject, body)
	}

	err := f.primary.Notify(ctx, to, subject, body)
	if err == nil {
		if _, change := f.breaker.RecordSuccess(); change.Closed {
			f.logger.InfoContext(ctx, "delivery breaker closed", "primary", f.primary.Name())
		}
		return nil
	}

	// A cancelled caller is not a transport failure.
	if ctx.Err() != nil {
		return err
	}

	_, change := f.breaker.RecordFailure()
	if change.Opened {
		f.logger.WarnContext(ctx, "delivery breaker opened",
			"primary", f.primary.Name(),
			"fallback", f.fallback.Name(),
			"error", err,
		)
	} else {
		f.logger.WarnContext(ctx, "primary delivery failed, using fallback",
			"primary", f.primary.Name(),
			"error", err,
		)
	}
	return f.fallback.Notify(ctx, to, subject, body)
}
