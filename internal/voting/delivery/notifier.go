// Package delivery sends one-time codes to participants. The transport is
// pluggable: a log sink for development, SMTP, or a Kafka topic consumed by
// a mail relay, optionally fronted by a circuit-breaking failover.
package delivery

import (
	"context"
	"log/slog"

	"votecast/pkg/email"
)

// Notifier delivers a message to one recipient. Implementations must honor
// ctx cancellation.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
	Name() string
}

// LogNotifier writes deliveries to the log instead of sending them.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) Notify(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "code delivery",
		"to", email.Mask(to),
		"subject", subject,
	)
	n.logger.DebugContext(ctx, "code delivery body", "to", email.Mask(to), "body", body)
	return nil
}
