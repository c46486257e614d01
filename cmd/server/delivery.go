package main

import (
	"context"
	"fmt"
	"log/slog"

	"votecast/internal/platform/config"
	"votecast/internal/voting/delivery"
	"votecast/pkg/platform/circuit"
)

const (
	deliveryTopicPartitions  = 3
	deliveryTopicReplication = 1
)

// notifiers owns the delivery transports so they can be pinged and closed.
type notifiers struct {
	delivery.Notifier
	kafka []*delivery.KafkaNotifier
}

func buildNotifiers(ctx context.Context, cfg config.DeliveryConfig, logger *slog.Logger) (*notifiers, error) {
	n := &notifiers{}
	primary, err := n.build(ctx, cfg.Driver, cfg, logger)
	if err != nil {
		n.Close()
		return nil, err
	}
	n.Notifier = primary
	if cfg.Fallback == "" || cfg.Fallback == cfg.Driver {
		return n, nil
	}

	fallback, err := n.build(ctx, cfg.Fallback, cfg, logger)
	if err != nil {
		n.Close()
		return nil, err
	}
	breaker := circuit.New("delivery-"+primary.Name(),
		circuit.WithFailureThreshold(cfg.FailureThreshold),
		circuit.WithSuccessThreshold(cfg.SuccessThreshold),
		circuit.WithCooldown(cfg.BreakerCooldown),
	)
	n.Notifier = delivery.NewFailoverNotifier(primary, fallback, breaker, delivery.WithFailoverLogger(logger))
	logger.Info("code delivery configured", "primary", primary.Name(), "fallback", fallback.Name())
	return n, nil
}

func (n *notifiers) build(ctx context.Context, driver string, cfg config.DeliveryConfig, logger *slog.Logger) (delivery.Notifier, error) {
	switch driver {
	case "", "log":
		return delivery.NewLogNotifier(logger), nil
	case "smtp":
		return delivery.NewSMTPNotifier(delivery.SMTPConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			From:       cfg.SMTPFrom,
			Timeout:    cfg.Timeout,
			RequireTLS: cfg.SMTPRequireTLS,
		})
	case "kafka":
		k, err := delivery.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		if err := k.EnsureTopic(ctx, deliveryTopicPartitions, deliveryTopicReplication); err != nil {
			logger.Warn("could not ensure delivery topic", "topic", cfg.KafkaTopic, "error", err)
		}
		n.kafka = append(n.kafka, k)
		return k, nil
	default:
		return nil, fmt.Errorf("unsupported delivery driver %q", driver)
	}
}

func (n *notifiers) Health(ctx context.Context) map[string]error {
	checks := map[string]error{}
	for _, k := range n.kafka {
		checks["kafka"] = k.Ping(ctx)
	}
	return checks
}

func (n *notifiers) Close() {
	for _, k := range n.kafka {
		k.Close()
	}
}
