package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// deliveryRequest is the record value consumed by the mail relay.
type deliveryRequest struct {
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	RequestedAt time.Time `json:"requested_at"`
}

// KafkaNotifier publishes delivery requests to a topic. A produce is
// acknowledged by all in-sync replicas before Notify returns.
type KafkaNotifier struct {
	client *kgo.Client
	topic  string
	now    func() time.Time
}

// NewKafkaNotifier connects to the brokers. Close releases the client.
func NewKafkaNotifier(brokers []string, topic string, opts ...kgo.Opt) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchMaxBytes(1 << 20),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaNotifier{client: client, topic: topic, now: time.Now}, nil
}

func (n *KafkaNotifier) Name() string { return "kafka" }

// EnsureTopic creates the delivery topic if it does not exist.
func (n *KafkaNotifier) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	admin := kadm.NewClient(n.client)
	resp, err := admin.CreateTopics(ctx, partitions, replicationFactor, nil, n.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", n.topic, err)
	}
	for _, t := range resp {
		if t.Err != nil && !errors.Is(t.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", t.Topic, t.Err)
		}
	}
	return nil
}

func (n *KafkaNotifier) Notify(ctx context.Context, to, subject, body string) error {
	value, err := json.Marshal(deliveryRequest{
		To:          to,
		Subject:     subject,
		Body:        body,
		RequestedAt: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal delivery request: %w", err)
	}
	record := &kgo.Record{
		Topic: n.topic,
		Key:   []byte(to),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	if err := n.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce delivery request: %w", err)
	}
	return nil
}

// Ping checks broker reachability for /health.
func (n *KafkaNotifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx)
}

func (n *KafkaNotifier) Close() {
	n.client.Close()
}
