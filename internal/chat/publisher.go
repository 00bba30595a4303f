// Package chat mirrors overdue alerts to a Kafka topic consumed by the ops
// chat bridge. Delivery here is best-effort; the notification log on the data
// service stays the source of truth.
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"deskwatch/internal/notify"
)

// Publisher produces ChatAlert payloads to one topic.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// NewPublisher connects to the given brokers.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &Publisher{client: client, topic: topic}, nil
}

// Publish produces one alert, keyed by loan ID so retries for the same loan
// stay in order within a partition.
func (p *Publisher) Publish(ctx context.Context, alert notify.ChatAlert) error {
	value, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode chat alert: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(alert.LoanID),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce chat alert: %w", err)
	}
	return nil
}

// Close flushes and releases the Kafka client.
func (p *Publisher) Close() {
	p.client.Close()
}
