package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// KafkaEventPublisher publishes events to a single Kafka topic through watermill
type KafkaEventPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event *Event) error {
	msg, err := toMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.DebugContext(ctx, "Event published", "event_id", event.ID, "type", event.Type, "topic", p.topic)
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

func toMessage(ctx context.Context, event *Event) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)
	msg.SetContext(ctx)
	return msg, nil
}
