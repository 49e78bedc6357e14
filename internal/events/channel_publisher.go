package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelEventPublisher delivers events to in-process subscribers only. It is
// used when no Kafka brokers are configured. Messages are not persisted, so
// events published with no subscriber are dropped.
type ChannelEventPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger *slog.Logger
}

func NewChannelEventPublisher(topic string, logger *slog.Logger) *ChannelEventPublisher {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
			Persistent:          false,
		},
		watermill.NewSlogLogger(logger),
	)

	return &ChannelEventPublisher{
		pubSub: pubSub,
		topic:  topic,
		logger: logger,
	}
}

func (p *ChannelEventPublisher) Publish(ctx context.Context, event *Event) error {
	msg, err := toMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.DebugContext(ctx, "Event published", "event_id", event.ID, "type", event.Type, "topic", p.topic)
	return nil
}

// Subscribe returns the messages published after the call. The channel closes
// when ctx is done or the publisher is closed.
func (p *ChannelEventPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, p.topic)
}

func (p *ChannelEventPublisher) Close() error {
	return p.pubSub.Close()
}
