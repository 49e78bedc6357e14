package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChannelPublisher(t *testing.T) *ChannelEventPublisher {
	t.Helper()
	publisher := NewChannelEventPublisher("block-events", slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = publisher.Close() })
	return publisher
}

func TestChannelEventPublisher_DeliversToSubscriber(t *testing.T) {
	publisher := newChannelPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	event := NewEvent(SettingsSaved, SettingsSavedEvent{Location: "loc", SavedBy: "u-tutor"})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, SettingsSaved, msg.Metadata.Get("event_type"))

		var decoded Event
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, event.Type, decoded.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestChannelEventPublisher_DoesNotRetainEvents(t *testing.T) {
	publisher := newChannelPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := 0; i < 1000; i++ {
		require.NoError(t, publisher.Publish(ctx, NewEvent(ScoreUpdated, ScoreUpdatedEvent{Location: "loc", Points: 0.5})))
	}

	messages, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		t.Fatalf("unexpected replay of event %s", msg.UUID)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestChannelEventPublisher_PublishAfterClose(t *testing.T) {
	publisher := newChannelPublisher(t)
	require.NoError(t, publisher.Close())

	err := publisher.Publish(context.Background(), NewEvent(UserStateReset, UserStateResetEvent{Location: "loc"}))
	assert.Error(t, err)
}
