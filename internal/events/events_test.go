package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(UserStateReset, UserStateResetEvent{Location: "loc", Username: "alice"})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, UserStateReset, event.Type)
	assert.Equal(t, "gradable-block-service", event.Source)
	assert.Equal(t, "1.0", event.Version)
	assert.False(t, event.Timestamp.IsZero())
}

func TestToMessage(t *testing.T) {
	event := NewEvent(ScoreUpdated, ScoreUpdatedEvent{Location: "loc", Points: 0.5})

	msg, err := toMessage(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, ScoreUpdated, msg.Metadata.Get("event_type"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, ScoreUpdated, decoded["type"])
	assert.Equal(t, 0.5, decoded["data"].(map[string]interface{})["points"])
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, NewEvent(SettingsSaved, nil)))
	require.NoError(t, publisher.Publish(ctx, NewEvent(UserStateReset, nil)))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, SettingsSaved, published[0].Type)
	assert.Equal(t, UserStateReset, published[1].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}
