package events

import (
	"context"
	"log/slog"
	"sync"
)

// MockEventPublisher records every event for assertions in tests. It never
// trims its history, so it is not meant for a running service.
type MockEventPublisher struct {
	mu     sync.RWMutex
	events []*Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	m.logger.DebugContext(ctx, "Event recorded", "event_id", event.ID, "type", event.Type)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of everything published so far
func (m *MockEventPublisher) GetPublishedEvents() []*Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
