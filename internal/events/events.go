package events

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

const (
	EventSource  = "gradable-block-service"
	EventVersion = "1.0"
)

// Event types
const (
	UserStateReset = "block.user_state_reset"
	SettingsSaved  = "block.settings_saved"
	ScoreUpdated   = "block.score_updated"
)

// Event is the envelope of every message this service publishes
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps an envelope around data
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type UserStateResetEvent struct {
	Location  string `json:"location"`
	StudentID string `json:"student_id"`
	Username  string `json:"username"`
	ResetBy   string `json:"reset_by"`
}

type SettingsSavedEvent struct {
	Location    string   `json:"location"`
	DisplayName *string  `json:"display_name"`
	Weight      *float64 `json:"weight"`
	Attempts    *int     `json:"attempts"`
	SavedBy     string   `json:"saved_by"`
}

type ScoreUpdatedEvent struct {
	Location  string   `json:"location"`
	StudentID string   `json:"student_id"`
	Points    float64  `json:"points"`
	Grade     *float64 `json:"grade"`
	MaxGrade  *float64 `json:"max_grade"`
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
