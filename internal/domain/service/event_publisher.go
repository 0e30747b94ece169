package service

import (
	"context"
	"time"
)

// Property event types.
const (
	EventPropertyUpdated = "updated"
	EventStatusChanged   = "status_changed"
	EventPropertyRemoved = "removed"
)

// PropertyEvent represents a portfolio change to be fanned out to downstream
// consumers (alerting, audit, cache invalidation)
type PropertyEvent struct {
	RequestID      string    `json:"request_id,omitempty"` // For distributed tracing
	PropertyID     string    `json:"property_id"`
	Name           string    `json:"name"`
	EventType      string    `json:"event_type"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishPropertyEvent publishes a portfolio change for async processing
	PublishPropertyEvent(ctx context.Context, event *PropertyEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
