package event

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
)

// EventSerializer converts domain events to and from outbox payloads
type EventSerializer interface {
	Serialize(event shared.DomainEvent) ([]byte, error)
	Deserialize(eventType string, payload []byte) (shared.DomainEvent, error)
}

// JSONEventSerializer serializes events as JSON. Deserialization requires
// the concrete event type to be registered; unknown types fail rather than
// silently producing a generic event.
type JSONEventSerializer struct {
	mu        sync.RWMutex
	factories map[string]func() shared.DomainEvent
}

// NewJSONEventSerializer creates a serializer with all known event types
// registered
func NewJSONEventSerializer() *JSONEventSerializer {
	s := &JSONEventSerializer{
		factories: make(map[string]func() shared.DomainEvent),
	}
	s.Register(receiving.EventTypeGRNCompleted, func() shared.DomainEvent {
		return &receiving.GRNCompletedEvent{}
	})
	return s
}

// Register adds a factory for an event type
func (s *JSONEventSerializer) Register(eventType string, factory func() shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[eventType] = factory
}

// Serialize encodes an event as JSON
func (s *JSONEventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event %s: %w", event.EventType(), err)
	}
	return payload, nil
}

// Deserialize decodes a payload into its registered concrete event type
func (s *JSONEventSerializer) Deserialize(eventType string, payload []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	factory, ok := s.factories[eventType]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no event type registered for %q", eventType)
	}

	event := factory()
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, fmt.Errorf("failed to deserialize event %s: %w", eventType, err)
	}
	return event, nil
}
