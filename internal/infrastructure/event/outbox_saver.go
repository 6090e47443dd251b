package event

import (
	"context"

	"github.com/pharmstore/backend/internal/domain/shared"
)

// OutboxSaver writes domain events to the outbox through the repository it
// was constructed with. Bound to a transactional repository it gives the
// transactional outbox guarantee: events commit with the aggregate change
// and are delivered after commit by the processor.
type OutboxSaver struct {
	repo       shared.OutboxRepository
	serializer EventSerializer
}

// NewOutboxSaver creates an outbox saver
func NewOutboxSaver(repo shared.OutboxRepository, serializer EventSerializer) *OutboxSaver {
	return &OutboxSaver{
		repo:       repo,
		serializer: serializer,
	}
}

// SaveEvents serializes and persists events as pending outbox entries
func (s *OutboxSaver) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := s.serializer.Serialize(event)
		if err != nil {
			return err
		}
		entries = append(entries, shared.NewOutboxEntry(event, payload))
	}

	return s.repo.Save(ctx, entries...)
}
