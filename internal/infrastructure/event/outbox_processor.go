package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/pharmstore/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OutboxProcessor polls the outbox and publishes pending entries to the
// event bus. Delivery is at-least-once: entries that fail are retried with
// exponential backoff until their retry budget is exhausted, then parked
// as dead. Sent entries older than the retention period are purged.
type OutboxProcessor struct {
	repo       shared.OutboxRepository
	publisher  shared.EventPublisher
	serializer EventSerializer
	cfg        config.OutboxConfig
	logger     *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewOutboxProcessor creates an outbox processor
func NewOutboxProcessor(repo shared.OutboxRepository, publisher shared.EventPublisher, serializer EventSerializer, cfg config.OutboxConfig, logger *zap.Logger) *OutboxProcessor {
	return &OutboxProcessor{
		repo:       repo,
		publisher:  publisher,
		serializer: serializer,
		cfg:        cfg,
		logger:     logger,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start runs the polling and cleanup loops until Stop is called
func (p *OutboxProcessor) Start(ctx context.Context) {
	go p.run(ctx)
}

// Stop signals the processor to stop and waits for the loop to exit
func (p *OutboxProcessor) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
	<-p.doneCh
}

func (p *OutboxProcessor) run(ctx context.Context) {
	defer close(p.doneCh)

	poll := time.NewTicker(p.cfg.PollInterval)
	defer poll.Stop()
	cleanup := time.NewTicker(p.cfg.CleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-poll.C:
			p.processBatch(ctx)
		case <-cleanup.C:
			p.cleanup(ctx)
		}
	}
}

func (p *OutboxProcessor) processBatch(ctx context.Context) {
	entries, err := p.collect(ctx)
	if err != nil {
		p.logger.Error("Failed to collect outbox entries", zap.Error(err))
		return
	}
	if len(entries) == 0 {
		return
	}

	ids := make([]uuid.UUID, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}
	claimed, err := p.repo.MarkProcessing(ctx, ids)
	if err != nil {
		p.logger.Error("Failed to claim outbox entries", zap.Error(err))
		return
	}

	for _, entry := range claimed {
		p.deliver(ctx, entry)
	}
}

func (p *OutboxProcessor) collect(ctx context.Context) ([]*shared.OutboxEntry, error) {
	pending, err := p.repo.FindPending(ctx, p.cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	if len(pending) >= p.cfg.BatchSize {
		return pending, nil
	}

	retryable, err := p.repo.FindRetryable(ctx, time.Now(), p.cfg.BatchSize-len(pending))
	if err != nil {
		return nil, err
	}
	return append(pending, retryable...), nil
}

func (p *OutboxProcessor) deliver(ctx context.Context, entry *shared.OutboxEntry) {
	event, err := p.serializer.Deserialize(entry.EventType, entry.Payload)
	if err != nil {
		p.fail(ctx, entry, err)
		return
	}

	if err := p.publisher.Publish(ctx, event); err != nil {
		p.fail(ctx, entry, err)
		return
	}

	entry.MarkSent()
	if err := p.repo.Update(ctx, entry); err != nil {
		p.logger.Error("Failed to mark outbox entry sent",
			zap.String("entry_id", entry.ID.String()),
			zap.Error(err))
	}
}

func (p *OutboxProcessor) fail(ctx context.Context, entry *shared.OutboxEntry, cause error) {
	entry.MarkFailed(cause.Error())
	if entry.IsDead() {
		p.logger.Error("Outbox entry exhausted retries",
			zap.String("entry_id", entry.ID.String()),
			zap.String("event_type", entry.EventType),
			zap.String("last_error", entry.LastError))
	}
	if err := p.repo.Update(ctx, entry); err != nil {
		p.logger.Error("Failed to update failed outbox entry",
			zap.String("entry_id", entry.ID.String()),
			zap.Error(err))
	}
}

func (p *OutboxProcessor) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-p.cfg.RetentionPeriod)
	deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("Outbox cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		p.logger.Info("Purged sent outbox entries", zap.Int64("count", deleted))
	}
}
