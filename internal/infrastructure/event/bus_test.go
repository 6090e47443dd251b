package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type capturingHandler struct {
	types  []string
	events []shared.DomainEvent
}

func (h *capturingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.events = append(h.events, event)
	return nil
}

func (h *capturingHandler) EventTypes() []string {
	return h.types
}

func completedEvent() *receiving.GRNCompletedEvent {
	grn := &receiving.GoodsReceiptNote{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(uuid.New()),
		GRNNumber:          "GRN-2026-00001",
		PurchaseOrderID:    uuid.New(),
		SupplierID:         uuid.New(),
	}
	return receiving.NewGRNCompletedEvent(grn)
}

func TestInMemoryEventBus(t *testing.T) {
	t.Run("delivers to matching handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptest.NewLogger(t))
		handler := &capturingHandler{types: []string{receiving.EventTypeGRNCompleted}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), completedEvent())

		require.NoError(t, err)
		require.Len(t, handler.events, 1)
		assert.Equal(t, receiving.EventTypeGRNCompleted, handler.events[0].EventType())
	})

	t.Run("skips handlers for other types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptest.NewLogger(t))
		handler := &capturingHandler{types: []string{"inventory.batch.expired"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), completedEvent()))

		assert.Empty(t, handler.events)
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptest.NewLogger(t))
		handler := &capturingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), completedEvent(), completedEvent()))

		assert.Len(t, handler.events, 2)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zaptest.NewLogger(t))
		handler := &capturingHandler{types: []string{receiving.EventTypeGRNCompleted}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), completedEvent()))

		assert.Empty(t, handler.events)
	})
}

func TestJSONEventSerializer_RoundTrip(t *testing.T) {
	serializer := NewJSONEventSerializer()
	original := completedEvent()

	payload, err := serializer.Serialize(original)
	require.NoError(t, err)

	decoded, err := serializer.Deserialize(receiving.EventTypeGRNCompleted, payload)
	require.NoError(t, err)

	completed, ok := decoded.(*receiving.GRNCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, original.GRNID, completed.GRNID)
	assert.Equal(t, original.GRNNumber, completed.GRNNumber)
	assert.Equal(t, original.EventID(), completed.EventID())
}

func TestJSONEventSerializer_UnknownType(t *testing.T) {
	serializer := NewJSONEventSerializer()

	_, err := serializer.Deserialize("procurement.order.cancelled", []byte("{}"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no event type registered")
}
