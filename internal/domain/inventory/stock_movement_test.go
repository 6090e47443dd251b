package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceiptMovement(t *testing.T) {
	storeID, batchID, drugID, grnID, actorID := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	t.Run("carries the GRN reference as the ledger reason", func(t *testing.T) {
		movement, err := NewReceiptMovement(storeID, batchID, drugID, grnID, actorID, "GRN-2026-00017", decimal.NewFromInt(4), decimal.NewFromInt(40))

		require.NoError(t, err)
		assert.Equal(t, MovementTypeIn, movement.Type)
		assert.Equal(t, ReferenceTypeGRN, movement.ReferenceType)
		assert.Equal(t, grnID, movement.ReferenceID)
		assert.Equal(t, "GRN-2026-00017", movement.Note)
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		_, err := NewReceiptMovement(storeID, batchID, drugID, grnID, actorID, "GRN-2026-00017", decimal.NewFromInt(-1), decimal.NewFromInt(10))

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeValidation))
	})

	t.Run("rejects an empty GRN reference", func(t *testing.T) {
		_, err := NewReceiptMovement(storeID, batchID, drugID, grnID, actorID, "", decimal.NewFromInt(1), decimal.NewFromInt(10))

		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, shared.CodeValidation))
	})
}
