package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryBatchRepository provides access to inventory batches.
//
// UpsertReceipt must be a single atomic statement: insert the batch when
// the (store, drug, batch number) key is new, otherwise increment its
// quantities and conditionally refresh descriptive fields. Two concurrent
// receipts of the same batch must both land.
type InventoryBatchRepository interface {
	// UpsertReceipt folds a receipt into the batch row and returns the row's
	// state after the write
	UpsertReceipt(ctx context.Context, receipt *BatchReceipt) (*InventoryBatch, error)
	// FindByID finds a batch by its ID. Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryBatch, error)
	// FindByKey finds a batch by its natural key.
	// Returns shared.ErrNotFound when absent.
	FindByKey(ctx context.Context, storeID, drugID uuid.UUID, batchNumber string) (*InventoryBatch, error)
}

// StockMovementRepository provides append-only access to the stock ledger
type StockMovementRepository interface {
	// Append inserts a new ledger entry. Entries are never updated or deleted.
	Append(ctx context.Context, movement *StockMovement) error
	// SumQuantityByBatch returns the signed sum of movement quantities for a
	// batch, used to audit ledger consistency against batch balances
	SumQuantityByBatch(ctx context.Context, batchID uuid.UUID) (decimal.Decimal, error)
	// ListByReference returns all movements recorded for a reference document
	ListByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]StockMovement, error)
}

// BarcodeRegistryRepository provides access to barcode bindings
type BarcodeRegistryRepository interface {
	// FindByBarcode finds a binding by store and barcode value.
	// Returns shared.ErrNotFound when absent.
	FindByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*BarcodeBinding, error)
	// Create inserts a new binding
	Create(ctx context.Context, binding *BarcodeBinding) error
	// Update persists changes to an existing binding
	Update(ctx context.Context, binding *BarcodeBinding) error
}
