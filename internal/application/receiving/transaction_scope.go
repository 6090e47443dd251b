package receiving

import (
	"context"

	"github.com/pharmstore/backend/internal/domain/catalog"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/domain/procurement"
	receivingdomain "github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/pharmstore/backend/internal/domain/uom"
)

// TransactionalRepositories exposes every repository the completion workflow
// touches, bound to one database transaction. Writes through these
// repositories commit or roll back together.
type TransactionalRepositories interface {
	GRNs() receivingdomain.GRNRepository
	Orders() procurement.PurchaseOrderRepository
	Batches() inventory.InventoryBatchRepository
	Movements() inventory.StockMovementRepository
	Barcodes() inventory.BarcodeRegistryRepository
	Drugs() catalog.DrugRepository
	Conversions() uom.UnitConversionRepository
	Outbox() shared.OutboxEventSaver
}

// TransactionScope runs a function inside a single database transaction.
// Implementations enforce the configured acquisition and execution time
// bounds; when a bound is exceeded the transaction rolls back and the scope
// returns shared.ErrTransactionTimeout.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error
}

// NoOpTransactionScope executes the function without any transaction,
// passing through a fixed repository set. Used in tests.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error {
	return fn(ctx, s.Repos)
}
