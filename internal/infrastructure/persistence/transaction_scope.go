package persistence

import (
	"context"
	"errors"

	appreceiving "github.com/pharmstore/backend/internal/application/receiving"
	"github.com/pharmstore/backend/internal/domain/catalog"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/domain/procurement"
	"github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/pharmstore/backend/internal/domain/uom"
	"github.com/pharmstore/backend/internal/infrastructure/config"
	"github.com/pharmstore/backend/internal/infrastructure/event"
	"gorm.io/gorm"
)

// GormReceivingTransactionScope runs the receiving workflow inside a
// bounded database transaction. Connection acquisition waits at most
// MaxWait; the transaction itself is cancelled after Timeout. Either bound
// being exceeded rolls everything back.
type GormReceivingTransactionScope struct {
	db         *gorm.DB
	cfg        config.ReceivingConfig
	serializer event.EventSerializer
}

// NewGormReceivingTransactionScope creates a bounded transaction scope
func NewGormReceivingTransactionScope(db *gorm.DB, cfg config.ReceivingConfig, serializer event.EventSerializer) *GormReceivingTransactionScope {
	return &GormReceivingTransactionScope{
		db:         db,
		cfg:        cfg,
		serializer: serializer,
	}
}

// Execute runs fn inside one transaction with repositories bound to it
func (s *GormReceivingTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos appreceiving.TransactionalRepositories) error) error {
	if err := s.waitForConnection(ctx); err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	err := s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		return fn(txCtx, newTxRepositories(tx, s.serializer))
	})
	if err != nil && errors.Is(txCtx.Err(), context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}
	return err
}

// waitForConnection bounds how long a completion waits for pool capacity
// before its transaction even starts
func (s *GormReceivingTransactionScope) waitForConnection(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.MaxWait)
	defer cancel()

	conn, err := sqlDB.Conn(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return context.DeadlineExceeded
		}
		return err
	}
	return conn.Close()
}

// txRepositories binds every repository of the receiving workflow to one
// transaction
type txRepositories struct {
	grns        *GormGRNRepository
	orders      *GormPurchaseOrderRepository
	batches     *GormInventoryBatchRepository
	movements   *GormStockMovementRepository
	barcodes    *GormBarcodeRegistryRepository
	drugs       *GormDrugRepository
	conversions *GormUnitConversionRepository
	outbox      *event.OutboxSaver
}

func newTxRepositories(tx *gorm.DB, serializer event.EventSerializer) *txRepositories {
	return &txRepositories{
		grns:        NewGormGRNRepository(tx),
		orders:      NewGormPurchaseOrderRepository(tx),
		batches:     NewGormInventoryBatchRepository(tx),
		movements:   NewGormStockMovementRepository(tx),
		barcodes:    NewGormBarcodeRegistryRepository(tx),
		drugs:       NewGormDrugRepository(tx),
		conversions: NewGormUnitConversionRepository(tx),
		outbox:      event.NewOutboxSaver(NewGormOutboxRepository(tx), serializer),
	}
}

func (r *txRepositories) GRNs() receiving.GRNRepository {
	return r.grns
}

func (r *txRepositories) Orders() procurement.PurchaseOrderRepository {
	return r.orders
}

func (r *txRepositories) Batches() inventory.InventoryBatchRepository {
	return r.batches
}

func (r *txRepositories) Movements() inventory.StockMovementRepository {
	return r.movements
}

func (r *txRepositories) Barcodes() inventory.BarcodeRegistryRepository {
	return r.barcodes
}

func (r *txRepositories) Drugs() catalog.DrugRepository {
	return r.drugs
}

func (r *txRepositories) Conversions() uom.UnitConversionRepository {
	return r.conversions
}

func (r *txRepositories) Outbox() shared.OutboxEventSaver {
	return r.outbox
}
