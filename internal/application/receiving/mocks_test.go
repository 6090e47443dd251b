package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/catalog"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/domain/procurement"
	receivingdomain "github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/pharmstore/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockGRNRepository struct {
	mock.Mock
}

func (m *MockGRNRepository) FindByIDForStore(ctx context.Context, storeID, grnID uuid.UUID) (*receivingdomain.GoodsReceiptNote, error) {
	args := m.Called(ctx, storeID, grnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivingdomain.GoodsReceiptNote), args.Error(1)
}

func (m *MockGRNRepository) RewriteItemDrug(ctx context.Context, grnID, fromDrug, toDrug uuid.UUID) error {
	args := m.Called(ctx, grnID, fromDrug, toDrug)
	return args.Error(0)
}

func (m *MockGRNRepository) UpdateCompletion(ctx context.Context, grnID uuid.UUID, status receivingdomain.GRNStatus, completedAt time.Time) error {
	args := m.Called(ctx, grnID, status, completedAt)
	return args.Error(0)
}

type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) IncrementReceivedQty(ctx context.Context, itemID uuid.UUID, qty decimal.Decimal) error {
	args := m.Called(ctx, itemID, qty)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status procurement.PurchaseOrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockInventoryBatchRepository struct {
	mock.Mock
}

func (m *MockInventoryBatchRepository) UpsertReceipt(ctx context.Context, receipt *inventory.BatchReceipt) (*inventory.InventoryBatch, error) {
	args := m.Called(ctx, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBatch), args.Error(1)
}

func (m *MockInventoryBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBatch), args.Error(1)
}

func (m *MockInventoryBatchRepository) FindByKey(ctx context.Context, storeID, drugID uuid.UUID, batchNumber string) (*inventory.InventoryBatch, error) {
	args := m.Called(ctx, storeID, drugID, batchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBatch), args.Error(1)
}

type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) SumQuantityByBatch(ctx context.Context, batchID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockMovementRepository) ListByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, referenceType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

type MockBarcodeRegistryRepository struct {
	mock.Mock
}

func (m *MockBarcodeRegistryRepository) FindByBarcode(ctx context.Context, storeID uuid.UUID, barcode string) (*inventory.BarcodeBinding, error) {
	args := m.Called(ctx, storeID, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.BarcodeBinding), args.Error(1)
}

func (m *MockBarcodeRegistryRepository) Create(ctx context.Context, binding *inventory.BarcodeBinding) error {
	args := m.Called(ctx, binding)
	return args.Error(0)
}

func (m *MockBarcodeRegistryRepository) Update(ctx context.Context, binding *inventory.BarcodeBinding) error {
	args := m.Called(ctx, binding)
	return args.Error(0)
}

type MockDrugRepository struct {
	mock.Mock
}

func (m *MockDrugRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Drug, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Drug), args.Error(1)
}

func (m *MockDrugRepository) FindByIdentityForStore(ctx context.Context, storeID uuid.UUID, name, strength, form string) (*catalog.Drug, error) {
	args := m.Called(ctx, storeID, name, strength, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Drug), args.Error(1)
}

func (m *MockDrugRepository) Create(ctx context.Context, drug *catalog.Drug) error {
	args := m.Called(ctx, drug)
	return args.Error(0)
}

type MockUnitConversionRepository struct {
	mock.Mock
}

func (m *MockUnitConversionRepository) FindFactor(ctx context.Context, storeID, drugID uuid.UUID, fromUnit string) (decimal.Decimal, error) {
	args := m.Called(ctx, storeID, drugID, fromUnit)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockOutboxEventSaver struct {
	mock.Mock
}

func (m *MockOutboxEventSaver) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// mockRepos bundles every mock behind the transactional repository set
type mockRepos struct {
	grns        *MockGRNRepository
	orders      *MockPurchaseOrderRepository
	batches     *MockInventoryBatchRepository
	movements   *MockStockMovementRepository
	barcodes    *MockBarcodeRegistryRepository
	drugs       *MockDrugRepository
	conversions *MockUnitConversionRepository
	outbox      *MockOutboxEventSaver
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		grns:        new(MockGRNRepository),
		orders:      new(MockPurchaseOrderRepository),
		batches:     new(MockInventoryBatchRepository),
		movements:   new(MockStockMovementRepository),
		barcodes:    new(MockBarcodeRegistryRepository),
		drugs:       new(MockDrugRepository),
		conversions: new(MockUnitConversionRepository),
		outbox:      new(MockOutboxEventSaver),
	}
}

func (r *mockRepos) GRNs() receivingdomain.GRNRepository              { return r.grns }
func (r *mockRepos) Orders() procurement.PurchaseOrderRepository     { return r.orders }
func (r *mockRepos) Batches() inventory.InventoryBatchRepository     { return r.batches }
func (r *mockRepos) Movements() inventory.StockMovementRepository    { return r.movements }
func (r *mockRepos) Barcodes() inventory.BarcodeRegistryRepository   { return r.barcodes }
func (r *mockRepos) Drugs() catalog.DrugRepository                   { return r.drugs }
func (r *mockRepos) Conversions() uom.UnitConversionRepository       { return r.conversions }
func (r *mockRepos) Outbox() shared.OutboxEventSaver                 { return r.outbox }

func (r *mockRepos) assertExpectations(t mock.TestingT) {
	r.grns.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.batches.AssertExpectations(t)
	r.movements.AssertExpectations(t)
	r.barcodes.AssertExpectations(t)
	r.drugs.AssertExpectations(t)
	r.conversions.AssertExpectations(t)
	r.outbox.AssertExpectations(t)
}
