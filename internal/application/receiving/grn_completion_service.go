package receiving

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/domain/procurement"
	receivingdomain "github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GRNCompletionService drives the goods receipt completion workflow. One
// call materializes received goods into inventory: batch rows, barcode
// bindings, stock ledger entries, purchase order reconciliation and the
// completion event, all inside a single transaction.
type GRNCompletionService struct {
	scope     TransactionScope
	converter *UnitConverter
	resolver  *CatalogResolver
	logger    *zap.Logger
}

// NewGRNCompletionService creates a GRN completion service
func NewGRNCompletionService(scope TransactionScope, converter *UnitConverter, resolver *CatalogResolver, logger *zap.Logger) *GRNCompletionService {
	return &GRNCompletionService{
		scope:     scope,
		converter: converter,
		resolver:  resolver,
		logger:    logger,
	}
}

// Complete finalizes the goods receipt note identified by grnID for the
// given store. An omitted status defaults to COMPLETED; a caller passing
// COMPLETED explicitly accepts shortages, forcing the purchase order to
// RECEIVED. Any other status is rejected before work starts. On timeout
// the transaction rolls back and shared.ErrTransactionTimeout is returned.
func (s *GRNCompletionService) Complete(ctx context.Context, storeID, grnID uuid.UUID, req CompleteGRNRequest) (*CompletedGRNResponse, error) {
	var force bool
	switch receivingdomain.GRNStatus(req.Status) {
	case receivingdomain.GRNStatus(""):
	case receivingdomain.GRNStatusCompleted:
		force = true
	default:
		return nil, shared.NewDomainErrorf(shared.CodeValidation, "Unrecognized GRN status %q", req.Status)
	}

	var response *CompletedGRNResponse
	err := s.scope.Execute(ctx, func(ctx context.Context, repos TransactionalRepositories) error {
		result, err := s.complete(ctx, repos, storeID, grnID, force, req)
		if err != nil {
			return err
		}
		response = result
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Error("GRN completion transaction timed out",
				zap.String("store_id", storeID.String()),
				zap.String("grn_id", grnID.String()))
			return nil, shared.ErrTransactionTimeout
		}
		return nil, err
	}

	s.logger.Info("GRN completed",
		zap.String("store_id", storeID.String()),
		zap.String("grn_id", grnID.String()),
		zap.String("grn_number", response.GRNNumber),
		zap.String("po_status", response.PurchaseOrderStatus),
		zap.Int("items", len(response.Items)))

	return response, nil
}

func (s *GRNCompletionService) complete(ctx context.Context, repos TransactionalRepositories, storeID, grnID uuid.UUID, force bool, req CompleteGRNRequest) (*CompletedGRNResponse, error) {
	grn, err := repos.GRNs().FindByIDForStore(ctx, storeID, grnID)
	if err != nil {
		return nil, err
	}

	if !grn.CanComplete() {
		return nil, shared.NewDomainErrorf(shared.CodeInvalidState, "GRN %s is already %s", grn.GRNNumber, grn.Status)
	}

	items := grn.FlattenItems()
	if n := receivingdomain.CountUnresolved(items); n > 0 {
		return nil, shared.NewDomainErrorf(shared.CodeIncompleteBatchAssignment,
			"%d item(s) still have unassigned batch numbers; assign batches before completing", n)
	}

	order, err := repos.Orders().FindByID(ctx, grn.PurchaseOrderID)
	if err != nil {
		return nil, err
	}

	drugRemap, remapped, err := s.resolveDrugs(ctx, repos, grn, items)
	if err != nil {
		return nil, err
	}

	response := &CompletedGRNResponse{
		GRNID:           grn.ID,
		GRNNumber:       grn.GRNNumber,
		PurchaseOrderID: grn.PurchaseOrderID,
		DrugsRemapped:   remapped,
		Items:           make([]FlattenedItemDTO, 0, len(items)),
	}
	for _, d := range grn.Discrepancies {
		response.Discrepancies = append(response.Discrepancies, DiscrepancyDTO{
			ItemID:   d.ItemID,
			Kind:     d.Kind,
			Quantity: d.Quantity,
			Note:     d.Note,
		})
	}

	for i := range items {
		item := &items[i]
		// Zero-receipt lines represent cancelled entries: no batch, no ledger
		if !item.TotalQty().GreaterThan(decimal.Zero) {
			continue
		}
		drugID := item.DrugID
		if mapped, ok := drugRemap[item.DrugID]; ok {
			drugID = mapped
		}

		poItem := order.ItemByID(item.POItemID)
		conv, err := s.converter.Convert(ctx, repos.Conversions(), storeID, drugID, item.TotalQty(), poItem)
		if err != nil {
			return nil, err
		}
		if conv.FellBack {
			response.ConversionWarnings = append(response.ConversionWarnings, conv.Warning)
		}

		batch, err := s.materializeBatch(ctx, repos, grn, item, drugID, conv)
		if err != nil {
			return nil, err
		}

		bound, err := s.bindBarcode(ctx, repos, storeID, item, drugID, batch.ID, conv.ReceivedUnit)
		if err != nil {
			return nil, err
		}
		if bound {
			response.BarcodesBound++
		}

		movement, err := inventory.NewReceiptMovement(storeID, batch.ID, drugID, grn.ID, req.ActorID, grn.GRNNumber, item.TotalQty(), conv.BaseUnitQuantity)
		if err != nil {
			return nil, err
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return nil, err
		}

		response.Items = append(response.Items, FlattenedItemDTO{
			ItemID:              item.ID,
			DrugID:              drugID,
			BatchID:             batch.ID,
			BatchNumber:         item.BatchNumber,
			ReceivedQty:         item.ReceivedQty,
			FreeQty:             item.FreeQty,
			BaseUnitQuantity:    conv.BaseUnitQuantity,
			ManufacturerBarcode: item.ManufacturerBarcode,
			ConversionFellBack:  conv.FellBack,
		})
	}

	orderStatus, err := s.reconcileOrder(ctx, repos, grn, order, force)
	if err != nil {
		return nil, err
	}
	response.PurchaseOrderStatus = orderStatus.String()

	if err := grn.Complete(receivingdomain.GRNStatusCompleted); err != nil {
		return nil, err
	}
	if err := repos.GRNs().UpdateCompletion(ctx, grn.ID, grn.Status, *grn.CompletedAt); err != nil {
		return nil, err
	}

	if err := repos.Outbox().SaveEvents(ctx, grn.GetDomainEvents()...); err != nil {
		return nil, err
	}
	grn.ClearDomainEvents()

	response.Status = grn.Status.String()
	response.CompletedAt = *grn.CompletedAt

	return response, nil
}

// resolveDrugs resolves every distinct drug referenced by the flattened
// items to a store-owned record and rewrites remapped references on the
// note. Returns the old-to-new mapping and the remap count.
func (s *GRNCompletionService) resolveDrugs(ctx context.Context, repos TransactionalRepositories, grn *receivingdomain.GoodsReceiptNote, items []receivingdomain.GRNItem) (map[uuid.UUID]uuid.UUID, int, error) {
	remap := make(map[uuid.UUID]uuid.UUID)
	seen := make(map[uuid.UUID]bool)
	count := 0

	for i := range items {
		drugID := items[i].DrugID
		if seen[drugID] {
			continue
		}
		seen[drugID] = true

		resolved, changed, err := s.resolver.ResolveForStore(ctx, repos.Drugs(), grn.StoreID, drugID)
		if err != nil {
			return nil, 0, err
		}
		if !changed {
			continue
		}

		if err := repos.GRNs().RewriteItemDrug(ctx, grn.ID, drugID, resolved); err != nil {
			return nil, 0, err
		}
		remap[drugID] = resolved
		count++
	}

	return remap, count, nil
}

// materializeBatch folds one received line into its inventory batch row
func (s *GRNCompletionService) materializeBatch(ctx context.Context, repos TransactionalRepositories, grn *receivingdomain.GoodsReceiptNote, item *receivingdomain.GRNItem, drugID uuid.UUID, conv ConversionResult) (*inventory.InventoryBatch, error) {
	receipt := &inventory.BatchReceipt{
		StoreID:             grn.StoreID,
		DrugID:              drugID,
		BatchNumber:         item.BatchNumber,
		ExpiryDate:          item.ExpiryDate,
		QuantityDelta:       item.TotalQty(),
		BaseUnitDelta:       conv.BaseUnitQuantity,
		ReceivedUnit:        conv.ReceivedUnit,
		ReceivedQuantity:    conv.ReceivedQuantity,
		MRP:                 item.MRP,
		PurchasePrice:       item.UnitPrice,
		SupplierID:          grn.SupplierID,
		Location:            item.Location,
		ManufacturerBarcode: item.ManufacturerBarcode,
		ReceivedAt:          grn.UpdatedAt,
	}
	if err := receipt.Validate(); err != nil {
		return nil, err
	}
	return repos.Batches().UpsertReceipt(ctx, receipt)
}

// bindBarcode creates or moves the barcode binding for a line's
// manufacturer barcode. Rebinding follows newest-batch-wins so that scans
// at point of sale resolve to current stock.
func (s *GRNCompletionService) bindBarcode(ctx context.Context, repos TransactionalRepositories, storeID uuid.UUID, item *receivingdomain.GRNItem, drugID, batchID uuid.UUID, unit string) (bool, error) {
	if item.ManufacturerBarcode == "" {
		return false, nil
	}

	binding, err := repos.Barcodes().FindByBarcode(ctx, storeID, item.ManufacturerBarcode)
	if err != nil {
		if !shared.IsDomainError(err, shared.CodeNotFound) {
			return false, err
		}
		binding, err = inventory.NewBarcodeBinding(storeID, item.ManufacturerBarcode, inventory.BarcodeTypeManufacturer, drugID, batchID, unit)
		if err != nil {
			return false, err
		}
		if err := repos.Barcodes().Create(ctx, binding); err != nil {
			return false, err
		}
		return true, nil
	}

	if binding.BatchID == batchID {
		return false, nil
	}
	binding.Rebind(drugID, batchID, unit)
	if err := repos.Barcodes().Update(ctx, binding); err != nil {
		return false, err
	}
	return true, nil
}

// reconcileOrder applies the note's received quantities to the purchase
// order and derives its fulfillment status. Increments use paid quantity
// only: free goods never count toward order fulfillment. Split children are
// skipped because their parent line already carries the full quantity.
func (s *GRNCompletionService) reconcileOrder(ctx context.Context, repos TransactionalRepositories, grn *receivingdomain.GoodsReceiptNote, order *procurement.PurchaseOrder, force bool) (procurement.PurchaseOrderStatus, error) {
	for i := range grn.Items {
		item := &grn.Items[i]
		if !item.ReceivedQty.GreaterThan(decimal.Zero) {
			continue
		}
		poItem := order.ItemByID(item.POItemID)
		if poItem == nil {
			return "", shared.NewDomainErrorf(shared.CodeValidation,
				"GRN item %s references order item %s which is not on order %s", item.ID, item.POItemID, order.OrderNumber)
		}
		if err := repos.Orders().IncrementReceivedQty(ctx, item.POItemID, item.ReceivedQty); err != nil {
			return "", err
		}
		poItem.ReceivedQty = poItem.ReceivedQty.Add(item.ReceivedQty)
	}

	status := order.DeriveStatusAfterReceipt(force)
	if status != order.Status {
		if err := repos.Orders().UpdateStatus(ctx, order.ID, status); err != nil {
			return "", err
		}
		order.Status = status
	}
	return status, nil
}
