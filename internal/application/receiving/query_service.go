package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/procurement"
	receivingdomain "github.com/pharmstore/backend/internal/domain/receiving"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GRNItemDTO mirrors one receipt line, including children of split lines
type GRNItemDTO struct {
	ID                  uuid.UUID       `json:"id"`
	POItemID            uuid.UUID       `json:"po_item_id"`
	DrugID              uuid.UUID       `json:"drug_id"`
	BatchNumber         string          `json:"batch_number"`
	ExpiryDate          *time.Time      `json:"expiry_date,omitempty"`
	ReceivedQty         decimal.Decimal `json:"received_qty"`
	FreeQty             decimal.Decimal `json:"free_qty"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	MRP                 decimal.Decimal `json:"mrp"`
	Location            string          `json:"location,omitempty"`
	ManufacturerBarcode string          `json:"manufacturer_barcode,omitempty"`
	IsSplit             bool            `json:"is_split"`
	Children            []GRNItemDTO    `json:"children,omitempty"`
}

// GRNDetailResponse is the read model for a goods receipt note
type GRNDetailResponse struct {
	ID              uuid.UUID    `json:"id"`
	GRNNumber       string       `json:"grn_number"`
	SupplierID      uuid.UUID    `json:"supplier_id"`
	PurchaseOrderID uuid.UUID    `json:"purchase_order_id"`
	Status          string       `json:"status"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	Items           []GRNItemDTO `json:"items"`
	UnresolvedItems int          `json:"unresolved_items"`
}

// PurchaseOrderItemDTO mirrors one order line with its fulfillment state
type PurchaseOrderItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	DrugID       uuid.UUID       `json:"drug_id"`
	OrderedQty   decimal.Decimal `json:"ordered_qty"`
	ReceivedQty  decimal.Decimal `json:"received_qty"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
	PackUnit     string          `json:"pack_unit"`
	PackSize     decimal.Decimal `json:"pack_size"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse is the read model for a purchase order
type PurchaseOrderResponse struct {
	ID          uuid.UUID              `json:"id"`
	OrderNumber string                 `json:"order_number"`
	SupplierID  uuid.UUID              `json:"supplier_id"`
	Status      string                 `json:"status"`
	Items       []PurchaseOrderItemDTO `json:"items"`
}

// ReceivingQueryService serves the read side of the receiving screens: a
// note with its item tree, and the order it reconciles against
type ReceivingQueryService struct {
	grns   receivingdomain.GRNRepository
	orders procurement.PurchaseOrderRepository
	logger *zap.Logger
}

// NewReceivingQueryService creates a receiving query service
func NewReceivingQueryService(grns receivingdomain.GRNRepository, orders procurement.PurchaseOrderRepository, logger *zap.Logger) *ReceivingQueryService {
	return &ReceivingQueryService{
		grns:   grns,
		orders: orders,
		logger: logger,
	}
}

// GetGRN loads a goods receipt note for the store
func (s *ReceivingQueryService) GetGRN(ctx context.Context, storeID, grnID uuid.UUID) (*GRNDetailResponse, error) {
	grn, err := s.grns.FindByIDForStore(ctx, storeID, grnID)
	if err != nil {
		return nil, err
	}

	resp := &GRNDetailResponse{
		ID:              grn.ID,
		GRNNumber:       grn.GRNNumber,
		SupplierID:      grn.SupplierID,
		PurchaseOrderID: grn.PurchaseOrderID,
		Status:          grn.Status.String(),
		CompletedAt:     grn.CompletedAt,
		Items:           toItemDTOs(grn.Items),
		UnresolvedItems: receivingdomain.CountUnresolved(grn.FlattenItems()),
	}
	return resp, nil
}

// GetPurchaseOrder loads a purchase order for the store
func (s *ReceivingQueryService) GetPurchaseOrder(ctx context.Context, storeID, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != storeID {
		return nil, shared.ErrNotFound
	}

	resp := &PurchaseOrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		SupplierID:  order.SupplierID,
		Status:      order.Status.String(),
		Items:       make([]PurchaseOrderItemDTO, 0, len(order.Items)),
	}
	for i := range order.Items {
		item := &order.Items[i]
		resp.Items = append(resp.Items, PurchaseOrderItemDTO{
			ID:           item.ID,
			DrugID:       item.DrugID,
			OrderedQty:   item.OrderedQty,
			ReceivedQty:  item.ReceivedQty,
			RemainingQty: item.RemainingQty(),
			PackUnit:     item.PackUnit,
			PackSize:     item.PackSize,
			UnitCost:     item.UnitCost,
		})
	}
	return resp, nil
}

func toItemDTOs(items []receivingdomain.GRNItem) []GRNItemDTO {
	dtos := make([]GRNItemDTO, 0, len(items))
	for i := range items {
		item := &items[i]
		dtos = append(dtos, GRNItemDTO{
			ID:                  item.ID,
			POItemID:            item.POItemID,
			DrugID:              item.DrugID,
			BatchNumber:         item.BatchNumber,
			ExpiryDate:          item.ExpiryDate,
			ReceivedQty:         item.ReceivedQty,
			FreeQty:             item.FreeQty,
			UnitPrice:           item.UnitPrice,
			MRP:                 item.MRP,
			Location:            item.Location,
			ManufacturerBarcode: item.ManufacturerBarcode,
			IsSplit:             item.IsSplit,
			Children:            toItemDTOs(item.Children),
		})
	}
	return dtos
}
