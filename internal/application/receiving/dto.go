package receiving

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompleteGRNRequest carries the completion command for a goods receipt
// note. Status defaults to COMPLETED; passing it explicitly accepts
// shortages and forces the purchase order to RECEIVED. ActorID is the
// authenticated operator established by the transport, never client input.
type CompleteGRNRequest struct {
	Status  string    `json:"status"`
	ActorID uuid.UUID `json:"-"`
}

// FlattenedItemDTO describes one batch-bearing line in the completion result
type FlattenedItemDTO struct {
	ItemID              uuid.UUID       `json:"item_id"`
	DrugID              uuid.UUID       `json:"drug_id"`
	BatchID             uuid.UUID       `json:"batch_id"`
	BatchNumber         string          `json:"batch_number"`
	ReceivedQty         decimal.Decimal `json:"received_qty"`
	FreeQty             decimal.Decimal `json:"free_qty"`
	BaseUnitQuantity    decimal.Decimal `json:"base_unit_quantity"`
	ManufacturerBarcode string          `json:"manufacturer_barcode,omitempty"`
	ConversionFellBack  bool            `json:"conversion_fell_back,omitempty"`
}

// DiscrepancyDTO reports one intake delta noted on the completed note
type DiscrepancyDTO struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Kind     string          `json:"kind"`
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// CompletedGRNResponse is the result of a successful GRN completion
type CompletedGRNResponse struct {
	GRNID               uuid.UUID          `json:"grn_id"`
	GRNNumber           string             `json:"grn_number"`
	Status              string             `json:"status"`
	CompletedAt         time.Time          `json:"completed_at"`
	PurchaseOrderID     uuid.UUID          `json:"purchase_order_id"`
	PurchaseOrderStatus string             `json:"purchase_order_status"`
	Items               []FlattenedItemDTO `json:"items"`
	Discrepancies       []DiscrepancyDTO   `json:"discrepancies,omitempty"`
	DrugsRemapped       int                `json:"drugs_remapped"`
	BarcodesBound       int                `json:"barcodes_bound"`
	ConversionWarnings  []string           `json:"conversion_warnings,omitempty"`
}
