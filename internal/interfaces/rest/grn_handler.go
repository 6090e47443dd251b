package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appreceiving "github.com/pharmstore/backend/internal/application/receiving"
	"github.com/pharmstore/backend/internal/domain/inventory"
	"github.com/pharmstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GRNCompleter finalizes goods receipt notes
type GRNCompleter interface {
	Complete(ctx context.Context, storeID, grnID uuid.UUID, req appreceiving.CompleteGRNRequest) (*appreceiving.CompletedGRNResponse, error)
}

// GRNReader serves the read side of the receiving screens
type GRNReader interface {
	GetGRN(ctx context.Context, storeID, grnID uuid.UUID) (*appreceiving.GRNDetailResponse, error)
	GetPurchaseOrder(ctx context.Context, storeID, orderID uuid.UUID) (*appreceiving.PurchaseOrderResponse, error)
}

// BarcodeResolver resolves barcodes to batch bindings and drops stale
// cache entries after rebinds
type BarcodeResolver interface {
	Lookup(ctx context.Context, storeID uuid.UUID, barcode string) (*inventory.BarcodeBinding, error)
	Invalidate(ctx context.Context, storeID uuid.UUID, barcodes ...string)
}

// GRNHandler exposes goods receipt operations over HTTP
type GRNHandler struct {
	service      GRNCompleter
	queries      GRNReader
	barcodeCache BarcodeResolver
	logger       *zap.Logger
}

// NewGRNHandler creates a GRN handler
func NewGRNHandler(service GRNCompleter, queries GRNReader, barcodeCache BarcodeResolver, logger *zap.Logger) *GRNHandler {
	return &GRNHandler{
		service:      service,
		queries:      queries,
		barcodeCache: barcodeCache,
		logger:       logger,
	}
}

// Complete handles POST /api/v1/grns/:id/complete
func (h *GRNHandler) Complete(c *gin.Context) {
	grnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, shared.NewDomainError(shared.CodeValidation, "Invalid GRN ID"))
		return
	}

	var req appreceiving.CompleteGRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, shared.NewDomainErrorf(shared.CodeValidation, "Invalid request body: %s", err))
		return
	}
	req.ActorID = ActorID(c)

	storeID := StoreID(c)
	resp, err := h.service.Complete(c.Request.Context(), storeID, grnID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateBarcodes(c, storeID, resp)

	c.JSON(http.StatusOK, resp)
}

// invalidateBarcodes drops cached entries for every barcode the completion
// bound or rebound, so scans see the new batch immediately
func (h *GRNHandler) invalidateBarcodes(c *gin.Context, storeID uuid.UUID, resp *appreceiving.CompletedGRNResponse) {
	if h.barcodeCache == nil {
		return
	}
	barcodes := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ManufacturerBarcode != "" {
			barcodes = append(barcodes, item.ManufacturerBarcode)
		}
	}
	if len(barcodes) == 0 {
		return
	}
	h.barcodeCache.Invalidate(c.Request.Context(), storeID, barcodes...)
}

// Get handles GET /api/v1/grns/:id
func (h *GRNHandler) Get(c *gin.Context) {
	grnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, shared.NewDomainError(shared.CodeValidation, "Invalid GRN ID"))
		return
	}

	resp, err := h.queries.GetGRN(c.Request.Context(), StoreID(c), grnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPurchaseOrder handles GET /api/v1/purchase-orders/:id
func (h *GRNHandler) GetPurchaseOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, shared.NewDomainError(shared.CodeValidation, "Invalid purchase order ID"))
		return
	}

	resp, err := h.queries.GetPurchaseOrder(c.Request.Context(), StoreID(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LookupBarcode handles GET /api/v1/barcodes/:barcode
func (h *GRNHandler) LookupBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		respondError(c, shared.NewDomainError(shared.CodeValidation, "Barcode cannot be empty"))
		return
	}

	binding, err := h.barcodeCache.Lookup(c.Request.Context(), StoreID(c), barcode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barcode":  binding.Barcode,
		"type":     binding.Type,
		"drug_id":  binding.DrugID,
		"batch_id": binding.BatchID,
		"unit":     binding.Unit,
	})
}
