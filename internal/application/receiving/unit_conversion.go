package receiving

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/procurement"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/pharmstore/backend/internal/domain/uom"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ConversionResult is the outcome of converting a received pack quantity
// into base dispensing units. FellBack marks a line that had neither a
// configured conversion nor a usable pack size on the order; such lines are
// booked 1:1 and reported as warnings rather than failing the receipt.
type ConversionResult struct {
	BaseUnitQuantity decimal.Decimal
	ReceivedUnit     string
	ReceivedQuantity decimal.Decimal
	Factor           decimal.Decimal
	FellBack         bool
	Warning          string
}

// UnitConverter resolves pack-to-base-unit factors for received lines.
// Resolution order: configured conversion rule for (drug, pack unit), then
// the pack size declared on the purchase order line, then identity.
type UnitConverter struct {
	logger *zap.Logger
}

// NewUnitConverter creates a unit converter
func NewUnitConverter(logger *zap.Logger) *UnitConverter {
	return &UnitConverter{logger: logger}
}

// Convert computes the base-unit quantity for a received quantity of the
// given drug. poItem may be nil when the line cannot be matched to an order
// line; in that case only the configured rule and identity apply.
func (c *UnitConverter) Convert(ctx context.Context, conversions uom.UnitConversionRepository, storeID, drugID uuid.UUID, quantity decimal.Decimal, poItem *procurement.PurchaseOrderItem) (ConversionResult, error) {
	unit := "unit"
	if poItem != nil && poItem.PackUnit != "" {
		unit = poItem.PackUnit
	}

	factor, err := conversions.FindFactor(ctx, storeID, drugID, unit)
	if err == nil {
		return ConversionResult{
			BaseUnitQuantity: quantity.Mul(factor),
			ReceivedUnit:     unit,
			ReceivedQuantity: quantity,
			Factor:           factor,
		}, nil
	}
	if !shared.IsDomainError(err, shared.CodeNotFound) {
		return ConversionResult{}, err
	}

	if poItem != nil && poItem.PackSize.GreaterThan(decimal.NewFromInt(1)) {
		return ConversionResult{
			BaseUnitQuantity: quantity.Mul(poItem.PackSize),
			ReceivedUnit:     unit,
			ReceivedQuantity: quantity,
			Factor:           poItem.PackSize,
		}, nil
	}

	warning := fmt.Sprintf("no unit conversion configured for drug %s unit %q; booked 1:1", drugID, unit)
	c.logger.Warn("Unit conversion fell back to identity",
		zap.String("store_id", storeID.String()),
		zap.String("drug_id", drugID.String()),
		zap.String("unit", unit),
		zap.String("quantity", quantity.String()))

	return ConversionResult{
		BaseUnitQuantity: quantity,
		ReceivedUnit:     unit,
		ReceivedQuantity: quantity,
		Factor:           decimal.NewFromInt(1),
		FellBack:         true,
		Warning:          warning,
	}, nil
}
