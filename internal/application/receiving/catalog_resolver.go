package receiving

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/catalog"
	"github.com/pharmstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CatalogResolver maps drug references on a receipt to records owned by the
// receiving store. When a receipt line references a drug belonging to
// another store (shared supplier catalogs, imported orders) the resolver
// finds the store's own record for the same product or clones one, so that
// inventory never points across store boundaries.
type CatalogResolver struct {
	logger *zap.Logger
}

// NewCatalogResolver creates a catalog resolver
func NewCatalogResolver(logger *zap.Logger) *CatalogResolver {
	return &CatalogResolver{logger: logger}
}

// ResolveForStore returns the ID of a drug owned by storeID that describes
// the same product as drugID. Returns the input unchanged when it already
// belongs to the store. The second return reports whether a remap happened.
func (r *CatalogResolver) ResolveForStore(ctx context.Context, drugs catalog.DrugRepository, storeID, drugID uuid.UUID) (uuid.UUID, bool, error) {
	drug, err := drugs.FindByID(ctx, drugID)
	if err != nil {
		if shared.IsDomainError(err, shared.CodeNotFound) {
			return uuid.Nil, false, shared.NewDomainErrorf(shared.CodeCatalogResolutionFailed, "Drug %s referenced by receipt does not exist", drugID)
		}
		return uuid.Nil, false, err
	}

	if drug.BelongsTo(storeID) {
		return drugID, false, nil
	}

	local, err := drugs.FindByIdentityForStore(ctx, storeID, drug.Name, drug.Strength, drug.Form)
	if err == nil {
		r.logger.Info("Remapped receipt drug to store-local record",
			zap.String("store_id", storeID.String()),
			zap.String("foreign_drug_id", drugID.String()),
			zap.String("local_drug_id", local.ID.String()))
		return local.ID, true, nil
	}
	if !shared.IsDomainError(err, shared.CodeNotFound) {
		return uuid.Nil, false, err
	}

	clone, err := drug.CloneForStore(storeID)
	if err != nil {
		return uuid.Nil, false, shared.NewDomainErrorf(shared.CodeCatalogResolutionFailed, "Cannot clone drug %s for store %s: %s", drugID, storeID, err)
	}
	if err := drugs.Create(ctx, clone); err != nil {
		return uuid.Nil, false, shared.NewDomainErrorf(shared.CodeCatalogResolutionFailed, "Cannot create store-local drug for %s: %s", drugID, err)
	}

	r.logger.Info("Cloned foreign drug into store catalog",
		zap.String("store_id", storeID.String()),
		zap.String("foreign_drug_id", drugID.String()),
		zap.String("clone_drug_id", clone.ID.String()),
		zap.String("name", clone.Name))

	return clone.ID, true, nil
}
