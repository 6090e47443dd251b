package catalog

import (
	"context"

	"github.com/google/uuid"
)

// DrugRepository provides access to the drug catalog.
// The receiving engine only reads drug records and inserts store-scoped
// clones; it never updates or deletes existing catalog entries.
type DrugRepository interface {
	// FindByID finds a drug by its ID across all stores.
	// Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Drug, error)
	// FindByIdentityForStore finds a store-local drug matching on
	// (name, strength, form). Returns shared.ErrNotFound when absent.
	FindByIdentityForStore(ctx context.Context, storeID uuid.UUID, name, strength, form string) (*Drug, error)
	// Create inserts a new drug record
	Create(ctx context.Context, drug *Drug) error
}
