package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GRNRepository provides access to goods receipt notes
type GRNRepository interface {
	// FindByIDForStore loads a note with its item tree, scoped to the given
	// store. Returns shared.ErrNotFound when absent or owned by another store.
	FindByIDForStore(ctx context.Context, storeID, grnID uuid.UUID) (*GoodsReceiptNote, error)
	// RewriteItemDrug repoints every item of the note that references
	// fromDrug to toDrug, including children of split lines
	RewriteItemDrug(ctx context.Context, grnID, fromDrug, toDrug uuid.UUID) error
	// UpdateCompletion persists the terminal status and completion time.
	// The write only matches notes still in a completable status; returns
	// shared.ErrInvalidState when the note was completed concurrently or is
	// absent, so the caller's transaction rolls back.
	UpdateCompletion(ctx context.Context, grnID uuid.UUID, status GRNStatus, completedAt time.Time) error
}
