package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Drug represents a store-scoped product record in the catalog.
// Drugs are owned by exactly one store; when a goods receipt references a
// drug owned by another store, the receiving store gets its own clone.
type Drug struct {
	shared.StoreAggregateRoot
	Name                 string          `gorm:"type:varchar(200);not null;index:idx_drugs_identity,priority:2"`
	GenericName          string          `gorm:"type:varchar(200)"`
	Strength             string          `gorm:"type:varchar(50);index:idx_drugs_identity,priority:3"`
	Form                 string          `gorm:"type:varchar(50);index:idx_drugs_identity,priority:4"`
	Manufacturer         string          `gorm:"type:varchar(200)"`
	Schedule             string          `gorm:"type:varchar(20)"`
	HSNCode              string          `gorm:"type:varchar(20)"`
	GSTRate              decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	RequiresPrescription bool            `gorm:"not null;default:false"`
	DefaultUnit          string          `gorm:"type:varchar(20)"`
	LowStockThreshold    int             `gorm:"not null;default:0"`
	Description          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Drug) TableName() string {
	return "drugs"
}

// NewDrug creates a new store-scoped drug record
func NewDrug(storeID uuid.UUID, name, strength, form string) (*Drug, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Store ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Drug name cannot be empty")
	}
	return &Drug{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               name,
		Strength:           strength,
		Form:               form,
	}, nil
}

// BelongsTo returns true if the drug is owned by the given store
func (d *Drug) BelongsTo(storeID uuid.UUID) bool {
	return d.StoreID == storeID
}

// CloneForStore copies the descriptive fields of the drug into a new record
// owned by targetStore. Stock-related state is never carried over; the clone
// starts with no inventory of its own.
func (d *Drug) CloneForStore(targetStore uuid.UUID) (*Drug, error) {
	clone, err := NewDrug(targetStore, d.Name, d.Strength, d.Form)
	if err != nil {
		return nil, err
	}
	clone.GenericName = d.GenericName
	clone.Manufacturer = d.Manufacturer
	clone.Schedule = d.Schedule
	clone.HSNCode = d.HSNCode
	clone.GSTRate = d.GSTRate
	clone.RequiresPrescription = d.RequiresPrescription
	clone.DefaultUnit = d.DefaultUnit
	clone.LowStockThreshold = d.LowStockThreshold
	clone.Description = d.Description
	clone.UpdatedAt = time.Now()
	return clone, nil
}

// MatchesIdentity reports whether another drug record describes the same
// product (name, strength and form), regardless of the owning store.
func (d *Drug) MatchesIdentity(name, strength, form string) bool {
	return d.Name == name && d.Strength == strength && d.Form == form
}
