package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is the accumulated quantity of one material on one construction.
// At most one row exists per (construction, material) pair; the repo's
// upsert enforces that together with the composite primary key.
type Item struct {
	ConstructionID uuid.UUID
	MaterialID     uuid.UUID
	Quantity       decimal.Decimal
	CreatedAt      time.Time
}

// MaterialRow is an inventory item joined with its material and category
// details, as served by the construction inventory view and the XLSX export.
type MaterialRow struct {
	ConstructionID uuid.UUID
	MaterialID     uuid.UUID
	Name           string
	Category       string
	Description    string
	Unit           string
	Quantity       decimal.Decimal
	CreatedAt      time.Time
}
