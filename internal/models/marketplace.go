package models

import (
	"time"

	"github.com/google/uuid"
)

// MarketplaceProduct is the aggregate sellable stock of one byproduct type.
// is_available always equals (total_stock_kg > 0); both are recomputed together
// in the same statement on every stock mutation.
type MarketplaceProduct struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CropResidueType string    `db:"crop_residue_type" json:"crop_residue_type"`
	TotalStockKg    float64   `db:"total_stock_kg" json:"total_stock_kg"`
	PricePerKg      float64   `db:"price_per_kg" json:"price_per_kg"`
	ImageURL        *string   `db:"image_url" json:"image_url,omitempty"`
	IsAvailable     bool      `db:"is_available" json:"is_available"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
