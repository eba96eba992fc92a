package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is one buyer transaction. StockApplied tracks whether the order's stock
// decrement has been applied; replays of the decrement are no-ops once it is set.
type Order struct {
	ID                uuid.UUID   `db:"id" json:"id"`
	BuyerName         string      `db:"buyer_name" json:"buyer_name"`
	CompanyName       string      `db:"company_name" json:"company_name"`
	BuyerMobileNumber string      `db:"buyer_mobile_number" json:"buyer_mobile_number"`
	BuyerAddress      string      `db:"buyer_address" json:"buyer_address"`
	TotalAmount       float64     `db:"total_amount" json:"total_amount"`
	OrderStatus       OrderStatus `db:"order_status" json:"order_status"`
	EstimatedESGScore *float64    `db:"estimated_esg_score" json:"estimated_esg_score,omitempty"`
	StockApplied      bool        `db:"stock_applied" json:"stock_applied"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem snapshots the byproduct name and unit price at purchase time; later
// price changes on the marketplace product do not affect it.
type OrderItem struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	OrderID              uuid.UUID  `db:"order_id" json:"order_id"`
	MarketplaceProductID *uuid.UUID `db:"marketplace_product_id" json:"marketplace_product_id,omitempty"`
	CropResidueType      string     `db:"crop_residue_type" json:"crop_residue_type"`
	QuantityKg           float64    `db:"quantity_kg" json:"quantity_kg"`
	PricePerKgAtPurchase float64    `db:"price_per_kg_at_purchase" json:"price_per_kg_at_purchase"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}

type CheckoutItem struct {
	MarketplaceProductID uuid.UUID `json:"marketplace_product_id"`
	QuantityKg           float64   `json:"quantity_kg"`
}

type CheckoutRequest struct {
	BuyerName         string         `json:"buyer_name"`
	CompanyName       string         `json:"company_name"`
	BuyerMobileNumber string         `json:"buyer_mobile_number"`
	BuyerAddress      string         `json:"buyer_address"`
	EstimatedESGScore *float64       `json:"estimated_esg_score,omitempty"`
	Items             []CheckoutItem `json:"items"`
}
