package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// AddStock merges newly produced waste into the aggregate stock for a residue
// type. The increment is a single atomic upsert so concurrent reconciliations
// on the same residue type cannot lose updates. When no record exists yet one
// is created, seeded with the given price per kg.
func (r *ProductRepository) AddStock(ctx context.Context, residueType string, quantityKg, pricePerKg float64) error {
	query := `
		INSERT INTO marketplace_products (id, crop_residue_type, total_stock_kg, price_per_kg, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		ON CONFLICT (crop_residue_type) DO UPDATE SET
			total_stock_kg = marketplace_products.total_stock_kg + EXCLUDED.total_stock_kg,
			is_available = TRUE,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), residueType, quantityKg, pricePerKg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add stock for %s: %w", residueType, err)
	}

	slog.Info("stock reconciled into marketplace", "residue_type", residueType, "quantity_kg", quantityKg)
	return nil
}

// DecrementStockTx subtracts quantityKg from a product's stock inside a
// transaction, clamping at zero. The clamp and the availability flag are
// recomputed from the pre-update stock in the same statement, so the
// read-modify-write is serialized by the row lock.
func (r *ProductRepository) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uuid.UUID, quantityKg float64) error {
	query := `
		UPDATE marketplace_products SET
			total_stock_kg = GREATEST(total_stock_kg - $2, 0),
			is_available = GREATEST(total_stock_kg - $2, 0) > 0,
			updated_at = $3
		WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, productID, quantityKg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("marketplace product not found: %s", productID)
	}

	return nil
}

// DecrementStock is the non-transactional variant of DecrementStockTx.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantityKg float64) error {
	query := `
		UPDATE marketplace_products SET
			total_stock_kg = GREATEST(total_stock_kg - $2, 0),
			is_available = GREATEST(total_stock_kg - $2, 0) > 0,
			updated_at = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, productID, quantityKg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("marketplace product not found: %s", productID)
	}

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MarketplaceProduct, error) {
	var product models.MarketplaceProduct
	query := `SELECT * FROM marketplace_products WHERE id = $1`

	err := r.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("marketplace product not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get marketplace product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) GetByResidueType(ctx context.Context, residueType string) (*models.MarketplaceProduct, error) {
	var product models.MarketplaceProduct
	query := `SELECT * FROM marketplace_products WHERE crop_residue_type = $1`

	err := r.db.GetContext(ctx, &product, query, residueType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("marketplace product not found: %s", residueType)
		}
		return nil, fmt.Errorf("failed to get marketplace product: %w", err)
	}

	return &product, nil
}

// GetAvailable lists products with stock on hand.
func (r *ProductRepository) GetAvailable(ctx context.Context) ([]models.MarketplaceProduct, error) {
	var products []models.MarketplaceProduct
	query := `
		SELECT * FROM marketplace_products
		WHERE is_available = TRUE AND total_stock_kg > 0
		ORDER BY crop_residue_type`

	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get marketplace products: %w", err)
	}

	return products, nil
}
