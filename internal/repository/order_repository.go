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

type OrderRepository struct {
	db          *sqlx.DB
	productRepo *ProductRepository
}

func NewOrderRepository(db *sqlx.DB, productRepo *ProductRepository) *OrderRepository {
	return &OrderRepository{db: db, productRepo: productRepo}
}

// CreateWithItems persists an order and all its items in one transaction.
// Either everything commits or nothing does; a half-written order is never
// visible to the stock decrement step.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (
			id, buyer_name, company_name, buyer_mobile_number, buyer_address,
			total_amount, order_status, estimated_esg_score, stock_applied,
			created_at, updated_at
		) VALUES (
			:id, :buyer_name, :company_name, :buyer_mobile_number, :buyer_address,
			:total_amount, :order_status, :estimated_esg_score, :stock_applied,
			:created_at, :updated_at
		)`

	if _, err := tx.NamedExecContext(ctx, orderQuery, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (
			id, order_id, marketplace_product_id, crop_residue_type,
			quantity_kg, price_per_kg_at_purchase, created_at
		) VALUES (
			:id, :order_id, :marketplace_product_id, :crop_residue_type,
			:quantity_kg, :price_per_kg_at_purchase, :created_at
		)`

	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].OrderID = order.ID
		items[i].CreatedAt = time.Now()

		if _, err := tx.NamedExecContext(ctx, itemQuery, items[i]); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}

	order.Items = items
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	query := `SELECT * FROM orders WHERE id = $1`

	err := r.db.GetContext(ctx, &order, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.GetItemsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *OrderRepository) GetItemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	query := `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &items, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return items, nil
}

// ApplyStockDecrement applies an order's stock effects exactly once. The
// stock_applied flag is flipped with a conditional update inside the same
// transaction as the decrements, so a replayed call finds the flag already
// set, affects zero rows, and commits nothing.
func (r *OrderRepository) ApplyStockDecrement(ctx context.Context, orderID uuid.UUID) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	markQuery := `
		UPDATE orders SET stock_applied = TRUE, order_status = $2, updated_at = $3
		WHERE id = $1 AND stock_applied = FALSE`

	result, err := tx.ExecContext(ctx, markQuery, orderID, models.OrderProcessing, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark order stock applied: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// already applied, or no such order
		slog.Info("stock decrement already applied, skipping", "order_id", orderID)
		return nil
	}

	var items []models.OrderItem
	if err := tx.SelectContext(ctx, &items, `SELECT * FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to load order items for decrement: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no order items found for order: %s", orderID)
	}

	for _, item := range items {
		if item.MarketplaceProductID == nil {
			continue
		}
		if err := r.productRepo.DecrementStockTx(ctx, tx, *item.MarketplaceProductID, item.QuantityKg); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stock decrement: %w", err)
	}

	slog.Info("order stock decrement applied", "order_id", orderID, "item_count", len(items))
	return nil
}

// ListStockPendingOrderIDs returns orders whose stock effects have not been
// applied yet; the retry job feeds these back through ApplyStockDecrement.
func (r *OrderRepository) ListStockPendingOrderIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT id FROM orders WHERE stock_applied = FALSE ORDER BY created_at`

	err := r.db.SelectContext(ctx, &ids, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock pending orders: %w", err)
	}

	return ids, nil
}
