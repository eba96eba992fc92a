package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"marketplace-service/internal/event"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrEmptyOrder is returned when checkout is attempted with no items.
	ErrEmptyOrder = errors.New("order contains no items")
	// ErrStockInsufficient is returned when a requested quantity exceeds the
	// product's available stock at checkout time.
	ErrStockInsufficient = errors.New("insufficient stock for requested quantity")
	// ErrInvalidQuantity is returned for zero, negative, or fractional
	// kilogram quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number of kilograms")
)

// OrderService aggregates order totals and runs the checkout flow. Prices are
// snapshotted onto order items at purchase time so later price changes never
// alter a committed total.
type OrderService struct {
	orderRepo   *repository.OrderRepository
	productRepo *repository.ProductRepository
	inventory   *InventoryService
	publisher   *event.Publisher
}

func NewOrderService(orderRepo *repository.OrderRepository, productRepo *repository.ProductRepository, inventory *InventoryService, publisher *event.Publisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		inventory:   inventory,
		publisher:   publisher,
	}
}

// LineTotal returns quantity times snapshotted unit price, rounded to two
// decimals.
func LineTotal(item models.OrderItem) float64 {
	return round2(item.QuantityKg * item.PricePerKgAtPurchase)
}

// OrderTotal sums line totals, rounding the final sum to two decimals.
func OrderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.QuantityKg * item.PricePerKgAtPurchase
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// aggregateCartQuantities validates each cart line and sums quantities per
// product.
func aggregateCartQuantities(items []models.CheckoutItem) (map[uuid.UUID]float64, error) {
	totals := make(map[uuid.UUID]float64, len(items))
	for _, item := range items {
		if item.QuantityKg <= 0 || item.QuantityKg != math.Trunc(item.QuantityKg) {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidQuantity, item.QuantityKg)
		}
		if item.MarketplaceProductID == uuid.Nil {
			return nil, fmt.Errorf("marketplace product id is required")
		}
		totals[item.MarketplaceProductID] += item.QuantityKg
	}
	return totals, nil
}

// Checkout validates the cart against current stock, snapshots prices,
// persists the order with its items in one transaction, then applies the
// stock decrement. A failed decrement leaves the order flagged for the retry
// worker rather than failing the checkout.
func (s *OrderService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if strings.TrimSpace(req.BuyerName) == "" {
		return nil, fmt.Errorf("buyer name is required")
	}
	if strings.TrimSpace(req.BuyerMobileNumber) == "" {
		return nil, fmt.Errorf("buyer mobile number is required")
	}
	if strings.TrimSpace(req.BuyerAddress) == "" {
		return nil, fmt.Errorf("buyer address is required")
	}

	totals, err := aggregateCartQuantities(req.Items)
	if err != nil {
		return nil, err
	}

	// Stock is checked against the summed quantity per product, so duplicate
	// cart lines cannot each pass individually and overdraw the stock.
	products := make(map[uuid.UUID]*models.MarketplaceProduct, len(totals))
	for productID, totalKg := range totals {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", productID, err)
		}
		if !product.IsAvailable || totalKg > product.TotalStockKg {
			return nil, fmt.Errorf("%w: %s has %.0f kg available, requested %.0f kg",
				ErrStockInsufficient, product.CropResidueType, product.TotalStockKg, totalKg)
		}
		products[productID] = product
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, cartItem := range req.Items {
		product := products[cartItem.MarketplaceProductID]
		id := product.ID
		items = append(items, models.OrderItem{
			MarketplaceProductID: &id,
			CropResidueType:      product.CropResidueType,
			QuantityKg:           cartItem.QuantityKg,
			PricePerKgAtPurchase: product.PricePerKg,
		})
	}

	order := &models.Order{
		BuyerName:         req.BuyerName,
		CompanyName:       req.CompanyName,
		BuyerMobileNumber: req.BuyerMobileNumber,
		BuyerAddress:      req.BuyerAddress,
		TotalAmount:       OrderTotal(items),
		OrderStatus:       models.OrderPending,
		EstimatedESGScore: req.EstimatedESGScore,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.orderRepo.ApplyStockDecrement(ctx, order.ID); err != nil {
		slog.Error("stock decrement failed, order left for retry", "order_id", order.ID, "error", err)
	}
	s.inventory.InvalidateProductCache(ctx)

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, event.OrderPlacedEvent{
			OrderID:     order.ID.String(),
			BuyerName:   order.BuyerName,
			CompanyName: order.CompanyName,
			TotalAmount: order.TotalAmount,
			ItemCount:   len(items),
		}); err != nil {
			slog.Warn("failed to publish order event", "order_id", order.ID, "error", err)
		}
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	orderID, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// RetryPendingStockDecrements re-applies the stock decrement for orders whose
// original attempt failed. Safe to run concurrently with checkouts because the
// applied flag flips inside the decrement transaction.
func (s *OrderService) RetryPendingStockDecrements(ctx context.Context) error {
	orderIDs, err := s.orderRepo.ListStockPendingOrderIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending orders: %w", err)
	}
	if len(orderIDs) == 0 {
		return nil
	}

	slog.Info("retrying stock decrements", "pending_orders", len(orderIDs))
	var lastErr error
	for _, orderID := range orderIDs {
		if err := s.orderRepo.ApplyStockDecrement(ctx, orderID); err != nil {
			slog.Error("stock decrement retry failed", "order_id", orderID, "error", err)
			lastErr = err
		}
	}
	s.inventory.InvalidateProductCache(ctx)
	return lastErr
}

func parseUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return parsed, nil
}
