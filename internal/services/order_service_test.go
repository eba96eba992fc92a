package services

import (
	"context"
	"testing"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		item     models.OrderItem
		expected float64
	}{
		{
			name:     "whole numbers",
			item:     models.OrderItem{QuantityKg: 100, PricePerKgAtPurchase: 5.35},
			expected: 535,
		},
		{
			name:     "rounds to two decimals",
			item:     models.OrderItem{QuantityKg: 3, PricePerKgAtPurchase: 3.333},
			expected: 10.0,
		},
		{
			name:     "coconut fiber premium price",
			item:     models.OrderItem{QuantityKg: 10, PricePerKgAtPurchase: 179},
			expected: 1790,
		},
		{
			name:     "zero quantity",
			item:     models.OrderItem{QuantityKg: 0, PricePerKgAtPurchase: 8.5},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LineTotal(tt.item), 1e-9)
		})
	}
}

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.OrderItem
		expected float64
	}{
		{
			name:     "empty order totals zero",
			items:    nil,
			expected: 0,
		},
		{
			name: "single item",
			items: []models.OrderItem{
				{QuantityKg: 200, PricePerKgAtPurchase: 2.0},
			},
			expected: 400,
		},
		{
			name: "multiple items summed",
			items: []models.OrderItem{
				{QuantityKg: 100, PricePerKgAtPurchase: 5.35},
				{QuantityKg: 50, PricePerKgAtPurchase: 8.5},
				{QuantityKg: 10, PricePerKgAtPurchase: 179},
			},
			expected: 535 + 425 + 1790,
		},
		{
			name: "rounding applied to the sum",
			items: []models.OrderItem{
				{QuantityKg: 1, PricePerKgAtPurchase: 0.125},
				{QuantityKg: 1, PricePerKgAtPurchase: 0.125},
			},
			expected: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, OrderTotal(tt.items), 1e-9)
		})
	}
}

func TestCheckoutValidation(t *testing.T) {
	svc := NewOrderService(nil, nil, nil, nil)

	tests := []struct {
		name    string
		req     *models.CheckoutRequest
		wantErr error
	}{
		{
			name:    "empty cart",
			req:     &models.CheckoutRequest{BuyerName: "Asha", BuyerMobileNumber: "9876543210", BuyerAddress: "Pune"},
			wantErr: ErrEmptyOrder,
		},
		{
			name: "zero quantity",
			req: &models.CheckoutRequest{
				BuyerName:         "Asha",
				BuyerMobileNumber: "9876543210",
				BuyerAddress:      "Pune",
				Items:             []models.CheckoutItem{{MarketplaceProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), QuantityKg: 0}},
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			req: &models.CheckoutRequest{
				BuyerName:         "Asha",
				BuyerMobileNumber: "9876543210",
				BuyerAddress:      "Pune",
				Items:             []models.CheckoutItem{{MarketplaceProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), QuantityKg: -5}},
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "fractional quantity",
			req: &models.CheckoutRequest{
				BuyerName:         "Asha",
				BuyerMobileNumber: "9876543210",
				BuyerAddress:      "Pune",
				Items:             []models.CheckoutItem{{MarketplaceProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), QuantityKg: 2.5}},
			},
			wantErr: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := svc.Checkout(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, order)
		})
	}
}

func TestAggregateCartQuantities(t *testing.T) {
	productA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	productB := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("duplicate lines for one product are summed", func(t *testing.T) {
		totals, err := aggregateCartQuantities([]models.CheckoutItem{
			{MarketplaceProductID: productA, QuantityKg: 60},
			{MarketplaceProductID: productA, QuantityKg: 60},
			{MarketplaceProductID: productB, QuantityKg: 10},
		})
		require.NoError(t, err)
		// Both 60 kg lines must count against the same stock: a product with
		// 100 kg on hand has to fail this cart, not pass each line alone.
		assert.InDelta(t, 120, totals[productA], 1e-9)
		assert.InDelta(t, 10, totals[productB], 1e-9)
	})

	t.Run("invalid quantity on any line rejects the cart", func(t *testing.T) {
		_, err := aggregateCartQuantities([]models.CheckoutItem{
			{MarketplaceProductID: productA, QuantityKg: 60},
			{MarketplaceProductID: productA, QuantityKg: 0.5},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("missing product id rejects the cart", func(t *testing.T) {
		_, err := aggregateCartQuantities([]models.CheckoutItem{
			{QuantityKg: 10},
		})
		require.Error(t, err)
	})
}

func TestCheckoutRequiresBuyerDetails(t *testing.T) {
	svc := NewOrderService(nil, nil, nil, nil)
	items := []models.CheckoutItem{{MarketplaceProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), QuantityKg: 10}}

	tests := []struct {
		name string
		req  *models.CheckoutRequest
	}{
		{"missing name", &models.CheckoutRequest{BuyerMobileNumber: "9876543210", BuyerAddress: "Pune", Items: items}},
		{"missing mobile", &models.CheckoutRequest{BuyerName: "Asha", BuyerAddress: "Pune", Items: items}},
		{"missing address", &models.CheckoutRequest{BuyerName: "Asha", BuyerMobileNumber: "9876543210", Items: items}},
		{"blank name", &models.CheckoutRequest{BuyerName: "   ", BuyerMobileNumber: "9876543210", BuyerAddress: "Pune", Items: items}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := svc.Checkout(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, order)
		})
	}
}
