package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/valuation"

	"github.com/redis/go-redis/v9"
)

const (
	productCacheKey = "marketplace:products:available"
	productCacheTTL = 60 * time.Second
)

// InventoryService reconciles farmer-produced waste into shared marketplace
// stock. All stock arithmetic happens in atomic statements at the storage
// layer; this service only decides what to merge and keeps the listing cache
// coherent.
type InventoryService struct {
	productRepo *repository.ProductRepository
	redisClient *redis.Client
}

func NewInventoryService(productRepo *repository.ProductRepository, redisClient *redis.Client) *InventoryService {
	return &InventoryService{
		productRepo: productRepo,
		redisClient: redisClient,
	}
}

// ReconcileSubmission merges a sold submission's waste into marketplace stock.
// The product record is created on first sight of a residue type, priced from
// the crop's byproduct price table.
func (s *InventoryService) ReconcileSubmission(ctx context.Context, submission *models.FarmerSubmission) error {
	if submission.CalculatedWasteTons == nil {
		return fmt.Errorf("submission %s has no calculated waste", submission.ID)
	}

	price, err := valuation.ByproductPrice(submission.CropGrown)
	if err != nil {
		return err
	}

	residueType := valuation.ByproductName(submission.CropGrown)
	wasteKg := *submission.CalculatedWasteTons * 1000

	if err := s.productRepo.AddStock(ctx, residueType, wasteKg, price); err != nil {
		return err
	}

	s.InvalidateProductCache(ctx)
	return nil
}

// ListAvailableProducts returns in-stock products, served from Redis when the
// cached listing is still fresh.
func (s *InventoryService) ListAvailableProducts(ctx context.Context) ([]models.MarketplaceProduct, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, productCacheKey).Result()
		if err == nil {
			var products []models.MarketplaceProduct
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
			slog.Warn("failed to decode cached product listing, falling through", "error", err)
		} else if err != redis.Nil {
			slog.Warn("product cache read failed", "error", err)
		}
	}

	products, err := s.productRepo.GetAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			if err := s.redisClient.Set(ctx, productCacheKey, data, productCacheTTL).Err(); err != nil {
				slog.Warn("product cache write failed", "error", err)
			}
		}
	}

	return products, nil
}

func (s *InventoryService) GetProduct(ctx context.Context, id string) (*models.MarketplaceProduct, error) {
	productID, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, productID)
}

// InvalidateProductCache drops the cached listing after any stock mutation.
func (s *InventoryService) InvalidateProductCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, productCacheKey).Err(); err != nil {
		slog.Warn("product cache invalidation failed", "error", err)
	}
}
