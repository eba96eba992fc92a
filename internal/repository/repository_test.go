package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB connects to the Postgres instance named by TEST_POSTGRES_DSN and
// applies the schema. Tests are skipped when the variable is unset so the
// suite stays runnable without a database.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set, skipping repository integration tests")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

func uniqueResidueType() string {
	return fmt.Sprintf("Test Residue %s", uuid.NewString())
}

func cleanupProduct(t *testing.T, db *sqlx.DB, residueType string) {
	t.Cleanup(func() {
		db.Exec(`DELETE FROM order_items WHERE crop_residue_type = $1`, residueType)
		db.Exec(`DELETE FROM marketplace_products WHERE crop_residue_type = $1`, residueType)
	})
}

func cleanupOrder(t *testing.T, db *sqlx.DB, orderID uuid.UUID) {
	t.Cleanup(func() {
		db.Exec(`DELETE FROM order_items WHERE order_id = $1`, orderID)
		db.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	})
}

func TestAddStockCreatesAndMergesProduct(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	residueType := uniqueResidueType()
	cleanupProduct(t, db, residueType)

	// First sale of a residue type creates the product row
	require.NoError(t, repo.AddStock(ctx, residueType, 100, 5.35))

	product, err := repo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)
	assert.InDelta(t, 100, product.TotalStockKg, 1e-9)
	assert.InDelta(t, 5.35, product.PricePerKg, 1e-9)
	assert.True(t, product.IsAvailable)

	// Later sales merge into the same row without touching the price
	require.NoError(t, repo.AddStock(ctx, residueType, 50, 9.99))

	product, err = repo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)
	assert.InDelta(t, 150, product.TotalStockKg, 1e-9)
	assert.InDelta(t, 5.35, product.PricePerKg, 1e-9)
}

func TestDecrementStockClampsAtZero(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	residueType := uniqueResidueType()
	cleanupProduct(t, db, residueType)

	require.NoError(t, repo.AddStock(ctx, residueType, 100, 2.0))
	product, err := repo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 250))

	product, err = repo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)
	assert.Zero(t, product.TotalStockKg)
	assert.False(t, product.IsAvailable)
}

func TestDecrementStockKeepsAvailabilityWhileStockRemains(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	residueType := uniqueResidueType()
	cleanupProduct(t, db, residueType)

	require.NoError(t, repo.AddStock(ctx, residueType, 100, 2.0))
	product, err := repo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 40))

	product, err = repo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)
	assert.InDelta(t, 60, product.TotalStockKg, 1e-9)
	assert.True(t, product.IsAvailable)
}

func TestApplyStockDecrementIsIdempotentPerOrder(t *testing.T) {
	db := testDB(t)
	productRepo := NewProductRepository(db)
	orderRepo := NewOrderRepository(db, productRepo)
	ctx := context.Background()

	residueType := uniqueResidueType()
	cleanupProduct(t, db, residueType)

	require.NoError(t, productRepo.AddStock(ctx, residueType, 100, 5.35))
	product, err := productRepo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)

	order := &models.Order{
		BuyerName:         "Asha",
		CompanyName:       "GreenFuel Co",
		BuyerMobileNumber: "9876543210",
		BuyerAddress:      "Pune",
		TotalAmount:       214,
		OrderStatus:       models.OrderPending,
	}
	productID := product.ID
	items := []models.OrderItem{
		{
			MarketplaceProductID: &productID,
			CropResidueType:      residueType,
			QuantityKg:           40,
			PricePerKgAtPurchase: 5.35,
		},
	}
	require.NoError(t, orderRepo.CreateWithItems(ctx, order, items))
	cleanupOrder(t, db, order.ID)

	require.NoError(t, orderRepo.ApplyStockDecrement(ctx, order.ID))
	// Replay must find stock_applied already set and change nothing
	require.NoError(t, orderRepo.ApplyStockDecrement(ctx, order.ID))

	product, err = productRepo.GetByResidueType(ctx, residueType)
	require.NoError(t, err)
	assert.InDelta(t, 60, product.TotalStockKg, 1e-9)

	applied, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, applied.StockApplied)
	assert.Equal(t, models.OrderProcessing, applied.OrderStatus)

	pending, err := orderRepo.ListStockPendingOrderIDs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, pending, order.ID)
}

func TestUpdateChosenActionIsConditional(t *testing.T) {
	db := testDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	submission := &models.FarmerSubmission{
		FarmerName:       "Ravi",
		MobileNumber:     "9123456780",
		LandAreaAcres:    2,
		CropGrown:        models.CropRice,
		CropYieldPerAcre: 2000,
		WasteType:        models.WasteDry,
		HarvestDate:      "2026-08-15",
		PickupStatus:     models.PickupPending,
	}
	require.NoError(t, repo.Create(ctx, submission))
	t.Cleanup(func() {
		db.Exec(`DELETE FROM farmers_submissions WHERE id = $1`, submission.ID)
	})

	require.NoError(t, repo.UpdateChosenAction(ctx, submission.ID, models.ActionSell))

	// A second decision for the same submission must not go through
	err := repo.UpdateChosenAction(ctx, submission.ID, models.ActionSell)
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ChosenAction)
	assert.Equal(t, models.ActionSell, *stored.ChosenAction)
}
