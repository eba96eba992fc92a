package valuation

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateWaste_Rice(t *testing.T) {
	v, err := CalculateWaste(1, 1000, models.CropRice)
	assert.NoError(t, err)

	assert.InDelta(t, 1.5, v.WasteTons, 1e-9, "1 acre x 1 ton/acre x RPR 1.5")
	assert.InDelta(t, 1500.0, v.WasteKg, 1e-9)
	assert.InDelta(t, 8025.0, v.MarketValueINR, 1e-9, "1500 kg x 5.35 INR/kg")
	assert.InDelta(t, 2026.5, v.CarbonFootprintKgCO2e, 1e-9, "1500 kg x 1.351")
}

func TestCalculateWaste_AllCrops(t *testing.T) {
	tests := []struct {
		crop      models.Crop
		wasteTons float64
	}{
		{models.CropRice, 1.5},
		{models.CropWheat, 1.3},
		{models.CropSugarcane, 0.3},
		{models.CropCoconutFiber, 0.35},
		{models.CropPeanutShell, 0.25},
		{models.CropCornStalks, 1.2},
		{models.CropCottonWaste, 0.15},
	}

	for _, tt := range tests {
		t.Run(string(tt.crop), func(t *testing.T) {
			v, err := CalculateWaste(1, 1000, tt.crop)
			assert.NoError(t, err)
			assert.InDelta(t, tt.wasteTons, v.WasteTons, 1e-9)
			assert.InDelta(t, tt.wasteTons*1000, v.WasteKg, 1e-9)
		})
	}
}

func TestCalculateWaste_Deterministic(t *testing.T) {
	first, err := CalculateWaste(4.942, 1618.77, models.CropSugarcane)
	assert.NoError(t, err)
	second, err := CalculateWaste(4.942, 1618.77, models.CropSugarcane)
	assert.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must yield bit-identical outputs")
}

func TestCalculateWaste_UnknownCrop(t *testing.T) {
	v, err := CalculateWaste(1, 1000, models.Crop("Bamboo"))
	assert.ErrorIs(t, err, ErrUnknownCrop)
	assert.Nil(t, v, "unknown crop must not produce a partial result")
}

func TestCalculateWaste_InvalidInputs(t *testing.T) {
	_, err := CalculateWaste(0, 1000, models.CropRice)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateWaste(1, -5, models.CropRice)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestByproductName(t *testing.T) {
	tests := []struct {
		crop     models.Crop
		expected string
	}{
		{models.CropRice, "Rice Husk"},
		{models.CropWheat, "Wheat Straw"},
		{models.CropSugarcane, "Sugarcane Bagasse"},
		{models.CropCoconutFiber, "Coconut Fiber"},
		{models.CropPeanutShell, "Peanut Shell"},
		{models.CropCornStalks, "Corn Stalks"},
		{models.CropCottonWaste, "Cotton Waste"},
		// Unknown crops pass through unchanged
		{models.Crop("Jute"), "Jute"},
	}

	for _, tt := range tests {
		t.Run(string(tt.crop), func(t *testing.T) {
			assert.Equal(t, tt.expected, ByproductName(tt.crop))
		})
	}
}

func TestByproductPrice_UnknownCrop(t *testing.T) {
	_, err := ByproductPrice(models.Crop("Jute"))
	assert.ErrorIs(t, err, ErrUnknownCrop)
}

func TestKnownCrop(t *testing.T) {
	assert.True(t, KnownCrop(models.CropCornStalks))
	assert.False(t, KnownCrop(models.Crop("Bamboo")))
}
