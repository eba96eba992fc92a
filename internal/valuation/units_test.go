package valuation

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLandToAcres(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     models.LandUnit
		expected float64
	}{
		{"Acre passthrough", 3.5, models.LandUnitAcre, 3.5},
		{"Hectare", 2, models.LandUnitHectare, 4.942},
		{"Bigha", 10, models.LandUnitBigha, 6.19},
		{"Fractional acre", 0.25, models.LandUnitAcre, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acres, err := NormalizeLandToAcres(tt.value, tt.unit)
			assert.NoError(t, err)
			assert.InDelta(t, tt.expected, acres, 1e-9)
		})
	}
}

func TestNormalizeLandToAcres_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  models.LandUnit
		want  error
	}{
		{"zero", 0, models.LandUnitAcre, ErrInvalidInput},
		{"negative", -1.5, models.LandUnitHectare, ErrInvalidInput},
		{"unknown unit", 2, models.LandUnit("Guntha"), ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeLandToAcres(tt.value, tt.unit)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizeYieldToKgPerAcre(t *testing.T) {
	// 2 Hectare, 4 Ton: yieldKg=4000, total = 4000 * 2 (original land value),
	// acres = 2 * 2.471 = 4.942
	got, err := NormalizeYieldToKgPerAcre(4, models.YieldUnitTon, 2, models.LandUnitHectare)
	assert.NoError(t, err)
	assert.InDelta(t, 4000*2/4.942, got, 1e-9)
}

func TestNormalizeYieldToKgPerAcre_AcreLand(t *testing.T) {
	// With land already in acres the land-value factor and the acre divisor
	// cancel per-unit: 5 Quintal on 3 Acre = 500*3/3 = 500 kg/acre.
	got, err := NormalizeYieldToKgPerAcre(5, models.YieldUnitQuintal, 3, models.LandUnitAcre)
	assert.NoError(t, err)
	assert.InDelta(t, 500.0, got, 1e-9)
}

func TestNormalizeYieldToKgPerAcre_KgUnit(t *testing.T) {
	got, err := NormalizeYieldToKgPerAcre(800, models.YieldUnitKg, 10, models.LandUnitBigha)
	assert.NoError(t, err)
	assert.InDelta(t, 800*10/6.19, got, 1e-9)
}

func TestNormalizeYieldToKgPerAcre_Errors(t *testing.T) {
	tests := []struct {
		name      string
		yieldVal  float64
		yieldUnit models.YieldUnit
		landVal   float64
		landUnit  models.LandUnit
		want      error
	}{
		{"zero yield", 0, models.YieldUnitTon, 2, models.LandUnitAcre, ErrInvalidInput},
		{"negative land", 4, models.YieldUnitTon, -2, models.LandUnitAcre, ErrInvalidInput},
		{"bad yield unit", 4, models.YieldUnit("Maund"), 2, models.LandUnitAcre, ErrInvalidUnit},
		{"bad land unit", 4, models.YieldUnitTon, 2, models.LandUnit("Katha"), ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeYieldToKgPerAcre(tt.yieldVal, tt.yieldUnit, tt.landVal, tt.landUnit)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
