package valuation

import (
	"errors"
	"fmt"
	"math"

	"marketplace-service/internal/models"
)

var (
	ErrInvalidInput = errors.New("invalid input: value must be a positive number")
	ErrInvalidUnit  = errors.New("invalid unit")
	ErrUnknownCrop  = errors.New("unknown crop")
)

// Land area multipliers to acres.
var acreMultipliers = map[models.LandUnit]float64{
	models.LandUnitAcre:    1,
	models.LandUnitHectare: 2.471,
	models.LandUnitBigha:   0.619,
}

// Yield multipliers to kilograms.
var kgMultipliers = map[models.YieldUnit]float64{
	models.YieldUnitTon:     1000,
	models.YieldUnitQuintal: 100,
	models.YieldUnitKg:      1,
}

// NormalizeLandToAcres converts a declared land area into acres.
func NormalizeLandToAcres(value float64, unit models.LandUnit) (float64, error) {
	if err := checkPositive(value); err != nil {
		return 0, err
	}
	mult, ok := acreMultipliers[unit]
	if !ok {
		return 0, fmt.Errorf("%w: land unit %q", ErrInvalidUnit, unit)
	}
	return value * mult, nil
}

// NormalizeYieldToKgPerAcre converts a declared yield into kg per acre.
//
// The total yield is yieldKg multiplied by the land value in its ORIGINAL unit,
// then divided by the acre-normalized land area. When the declared unit is not
// acres this double-applies a land-area factor; the stored market values and
// carbon figures downstream depend on this behavior, so it is kept as is.
func NormalizeYieldToKgPerAcre(yieldValue float64, yieldUnit models.YieldUnit, landValue float64, landUnit models.LandUnit) (float64, error) {
	if err := checkPositive(yieldValue); err != nil {
		return 0, err
	}
	kgMult, ok := kgMultipliers[yieldUnit]
	if !ok {
		return 0, fmt.Errorf("%w: yield unit %q", ErrInvalidUnit, yieldUnit)
	}

	totalAcres, err := NormalizeLandToAcres(landValue, landUnit)
	if err != nil {
		return 0, err
	}

	yieldInKg := yieldValue * kgMult
	totalYieldKg := yieldInKg * landValue
	return totalYieldKg / totalAcres, nil
}

func checkPositive(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidInput, value)
	}
	return nil
}
