package valuation

import (
	"fmt"

	"marketplace-service/internal/models"
)

// Residue-to-product ratio: waste tons generated per ton of harvested crop.
var rprValues = map[models.Crop]float64{
	models.CropRice:         1.5,
	models.CropWheat:        1.3,
	models.CropSugarcane:    0.3,
	models.CropCoconutFiber: 0.35,
	models.CropPeanutShell:  0.25,
	models.CropCornStalks:   1.2,
	models.CropCottonWaste:  0.15,
}

// Market price of the crop's byproduct, INR per kg.
var byproductPrices = map[models.Crop]float64{
	models.CropRice:         5.35,
	models.CropWheat:        8.5,
	models.CropSugarcane:    2.0,
	models.CropCoconutFiber: 179,
	models.CropPeanutShell:  7.5,
	models.CropCornStalks:   6.5,
	models.CropCottonWaste:  10.5,
}

// kg CO2e avoided per kg of waste diverted from burning.
var emissionFactors = map[models.Crop]float64{
	models.CropRice:         1.351,
	models.CropWheat:        1.351,
	models.CropSugarcane:    1.420,
	models.CropCoconutFiber: 1.560,
	models.CropPeanutShell:  1.500,
	models.CropCornStalks:   1.350,
	models.CropCottonWaste:  1.450,
}

var byproductNames = map[models.Crop]string{
	models.CropRice:         "Rice Husk",
	models.CropWheat:        "Wheat Straw",
	models.CropSugarcane:    "Sugarcane Bagasse",
	models.CropCoconutFiber: "Coconut Fiber",
	models.CropPeanutShell:  "Peanut Shell",
	models.CropCornStalks:   "Corn Stalks",
	models.CropCottonWaste:  "Cotton Waste",
}

// WasteValuation holds the derived values for one submission. Identical inputs
// always produce identical outputs; there is no hidden state.
type WasteValuation struct {
	WasteTons             float64 `json:"waste_tons"`
	WasteKg               float64 `json:"waste_kg"`
	MarketValueINR        float64 `json:"market_value_inr"`
	CarbonFootprintKgCO2e float64 `json:"carbon_footprint_kg_co2e"`
}

// CalculateWaste derives waste mass, market value, and carbon footprint from
// acre-normalized inputs. The crop must be present in all coefficient tables;
// this is checked before any arithmetic so an unknown crop never produces a
// partial result.
func CalculateWaste(landAreaAcres, yieldKgPerAcre float64, crop models.Crop) (*WasteValuation, error) {
	if err := checkPositive(landAreaAcres); err != nil {
		return nil, err
	}
	if err := checkPositive(yieldKgPerAcre); err != nil {
		return nil, err
	}

	rpr, ok := rprValues[crop]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCrop, crop)
	}
	price, ok := byproductPrices[crop]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no byproduct price", ErrUnknownCrop, crop)
	}
	emission, ok := emissionFactors[crop]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no emission factor", ErrUnknownCrop, crop)
	}

	wasteTons := landAreaAcres * (yieldKgPerAcre / 1000) * rpr
	wasteKg := wasteTons * 1000

	return &WasteValuation{
		WasteTons:             wasteTons,
		WasteKg:               wasteKg,
		MarketValueINR:        wasteKg * price,
		CarbonFootprintKgCO2e: wasteKg * emission,
	}, nil
}

// ByproductName maps a crop to its marketplace-facing residue name. Unknown
// crops pass through unchanged; the marketplace key is then the crop name itself.
func ByproductName(crop models.Crop) string {
	if name, ok := byproductNames[crop]; ok {
		return name
	}
	return string(crop)
}

// ByproductPrice returns the fixed per-kg market price for a crop's residue.
func ByproductPrice(crop models.Crop) (float64, error) {
	price, ok := byproductPrices[crop]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no byproduct price", ErrUnknownCrop, crop)
	}
	return price, nil
}

// KnownCrop reports whether the crop is covered by all coefficient tables.
func KnownCrop(crop models.Crop) bool {
	_, ok := rprValues[crop]
	return ok
}
