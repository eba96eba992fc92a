package services

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackSolutionsDeterministic(t *testing.T) {
	first := FallbackSolutions(models.WasteDry, models.CropRice, 1500, "Nashik, Maharashtra")
	second := FallbackSolutions(models.WasteDry, models.CropRice, 1500, "Nashik, Maharashtra")

	assert.Equal(t, first, second)
}

func TestFallbackSolutionsContent(t *testing.T) {
	result := FallbackSolutions(models.WasteDry, models.CropWheat, 1000, "Ludhiana, Punjab")

	require.Len(t, result.Solutions, 2)
	assert.Equal(t, "fallback", result.Source)

	composting := result.Solutions[0]
	assert.Equal(t, "Composting", composting.Title)
	assert.Equal(t, 80, composting.SustainabilityScore)
	assert.Equal(t, "₹500 - ₹1500", composting.PotentialRevenue)
	assert.NotEmpty(t, composting.Benefits)

	biogas := result.Solutions[1]
	assert.Equal(t, "Biogas Production", biogas.Title)
	assert.Equal(t, 90, biogas.SustainabilityScore)
	assert.Equal(t, "₹300 - ₹800", biogas.PotentialRevenue)

	assert.Contains(t, result.EnvironmentalImpact, "1000 kg")
	assert.Contains(t, result.EnvironmentalImpact, "500 kg")
	assert.Contains(t, result.RecommendedAction, "Ludhiana, Punjab")
}

func TestFallbackSolutionsScalesWithQuantity(t *testing.T) {
	tests := []struct {
		name              string
		quantityKg        float64
		compostingRevenue string
		biogasRevenue     string
	}{
		{"small lot", 100, "₹50 - ₹150", "₹30 - ₹80"},
		{"large lot", 10000, "₹5000 - ₹15000", "₹3000 - ₹8000"},
		{"zero waste", 0, "₹0 - ₹0", "₹0 - ₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FallbackSolutions(models.WasteWet, models.CropSugarcane, tt.quantityKg, "India")
			require.Len(t, result.Solutions, 2)
			assert.Equal(t, tt.compostingRevenue, result.Solutions[0].PotentialRevenue)
			assert.Equal(t, tt.biogasRevenue, result.Solutions[1].PotentialRevenue)
		})
	}
}
