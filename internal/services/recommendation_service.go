package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"marketplace-service/internal/ai/gemini"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
)

const geminiTimeout = 15 * time.Second

// WasteSolution is one valorization pathway suggested for a submission.
type WasteSolution struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Benefits            []string `json:"benefits"`
	Implementation      string   `json:"implementation"`
	PotentialRevenue    string   `json:"potential_revenue"`
	SustainabilityScore int      `json:"sustainability_score"`
}

type WasteSolutionsResult struct {
	Solutions           []WasteSolution `json:"solutions"`
	EnvironmentalImpact string          `json:"environmental_impact"`
	RecommendedAction   string          `json:"recommended_action"`
	Source              string          `json:"source"`
}

// RecommendationService produces valorization suggestions for a submission's
// waste. It asks Gemini first and falls back to a deterministic template when
// the model is unavailable, times out, or returns an unusable reply, so the
// endpoint always answers.
type RecommendationService struct {
	geminiClient   *gemini.GeminiClient
	submissionRepo *repository.SubmissionRepository
}

func NewRecommendationService(geminiClient *gemini.GeminiClient, submissionRepo *repository.SubmissionRepository) *RecommendationService {
	return &RecommendationService{
		geminiClient:   geminiClient,
		submissionRepo: submissionRepo,
	}
}

// GenerateSolutions returns valorization suggestions for the submission and
// records the chosen solution titles on it.
func (s *RecommendationService) GenerateSolutions(ctx context.Context, submission *models.FarmerSubmission) (*WasteSolutionsResult, error) {
	quantityKg := 0.0
	if submission.CalculatedWasteTons != nil {
		quantityKg = *submission.CalculatedWasteTons * 1000
	}
	location := "India"
	if submission.CropFieldAddress != nil && *submission.CropFieldAddress != "" {
		location = *submission.CropFieldAddress
	}

	result := s.askGemini(ctx, submission, quantityKg, location)
	if result == nil {
		result = FallbackSolutions(submission.WasteType, submission.CropGrown, quantityKg, location)
	}

	titles := make([]string, 0, len(result.Solutions))
	for _, solution := range result.Solutions {
		titles = append(titles, solution.Title)
	}
	if err := s.submissionRepo.UpdateAIRecommendations(ctx, submission.ID, titles); err != nil {
		slog.Warn("failed to persist recommendation titles", "submission_id", submission.ID, "error", err)
	}

	return result, nil
}

func (s *RecommendationService) askGemini(ctx context.Context, submission *models.FarmerSubmission, quantityKg float64, location string) *WasteSolutionsResult {
	if s.geminiClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	prompt := fmt.Sprintf(gemini.WasteSolutionsPromptTemplate,
		submission.WasteType, submission.CropGrown,
		submission.WasteType, quantityKg, location, submission.CropGrown,
	)

	raw, err := s.geminiClient.SendPrompt(ctx, prompt)
	if err != nil {
		slog.Warn("gemini request failed, using fallback solutions", "submission_id", submission.ID, "error", err)
		return nil
	}

	// Re-marshal the loose map into the typed result so malformed replies
	// surface as decode errors instead of partial structs.
	data, err := json.Marshal(raw)
	if err != nil {
		slog.Warn("gemini reply could not be re-encoded", "submission_id", submission.ID, "error", err)
		return nil
	}
	var result WasteSolutionsResult
	if err := json.Unmarshal(data, &result); err != nil || len(result.Solutions) == 0 {
		slog.Warn("gemini reply did not match expected shape, using fallback solutions",
			"submission_id", submission.ID, "error", err)
		return nil
	}

	result.Source = "gemini"
	return &result
}

// FallbackSolutions is the deterministic template used when the AI is
// unreachable. Same inputs always produce the same output.
func FallbackSolutions(wasteType models.WasteType, crop models.Crop, quantityKg float64, location string) *WasteSolutionsResult {
	return &WasteSolutionsResult{
		Solutions: []WasteSolution{
			{
				Title:       "Composting",
				Description: fmt.Sprintf("Convert your %s %s waste into nutrient-rich compost for soil improvement.", wasteType, crop),
				Benefits: []string{
					"Improves soil health",
					"Reduces chemical fertilizer costs",
					"Creates sellable organic compost",
				},
				Implementation:      "Layer the waste with green matter and turn the pile every 2 weeks for 2-3 months.",
				PotentialRevenue:    fmt.Sprintf("₹%.0f - ₹%.0f", quantityKg*0.5, quantityKg*1.5),
				SustainabilityScore: 80,
			},
			{
				Title:       "Biogas Production",
				Description: fmt.Sprintf("Use your %s waste as feedstock for a small-scale biogas digester.", crop),
				Benefits: []string{
					"Generates cooking fuel",
					"Produces slurry usable as fertilizer",
					"Reduces methane from open decomposition",
				},
				Implementation:      "Feed the waste into an anaerobic digester with cattle dung in a 1:1 ratio.",
				PotentialRevenue:    fmt.Sprintf("₹%.0f - ₹%.0f", quantityKg*0.3, quantityKg*0.8),
				SustainabilityScore: 90,
			},
		},
		EnvironmentalImpact: fmt.Sprintf(
			"Processing %.0f kg of waste instead of burning it avoids approximately %.0f kg of CO2-equivalent emissions.",
			quantityKg, quantityKg*0.5,
		),
		RecommendedAction: fmt.Sprintf(
			"Start with composting for immediate returns in %s, then evaluate biogas once volumes are steady.",
			location,
		),
		Source: "fallback",
	}
}
