package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"marketplace-service/internal/database/minio"
	"marketplace-service/internal/event"
	"marketplace-service/internal/geocode"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/valuation"
)

// ErrActionAlreadyChosen is returned when a submission's action is set a
// second time. The choice is final: a Sell reconciles waste into marketplace
// stock, so a replay would merge the same waste again.
var ErrActionAlreadyChosen = errors.New("action already chosen for submission")

// SubmissionService owns the farmer submission lifecycle: intake with
// valuation, the sell/AI decision, waste images, and pickup scheduling.
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	inventory      *InventoryService
	geocoder       *geocode.Client
	minioClient    *minio.MinioClient
	publisher      *event.Publisher
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	inventory *InventoryService,
	geocoder *geocode.Client,
	minioClient *minio.MinioClient,
	publisher *event.Publisher,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		inventory:      inventory,
		geocoder:       geocoder,
		minioClient:    minioClient,
		publisher:      publisher,
	}
}

// CreateSubmission validates the farmer's form input, normalizes units,
// computes the waste valuation, and persists the submission. The derived
// figures are computed exactly once here and never recomputed on read.
func (s *SubmissionService) CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.FarmerSubmission, error) {
	if strings.TrimSpace(req.FarmerName) == "" {
		return nil, fmt.Errorf("farmer name is required")
	}
	if strings.TrimSpace(req.MobileNumber) == "" {
		return nil, fmt.Errorf("mobile number is required")
	}
	if strings.TrimSpace(req.HarvestDate) == "" {
		return nil, fmt.Errorf("harvest date is required")
	}
	if req.WasteType != models.WasteWet && req.WasteType != models.WasteDry {
		return nil, fmt.Errorf("waste type must be %q or %q", models.WasteWet, models.WasteDry)
	}
	if !valuation.KnownCrop(req.CropGrown) {
		return nil, fmt.Errorf("%w: %q", valuation.ErrUnknownCrop, req.CropGrown)
	}

	landAcres, err := valuation.NormalizeLandToAcres(req.LandArea, req.LandUnit)
	if err != nil {
		return nil, err
	}
	yieldKgPerAcre, err := valuation.NormalizeYieldToKgPerAcre(req.CropYield, req.YieldUnit, req.LandArea, req.LandUnit)
	if err != nil {
		return nil, err
	}

	result, err := valuation.CalculateWaste(landAcres, yieldKgPerAcre, req.CropGrown)
	if err != nil {
		return nil, err
	}

	address := req.CropFieldAddress
	if address == nil && req.CropFieldLocationLat != nil && req.CropFieldLocationLon != nil {
		resolved, err := s.resolveAddress(*req.CropFieldLocationLat, *req.CropFieldLocationLon)
		if err != nil {
			slog.Warn("reverse geocoding failed, storing coordinates only", "error", err)
		}
		address = &resolved
	}

	submission := &models.FarmerSubmission{
		FarmerName:              req.FarmerName,
		MobileNumber:            req.MobileNumber,
		LandAreaAcres:           landAcres,
		CropGrown:               req.CropGrown,
		CropYieldPerAcre:        yieldKgPerAcre,
		CropFieldAddress:        address,
		CropFieldLocationLat:    req.CropFieldLocationLat,
		CropFieldLocationLon:    req.CropFieldLocationLon,
		WasteType:               req.WasteType,
		HarvestDate:             req.HarvestDate,
		CalculatedWasteTons:     &result.WasteTons,
		EstimatedMarketValueINR: &result.MarketValueINR,
		CarbonFootprintKgCO2e:   &result.CarbonFootprintKgCO2e,
		PickupStatus:            models.PickupPending,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	slog.Info("Farmer submission created",
		"submission_id", submission.ID,
		"crop", submission.CropGrown,
		"waste_tons", result.WasteTons,
	)
	return submission, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (*models.FarmerSubmission, error) {
	submissionID, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	return s.submissionRepo.GetByID(ctx, submissionID)
}

func (s *SubmissionService) ListSubmissions(ctx context.Context) ([]models.FarmerSubmission, error) {
	return s.submissionRepo.GetAll(ctx)
}

// validateActionChange checks that the requested action is valid and that no
// action has been recorded yet.
func validateActionChange(current *models.ChosenAction, next models.ChosenAction) error {
	if next != models.ActionSell && next != models.ActionAISolutions {
		return fmt.Errorf("action must be %q or %q", models.ActionSell, models.ActionAISolutions)
	}
	if current != nil {
		return fmt.Errorf("%w: already %q", ErrActionAlreadyChosen, *current)
	}
	return nil
}

// ChooseAction records the farmer's decision. Choosing Sell also merges the
// submission's waste into marketplace stock, so the decision is accepted at
// most once per submission.
func (s *SubmissionService) ChooseAction(ctx context.Context, id string, action models.ChosenAction) (*models.FarmerSubmission, error) {
	submissionID, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := validateActionChange(submission.ChosenAction, action); err != nil {
		return nil, err
	}

	if err := s.submissionRepo.UpdateChosenAction(ctx, submissionID, action); err != nil {
		return nil, err
	}
	submission.ChosenAction = &action

	if action == models.ActionSell {
		if err := s.inventory.ReconcileSubmission(ctx, submission); err != nil {
			return nil, fmt.Errorf("failed to list waste on marketplace: %w", err)
		}
	}

	return submission, nil
}

// UploadWasteImage stores the image in object storage and links it to the
// submission.
func (s *SubmissionService) UploadWasteImage(ctx context.Context, id string, data []byte, contentType string) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	submissionID, err := parseUUID(id)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image data is empty")
	}

	objectName := fmt.Sprintf("%s/%d%s", submissionID, time.Now().Unix(), extensionFor(contentType))
	url, err := s.minioClient.UploadBytes(ctx, minio.Storage.WasteImages, objectName, data, contentType)
	if err != nil {
		return "", err
	}

	if err := s.submissionRepo.UpdateImageURL(ctx, submissionID, url); err != nil {
		return "", err
	}
	return url, nil
}

// SchedulePickup sets the pickup date and notifies logistics over RabbitMQ.
func (s *SubmissionService) SchedulePickup(ctx context.Context, id string, pickupDate string) (*models.FarmerSubmission, error) {
	if _, err := time.Parse("2006-01-02", pickupDate); err != nil {
		return nil, fmt.Errorf("pickup date must be YYYY-MM-DD: %w", err)
	}

	submissionID, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := s.submissionRepo.SchedulePickup(ctx, submissionID, pickupDate); err != nil {
		return nil, err
	}
	submission.PickupStatus = models.PickupScheduled
	submission.PickupScheduledDate = &pickupDate

	if s.publisher != nil {
		quantityKg := 0.0
		if submission.CalculatedWasteTons != nil {
			quantityKg = *submission.CalculatedWasteTons * 1000
		}
		address := ""
		if submission.CropFieldAddress != nil {
			address = *submission.CropFieldAddress
		}
		if err := s.publisher.PublishPickupScheduled(ctx, event.PickupScheduledEvent{
			SubmissionID: submission.ID.String(),
			FarmerName:   submission.FarmerName,
			MobileNumber: submission.MobileNumber,
			ResidueType:  valuation.ByproductName(submission.CropGrown),
			QuantityKg:   quantityKg,
			PickupDate:   pickupDate,
			Address:      address,
		}); err != nil {
			slog.Warn("failed to publish pickup event", "submission_id", submission.ID, "error", err)
		}
	}

	return submission, nil
}

// UpdatePickupStatus advances the pickup lifecycle.
func (s *SubmissionService) UpdatePickupStatus(ctx context.Context, id string, status models.PickupStatus) error {
	switch status {
	case models.PickupPending, models.PickupScheduled, models.PickupInTransit, models.PickupCompleted:
	default:
		return fmt.Errorf("invalid pickup status %q", status)
	}

	submissionID, err := parseUUID(id)
	if err != nil {
		return err
	}
	return s.submissionRepo.UpdatePickupStatus(ctx, submissionID, status)
}

func (s *SubmissionService) resolveAddress(lat, lon float64) (string, error) {
	if s.geocoder == nil {
		return fmt.Sprintf("Lat: %v, Lon: %v", lat, lon), nil
	}
	return s.geocoder.ReverseGeocode(lat, lon)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
