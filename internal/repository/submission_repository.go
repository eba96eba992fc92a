package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.FarmerSubmission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = time.Now()

	query := `
		INSERT INTO farmers_submissions (
			id, farmer_name, mobile_number, land_area_acres, crop_grown, crop_yield_per_acre,
			crop_field_address, crop_field_location_lat, crop_field_location_lon,
			waste_type, harvest_date, image_url,
			calculated_waste_tons, estimated_market_value_inr, carbon_footprint_kg_co2e,
			chosen_action, ai_recommendations, pickup_status, pickup_scheduled_date,
			created_at, updated_at
		) VALUES (
			:id, :farmer_name, :mobile_number, :land_area_acres, :crop_grown, :crop_yield_per_acre,
			:crop_field_address, :crop_field_location_lat, :crop_field_location_lon,
			:waste_type, :harvest_date, :image_url,
			:calculated_waste_tons, :estimated_market_value_inr, :carbon_footprint_kg_co2e,
			:chosen_action, :ai_recommendations, :pickup_status, :pickup_scheduled_date,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, submission)
	if err != nil {
		return fmt.Errorf("failed to create farmer submission: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FarmerSubmission, error) {
	var submission models.FarmerSubmission
	query := `SELECT * FROM farmers_submissions WHERE id = $1`

	err := r.db.GetContext(ctx, &submission, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("farmer submission not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get farmer submission: %w", err)
	}

	return &submission, nil
}

func (r *SubmissionRepository) GetAll(ctx context.Context) ([]models.FarmerSubmission, error) {
	var submissions []models.FarmerSubmission
	query := `SELECT * FROM farmers_submissions ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &submissions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get farmer submissions: %w", err)
	}

	return submissions, nil
}

// UpdateChosenAction records the farmer's decision for a submission. The
// update is conditional on no action being set yet, so concurrent or replayed
// requests cannot record a decision twice.
func (r *SubmissionRepository) UpdateChosenAction(ctx context.Context, id uuid.UUID, action models.ChosenAction) error {
	query := `
		UPDATE farmers_submissions SET chosen_action = $2, updated_at = $3
		WHERE id = $1 AND chosen_action IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, action, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update chosen action: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("chosen action already set or submission not found: %s", id)
	}

	return nil
}

// UpdateAIRecommendations stores generated solution titles on the submission.
func (r *SubmissionRepository) UpdateAIRecommendations(ctx context.Context, id uuid.UUID, recommendations []string) error {
	query := `UPDATE farmers_submissions SET ai_recommendations = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, pq.StringArray(recommendations), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update ai recommendations: %w", err)
	}

	return nil
}

// UpdateImageURL stores the uploaded waste image location.
func (r *SubmissionRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE farmers_submissions SET image_url = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, imageURL, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update image url: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("farmer submission not found: %s", id)
	}

	return nil
}

// SchedulePickup moves the submission to Scheduled with the given pickup date.
func (r *SubmissionRepository) SchedulePickup(ctx context.Context, id uuid.UUID, pickupDate string) error {
	query := `
		UPDATE farmers_submissions SET
			pickup_status = $2, pickup_scheduled_date = $3, updated_at = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, models.PickupScheduled, pickupDate, time.Now())
	if err != nil {
		return fmt.Errorf("failed to schedule pickup: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("farmer submission not found: %s", id)
	}

	return nil
}

// UpdatePickupStatus advances the pickup lifecycle (Pending, Scheduled, In Transit, Completed).
func (r *SubmissionRepository) UpdatePickupStatus(ctx context.Context, id uuid.UUID, status models.PickupStatus) error {
	query := `UPDATE farmers_submissions SET pickup_status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update pickup status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("farmer submission not found: %s", id)
	}

	return nil
}
