package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FarmerSubmission is one farmer's declared harvest-waste event. Derived fields
// (waste tons, market value, carbon footprint) are computed at creation time from
// the crop coefficient tables and are never user-editable.
type FarmerSubmission struct {
	ID                      uuid.UUID      `db:"id" json:"id"`
	FarmerName              string         `db:"farmer_name" json:"farmer_name"`
	MobileNumber            string         `db:"mobile_number" json:"mobile_number"`
	LandAreaAcres           float64        `db:"land_area_acres" json:"land_area_acres"`
	CropGrown               Crop           `db:"crop_grown" json:"crop_grown"`
	CropYieldPerAcre        float64        `db:"crop_yield_per_acre" json:"crop_yield_per_acre"`
	CropFieldAddress        *string        `db:"crop_field_address" json:"crop_field_address,omitempty"`
	CropFieldLocationLat    *float64       `db:"crop_field_location_lat" json:"crop_field_location_lat,omitempty"`
	CropFieldLocationLon    *float64       `db:"crop_field_location_lon" json:"crop_field_location_lon,omitempty"`
	WasteType               WasteType      `db:"waste_type" json:"waste_type"`
	HarvestDate             string         `db:"harvest_date" json:"harvest_date"`
	ImageURL                *string        `db:"image_url" json:"image_url,omitempty"`
	CalculatedWasteTons     *float64       `db:"calculated_waste_tons" json:"calculated_waste_tons,omitempty"`
	EstimatedMarketValueINR *float64       `db:"estimated_market_value_inr" json:"estimated_market_value_inr,omitempty"`
	CarbonFootprintKgCO2e   *float64       `db:"carbon_footprint_kg_co2e" json:"carbon_footprint_kg_co2e,omitempty"`
	ChosenAction            *ChosenAction  `db:"chosen_action" json:"chosen_action,omitempty"`
	AIRecommendations       pq.StringArray `db:"ai_recommendations" json:"ai_recommendations,omitempty"`
	PickupStatus            PickupStatus   `db:"pickup_status" json:"pickup_status"`
	PickupScheduledDate     *string        `db:"pickup_scheduled_date" json:"pickup_scheduled_date,omitempty"`
	CreatedAt               time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time      `db:"updated_at" json:"updated_at"`
}

// CreateSubmissionRequest carries the raw farmer form input. Land area and yield
// arrive in whatever unit the farmer declared; normalization happens server-side.
type CreateSubmissionRequest struct {
	FarmerName           string    `json:"farmer_name"`
	MobileNumber         string    `json:"mobile_number"`
	LandArea             float64   `json:"land_area"`
	LandUnit             LandUnit  `json:"land_unit"`
	CropYield            float64   `json:"crop_yield"`
	YieldUnit            YieldUnit `json:"yield_unit"`
	CropGrown            Crop      `json:"crop_grown"`
	WasteType            WasteType `json:"waste_type"`
	HarvestDate          string    `json:"harvest_date"`
	CropFieldAddress     *string   `json:"crop_field_address,omitempty"`
	CropFieldLocationLat *float64  `json:"crop_field_location_lat,omitempty"`
	CropFieldLocationLon *float64  `json:"crop_field_location_lon,omitempty"`
}

type ChooseActionRequest struct {
	Action ChosenAction `json:"action"`
}

type SchedulePickupRequest struct {
	PickupDate string `json:"pickup_date"`
}
