package service

import "farm/entities"

type FieldInput struct {
	Name       string  `json:"name" validate:"notblank"`
	Size       float64 `json:"size" validate:"gt=0"`
	SoilType   string  `json:"soil_type"`
	Irrigation string  `json:"irrigation"`
	Notes      string  `json:"notes"`
}

type CropPlanInput struct {
	Name        string  `json:"name" validate:"notblank"`
	Field       string  `json:"field" validate:"notblank"`
	CropType    string  `json:"crop_type" validate:"notblank"`
	PlantDate   string  `json:"plant_date" validate:"datetime=2006-01-02"`
	HarvestDate string  `json:"harvest_date" validate:"datetime=2006-01-02"`
	AreaPlanned float64 `json:"area_planned" validate:"gt=0"`
	Status      string  `json:"status"` // defaults to Planned
}

const (
	ActivityPlanting   = "Planting"
	ActivityHarvesting = "Harvesting"
)

// Activity is one calendar entry derived from a crop plan.
type Activity struct {
	Date   string `json:"date"`
	Day    int    `json:"day"`
	Type   string `json:"type"` // Planting|Harvesting
	Season string `json:"season"`
	PlanID int    `json:"plan_id"`
	Plan   string `json:"plan"`
	Crop   string `json:"crop"`
	Field  string `json:"field"`
}

type PlanningReport struct {
	TotalFields      int            `json:"total_fields"`
	TotalPlans       int            `json:"total_plans"`
	TotalArea        float64        `json:"total_area"`
	PlannedArea      float64        `json:"planned_area"`
	Utilization      float64        `json:"utilization"` // planned area as a percent of field area
	AvgGrowingDays   float64        `json:"avg_growing_days"`
	CropDistribution map[string]int `json:"crop_distribution"`
	StatusCounts     map[string]int `json:"status_counts"`
	PlantingSeasons  map[string]int `json:"planting_seasons"`
}

type PlannerService interface {
	CreateField(in FieldInput) (entities.Field, error)
	ListFields() []entities.Field
	// RemoveFieldByName drops every field with exactly this name. Crop plans
	// naming it are left alone.
	RemoveFieldByName(name string) (int, error)

	CreateCropPlan(in CropPlanInput) (entities.CropPlan, error)
	UpdateCropPlanStatus(id int, status string) (entities.CropPlan, error)
	ListCropPlans() []entities.CropPlan

	// Calendar lists plantings and harvests falling in month (1-12) of any
	// year, or of year when year is non-zero.
	Calendar(year, month int) ([]Activity, error)
	Report() PlanningReport
}
