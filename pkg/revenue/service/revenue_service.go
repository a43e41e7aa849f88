package service

import (
	"io"

	"farm/entities"
	"farm/pkg/analyzer"
	"farm/pkg/report"
	"farm/pkg/revenue/importer"
)

type RevenuePlanInput struct {
	Name                 string  `json:"name" validate:"notblank"`
	CropType             string  `json:"crop_type" validate:"notblank"`
	PlannedArea          float64 `json:"planned_area" validate:"gt=0"`
	ExpectedYieldPerAcre float64 `json:"expected_yield_per_acre" validate:"gte=0"`
	YieldUnit            string  `json:"yield_unit"` // defaults to bushels
	ExpectedPrice        float64 `json:"expected_price" validate:"gte=0"`
	PlanningYear         int     `json:"planning_year" validate:"min=2020,max=2030"`
	Notes                string  `json:"notes"`
}

type CropPriceInput struct {
	Crop         string  `json:"crop" validate:"notblank"`
	PriceDate    string  `json:"price_date" validate:"omitempty,datetime=2006-01-02"` // defaults to today
	Price        float64 `json:"price" validate:"gt=0"`
	Unit         string  `json:"unit"` // defaults to bushels
	MarketSource string  `json:"market_source"`
	Notes        string  `json:"notes"`
}

type CostAnalysisInput struct {
	Crop           string  `json:"crop" validate:"notblank"`
	Area           float64 `json:"area" validate:"gt=0"`
	SeedCost       float64 `json:"seed_cost" validate:"gte=0"`
	FertilizerCost float64 `json:"fertilizer_cost" validate:"gte=0"`
	PesticideCost  float64 `json:"pesticide_cost" validate:"gte=0"`
	FuelCost       float64 `json:"fuel_cost" validate:"gte=0"`
	LaborCost      float64 `json:"labor_cost" validate:"gte=0"`
	EquipmentCost  float64 `json:"equipment_cost" validate:"gte=0"`
	OtherCost      float64 `json:"other_cost" validate:"gte=0"`
	Year           int     `json:"year" validate:"min=2020,max=2030"`
}

type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type PriceTrend struct {
	Crop          string       `json:"crop"`
	Points        []PricePoint `json:"points"` // oldest first
	Min           float64      `json:"min"`
	Max           float64      `json:"max"`
	Average       float64      `json:"average"`
	Latest        float64      `json:"latest"`
	Change        float64      `json:"change"`         // latest minus previous
	ChangePercent float64      `json:"change_percent"` // 0 when previous is 0
}

type CostBreakdown struct {
	Year           int             `json:"year"` // 0 means all years
	Analyses       int             `json:"analyses"`
	TotalCost      float64         `json:"total_cost"`
	TotalArea      float64         `json:"total_area"`
	AvgCostPerAcre float64         `json:"avg_cost_per_acre"`
	Categories     []report.Amount `json:"categories"`
}

type Profitability struct {
	Results []analyzer.Result `json:"results"`
	Summary analyzer.Summary  `json:"summary"`
}

type RevenueSummary struct {
	Year         int                    `json:"year"`
	Plans        []entities.RevenuePlan `json:"plans"`
	TotalArea    float64                `json:"total_area"`
	TotalRevenue float64                `json:"total_revenue"`
	ByCrop       []report.Amount        `json:"by_crop"`
}

type CostReport struct {
	Year      int                     `json:"year"`
	Analyses  []entities.CostAnalysis `json:"analyses"`
	Breakdown CostBreakdown           `json:"breakdown"`
}

type Years struct {
	Revenue []int `json:"revenue"`
	Cost    []int `json:"cost"`
}

type ImportResult struct {
	Created []entities.CropPrice `json:"created"`
	Skipped []importer.Skipped   `json:"skipped"`
}

type RevenueService interface {
	CreatePlan(in RevenuePlanInput) (entities.RevenuePlan, error)
	UpdatePlanStatus(id int, status string) (entities.RevenuePlan, error)
	ListPlans() []entities.RevenuePlan
	RevenueByCrop() []report.Amount

	AddPrice(in CropPriceInput) (entities.CropPrice, error)
	ListPrices() []entities.CropPrice
	// LatestPrices keeps the newest price_date per crop.
	LatestPrices() []entities.CropPrice
	// PriceHistory is every price for crop, newest first.
	PriceHistory(crop string) []entities.CropPrice
	PriceTrend(crop string) (PriceTrend, error)
	// ImportPrices adds every valid row through AddPrice. Rows that fail
	// validation are reported as skipped, not as an error.
	ImportPrices(r io.Reader, f importer.Format) (ImportResult, error)

	AddCostAnalysis(in CostAnalysisInput) (entities.CostAnalysis, error)
	ListCostAnalyses() []entities.CostAnalysis
	CostBreakdown(year int) CostBreakdown

	Profitability() (Profitability, error)
	RevenueSummary(year int) RevenueSummary
	CostReport(year int) CostReport
	Years() Years
}
