package entities

// RevenuePlan totals are derived once at creation and stored.
type RevenuePlan struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	CropType             string  `json:"crop_type"`
	PlannedArea          float64 `json:"planned_area"`
	ExpectedYieldPerAcre float64 `json:"expected_yield_per_acre"`
	YieldUnit            string  `json:"yield_unit"`
	ExpectedPrice        float64 `json:"expected_price"`
	TotalExpectedYield   float64 `json:"total_expected_yield"`
	TotalExpectedRevenue float64 `json:"total_expected_revenue"`
	PlanningYear         int     `json:"planning_year"`
	Notes                string  `json:"notes"`
	Status               string  `json:"status"` // Planned|In Progress|Completed|Cancelled
	CreatedDate          string  `json:"created_date"`
}

const (
	RevenuePlanned    = "Planned"
	RevenueInProgress = "In Progress"
	RevenueCompleted  = "Completed"
	RevenueCancelled  = "Cancelled"
)

var RevenuePlanStatuses = []string{RevenuePlanned, RevenueInProgress, RevenueCompleted, RevenueCancelled}

var YieldUnits = []string{"bushels", "tons", "pounds", "boxes", "bags"}

func (p RevenuePlan) RecordID() int   { return p.ID }
func (p RevenuePlan) Created() string { return p.CreatedDate }
