package entities

// CropPlan references its field by name only; removing a Field leaves plans untouched.
type CropPlan struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Field       string  `json:"field"`
	CropType    string  `json:"crop_type"`
	PlantDate   string  `json:"plant_date"`   // YYYY-MM-DD
	HarvestDate string  `json:"harvest_date"` // YYYY-MM-DD
	AreaPlanned float64 `json:"area_planned"`
	Status      string  `json:"status"` // Planned|Planted|Growing|Harvested
	CreatedDate string  `json:"created_date"`
}

const (
	PlanPlanned   = "Planned"
	PlanPlanted   = "Planted"
	PlanGrowing   = "Growing"
	PlanHarvested = "Harvested"
)

var CropPlanStatuses = []string{PlanPlanned, PlanPlanted, PlanGrowing, PlanHarvested}

var CropTypes = []string{
	"Corn", "Wheat", "Soybeans", "Rice", "Barley", "Oats", "Cotton",
	"Potatoes", "Tomatoes", "Carrots", "Onions", "Lettuce", "Apples", "Strawberries",
}

func (p CropPlan) RecordID() int   { return p.ID }
func (p CropPlan) Created() string { return p.CreatedDate }
