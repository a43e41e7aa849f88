package entities

type CostAnalysis struct {
	ID             int     `json:"id"`
	Crop           string  `json:"crop"`
	Area           float64 `json:"area"`
	SeedCost       float64 `json:"seed_cost"`
	FertilizerCost float64 `json:"fertilizer_cost"`
	PesticideCost  float64 `json:"pesticide_cost"`
	FuelCost       float64 `json:"fuel_cost"`
	LaborCost      float64 `json:"labor_cost"`
	EquipmentCost  float64 `json:"equipment_cost"`
	OtherCost      float64 `json:"other_cost"`
	TotalCost      float64 `json:"total_cost"`
	CostPerAcre    float64 `json:"cost_per_acre"`
	Year           int     `json:"year"`
	CreatedDate    string  `json:"created_date"`
}

// CostCategories names the seven cost columns in display order.
var CostCategories = []string{"Seeds", "Fertilizers", "Pesticides", "Fuel", "Labor", "Equipment", "Other"}

// Costs returns the seven cost columns in CostCategories order.
func (c CostAnalysis) Costs() []float64 {
	return []float64{c.SeedCost, c.FertilizerCost, c.PesticideCost, c.FuelCost, c.LaborCost, c.EquipmentCost, c.OtherCost}
}

func (c CostAnalysis) RecordID() int   { return c.ID }
func (c CostAnalysis) Created() string { return c.CreatedDate }
