package entities

type Equipment struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	PurchaseDate    string  `json:"purchase_date"`
	PurchaseCost    float64 `json:"purchase_cost"`
	SerialNumber    string  `json:"serial_number"`
	Manufacturer    string  `json:"manufacturer"`
	Condition       string  `json:"condition"` // Excellent|Good|Fair|Poor
	LastMaintenance *string `json:"last_maintenance"`
	TotalHours      float64 `json:"total_hours"`
	AddedDate       string  `json:"added_date"`
}

var EquipmentTypes = []string{
	"Tractor", "Harvester", "Planter", "Cultivator",
	"Sprayer", "Irrigation System", "Hand Tools", "Other",
}

var EquipmentConditions = []string{"Excellent", "Good", "Fair", "Poor"}

func (e Equipment) RecordID() int   { return e.ID }
func (e Equipment) Created() string { return e.AddedDate }
