package entities

type Operation struct {
	ID           int     `json:"id"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Field        string  `json:"field"`
	Description  string  `json:"description"`
	Hours        float64 `json:"hours"`
	Workers      int     `json:"workers"`
	Cost         float64 `json:"cost"`
	RecordedDate string  `json:"recorded_date"`
}

var OperationTypes = []string{
	"Planting", "Harvesting", "Irrigation", "Fertilizing",
	"Pest Control", "Soil Preparation", "Equipment Maintenance", "Other",
}

func (o Operation) RecordID() int   { return o.ID }
func (o Operation) Created() string { return o.RecordedDate }
