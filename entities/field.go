package entities

type Field struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Size        float64 `json:"size"`       // acres
	SoilType    string  `json:"soil_type"`  // Clay|Sandy|Loam|Silty|Rocky
	Irrigation  string  `json:"irrigation"` // Yes|No
	Notes       string  `json:"notes"`
	CreatedDate string  `json:"created_date"`
}

var SoilTypes = []string{"Clay", "Sandy", "Loam", "Silty", "Rocky"}

var IrrigationOptions = []string{"Yes", "No"}

func (f Field) RecordID() int   { return f.ID }
func (f Field) Created() string { return f.CreatedDate }
