package entities

type CropPrice struct {
	ID           int     `json:"id"`
	Crop         string  `json:"crop"`
	PriceDate    string  `json:"price_date"`
	Price        float64 `json:"price"`
	Unit         string  `json:"unit"`
	MarketSource string  `json:"market_source"`
	Notes        string  `json:"notes"`
	RecordedDate string  `json:"recorded_date"`
}

func (p CropPrice) RecordID() int   { return p.ID }
func (p CropPrice) Created() string { return p.RecordedDate }
