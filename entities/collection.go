package entities

import "time"

// CollectionDoc holds one whole collection when the sqlite store driver is used.
type CollectionDoc struct {
	Name      string `gorm:"primaryKey" json:"name"`
	Payload   string `json:"payload"` // JSON array of records
	UpdatedAt time.Time
}
