package models

type Venue struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
	CanonicalKey string `gorm:"uniqueIndex;not null" json:"-"`

	Timestamps
}
