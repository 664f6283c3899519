package models

import "time"

// Package is a pre-defined photo session offering (price, duration, what's
// included) that users pick from when booking.
type Package struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `json:"price"`
	Description string  `gorm:"size:255" json:"description"`

	DurationMin   int  `gorm:"default:60" json:"duration_minutes"`
	PhotoCount    int  `gorm:"default:10" json:"photo_count"`
	LocationCount int  `gorm:"default:1" json:"location_count"`
	Active        bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
