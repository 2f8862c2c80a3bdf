package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string  `gorm:"size:255" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"column:price" json:"price"`
	Capacity    int     `gorm:"column:capacity;default:1" json:"capacity"`
	Category    string  `gorm:"size:100;index" json:"category"`
	Location    string  `gorm:"size:255" json:"location"`

	// Amenities and Images hold JSON arrays of strings.
	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	ImageURL  string         `gorm:"column:image_url;size:512" json:"image_url"`
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	Available bool     `gorm:"column:available;default:true" json:"available"`
	Rating    *float64 `gorm:"column:rating" json:"rating,omitempty"`
}
