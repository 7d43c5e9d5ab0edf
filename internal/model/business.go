package model

import (
	"time"

	"gorm.io/datatypes"
)

type Business struct {
	ID           string                      `gorm:"primaryKey;size:36;not null" json:"id"`
	ListingID    string                      `gorm:"size:64;uniqueIndex;not null" json:"listing_id"` // directory source id
	Name         string                      `gorm:"size:255;not null" json:"name"`
	Category     string                      `gorm:"size:128;index;not null" json:"category"`
	Subcategory  string                      `gorm:"size:128" json:"subcategory"`
	Address      string                      `gorm:"size:512" json:"address"`
	Locality     string                      `gorm:"size:128" json:"locality"`
	City         string                      `gorm:"size:128;index" json:"city"`
	State        string                      `gorm:"size:128" json:"state"`
	Pincode      string                      `gorm:"size:16" json:"pincode"`
	PhoneNumbers datatypes.JSONSlice[string] `json:"phone_numbers"`
	Website      string                      `gorm:"size:512" json:"website"`
	Email        string                      `gorm:"size:255" json:"email"`
	OpeningHours datatypes.JSONSlice[string] `json:"opening_hours"`
	Rating       float64                     `json:"rating"`
	ReviewsCount int                         `json:"reviews_count"`
	Description  string                      `gorm:"type:text" json:"description"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	GeoLat       *float64                    `json:"geo_lat"`
	GeoLon       *float64                    `json:"geo_lon"`
	Verified     bool                        `gorm:"not null;default:false" json:"verified"`

	// set only by an approved claim
	Claimed   bool       `gorm:"not null;default:false;index" json:"claimed"`
	ClaimedBy *string    `gorm:"size:36" json:"claimed_by"`
	ClaimedAt *time.Time `json:"claimed_at"`

	LastUpdated *time.Time `json:"last_updated"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
