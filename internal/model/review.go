package model

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

type Review struct {
	ID               string       `gorm:"primaryKey;size:36;not null" json:"id"`
	BusinessID       string       `gorm:"size:36;index;not null" json:"business_id"`
	UserID           string       `gorm:"size:36;index;not null" json:"user_id"`
	Rating           int          `gorm:"not null" json:"rating"`
	ReviewText       *string      `gorm:"type:text" json:"review_text"`
	Status           ReviewStatus `gorm:"size:16;index;not null" json:"status"`
	HelpfulCount     int          `gorm:"not null;default:0" json:"helpful_count"`
	VerifiedPurchase bool         `gorm:"not null;default:false" json:"verified_purchase"`
	CreatedAt        time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
