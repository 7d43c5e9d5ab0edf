package model

import "time"

type InquiryStatus string

const (
	InquiryNew      InquiryStatus = "new"
	InquiryResolved InquiryStatus = "resolved"
)

type Inquiry struct {
	ID         string        `gorm:"primaryKey;size:36;not null" json:"id"`
	BusinessID string        `gorm:"size:36;index;not null" json:"business_id"`
	UserID     *string       `gorm:"size:36;index" json:"user_id"` // anonymous visitors allowed
	Name       string        `gorm:"size:255;not null" json:"name"`
	Email      string        `gorm:"size:255;not null" json:"email"`
	Phone      *string       `gorm:"size:32" json:"phone"`
	Message    string        `gorm:"type:text;not null" json:"message"`
	Status     InquiryStatus `gorm:"size:16;index;not null" json:"status"`
	CreatedAt  time.Time     `gorm:"index" json:"created_at"`
}
