package model

import "time"

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// IsDecision reports whether s is a status an administrator may set.
func (s ClaimStatus) IsDecision() bool {
	return s == ClaimApproved || s == ClaimRejected
}

// PendingClaimKey identifies the one pending claim a user may hold on a business.
func PendingClaimKey(businessID, userID string) string {
	return businessID + ":" + userID
}

type BusinessClaim struct {
	ID                   string      `gorm:"primaryKey;size:36;not null" json:"id"`
	BusinessID           string      `gorm:"size:36;index;not null" json:"business_id"`
	UserID               string      `gorm:"size:36;index;not null" json:"user_id"`
	Status               ClaimStatus `gorm:"size:16;index;not null" json:"status"`
	PendingKey           *string     `gorm:"size:80;uniqueIndex" json:"-"` // business_id:user_id while pending, NULL once decided
	VerificationDocument *string     `gorm:"size:1024" json:"verification_document"`
	Notes                *string     `gorm:"type:text" json:"notes"`
	ReviewerNotes        *string     `gorm:"type:text" json:"reviewer_notes"`
	DecidedBy            *string     `gorm:"size:36" json:"decided_by"`
	DecidedAt            *time.Time  `json:"decided_at"`
	CreatedAt            time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}
