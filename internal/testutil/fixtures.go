package testutil

import (
	"testing"
	"time"

	"gsinfo-directory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SampleBusiness(listingID, city string) *model.Business {
	return &model.Business{
		ID:           uuid.NewString(),
		ListingID:    listingID,
		Name:         "Business " + listingID,
		Category:     "Cafe",
		City:         city,
		State:        "Maharashtra",
		PhoneNumbers: []string{"9999999999"},
		Rating:       4.2,
		ReviewsCount: 12,
	}
}

func InsertBusiness(t *testing.T, db *gorm.DB, b *model.Business) *model.Business {
	t.Helper()
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("insert business: %v", err)
	}
	return b
}

func InsertClaim(t *testing.T, db *gorm.DB, businessID, userID string, status model.ClaimStatus) *model.BusinessClaim {
	t.Helper()
	claim := &model.BusinessClaim{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		UserID:     userID,
		Status:     status,
		CreatedAt:  time.Now(),
	}
	if status == model.ClaimPending {
		key := model.PendingClaimKey(businessID, userID)
		claim.PendingKey = &key
	}
	if err := db.Create(claim).Error; err != nil {
		t.Fatalf("insert claim: %v", err)
	}
	return claim
}
