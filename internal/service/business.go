package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/listing"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxBusinessList = 100

type BusinessService interface {
	Get(ctx context.Context, businessID string) (*model.Business, error)
	List(ctx context.Context, limit int) ([]*model.Business, error)
	SetVerified(ctx context.Context, businessID string, verified bool) error
	Delete(ctx context.Context, businessID string) error
	Import(ctx context.Context, listings []listing.Listing) (int64, error)
}

type businessServiceImpl struct {
	businessRepo repository.BusinessRepository
	logger       *slog.Logger
}

func NewBusinessService(businessRepo repository.BusinessRepository, logger *slog.Logger) BusinessService {
	if logger == nil {
		logger = slog.Default()
	}
	return &businessServiceImpl{
		businessRepo: businessRepo,
		logger:       logger.With("component", "businesses"),
	}
}

func (s *businessServiceImpl) Get(ctx context.Context, businessID string) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, nil, businessID)
	if err != nil {
		return nil, notFoundOr(err, "business not found", "find business")
	}
	return business, nil
}

func (s *businessServiceImpl) List(ctx context.Context, limit int) ([]*model.Business, error) {
	if limit <= 0 || limit > maxBusinessList {
		limit = maxBusinessList
	}
	return s.businessRepo.List(ctx, limit)
}

func (s *businessServiceImpl) SetVerified(ctx context.Context, businessID string, verified bool) error {
	if err := s.businessRepo.SetVerified(ctx, businessID, verified); err != nil {
		return notFoundOr(err, "business not found", "set verified")
	}
	s.logger.InfoContext(ctx, "business verification changed", "business_id", businessID, "verified", verified)
	return nil
}

func (s *businessServiceImpl) Delete(ctx context.Context, businessID string) error {
	if err := s.businessRepo.Delete(ctx, businessID); err != nil {
		return notFoundOr(err, "business not found", "delete business")
	}
	s.logger.InfoContext(ctx, "business deleted", "business_id", businessID)
	return nil
}

// Import upserts directory listings keyed by listing_id.
func (s *businessServiceImpl) Import(ctx context.Context, listings []listing.Listing) (int64, error) {
	// one row per listing_id: a later entry in the batch replaces an earlier one,
	// as it would across two separate imports
	businesses := make([]*model.Business, 0, len(listings))
	seen := make(map[string]int, len(listings))
	for i, l := range listings {
		if l.ListingID == "" || l.Name == "" {
			return 0, apperror.Validation(fmt.Sprintf("listing %d: listing_id and name are required", i))
		}
		if at, ok := seen[l.ListingID]; ok {
			businesses[at] = BusinessFromListing(l)
			continue
		}
		seen[l.ListingID] = len(businesses)
		businesses = append(businesses, BusinessFromListing(l))
	}

	affected, err := s.businessRepo.UpsertByListingID(ctx, businesses)
	if err != nil {
		return 0, fmt.Errorf("upsert businesses: %w", err)
	}

	s.logger.InfoContext(ctx, "listings imported", "received", len(listings), "unique", len(businesses), "affected", affected)
	return affected, nil
}

func BusinessFromListing(l listing.Listing) *model.Business {
	b := &model.Business{
		ID:           uuid.NewString(),
		ListingID:    l.ListingID,
		Name:         l.Name,
		Category:     l.Category,
		Subcategory:  l.Subcategory,
		Address:      l.Address,
		Locality:     l.Locality,
		City:         l.City,
		State:        l.State,
		Pincode:      l.Pincode,
		PhoneNumbers: l.PhoneNumbers,
		Website:      l.Website,
		Email:        l.Email,
		OpeningHours: l.OpeningHours,
		Rating:       l.Rating,
		ReviewsCount: l.ReviewsCount,
		Description:  l.Description,
		Images:       l.Images,
		Verified:     l.Verified,
	}
	if l.GeoLat != 0 || l.GeoLon != 0 {
		lat, lon := l.GeoLat, l.GeoLon
		b.GeoLat, b.GeoLon = &lat, &lon
	}
	if t, err := time.Parse(time.RFC3339, l.LastUpdated); err == nil {
		b.LastUpdated = &t
	}
	return b
}

func notFoundOr(err error, notFoundMsg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
