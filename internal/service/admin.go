package service

import (
	"context"
	"fmt"

	"gsinfo-directory/internal/dto"
	"gsinfo-directory/internal/listing"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"
)

type AdminService interface {
	Stats(ctx context.Context) (*dto.Stats, error)
}

type adminServiceImpl struct {
	profileRepo  repository.ProfileRepository
	businessRepo repository.BusinessRepository
	claimRepo    repository.ClaimRepository
	reviewRepo   repository.ReviewRepository
	inquiryRepo  repository.InquiryRepository
	catalog      *listing.Catalog
}

func NewAdminService(
	profileRepo repository.ProfileRepository,
	businessRepo repository.BusinessRepository,
	claimRepo repository.ClaimRepository,
	reviewRepo repository.ReviewRepository,
	inquiryRepo repository.InquiryRepository,
	catalog *listing.Catalog,
) AdminService {
	return &adminServiceImpl{
		profileRepo:  profileRepo,
		businessRepo: businessRepo,
		claimRepo:    claimRepo,
		reviewRepo:   reviewRepo,
		inquiryRepo:  inquiryRepo,
		catalog:      catalog,
	}
}

func (s *adminServiceImpl) Stats(ctx context.Context) (*dto.Stats, error) {
	var (
		stats dto.Stats
		err   error
	)

	if stats.Users, err = s.profileRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.Businesses, err = s.businessRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count businesses: %w", err)
	}
	if stats.PendingClaims, err = s.claimRepo.CountByStatus(ctx, model.ClaimPending); err != nil {
		return nil, fmt.Errorf("count pending claims: %w", err)
	}
	if stats.PendingReviews, err = s.reviewRepo.CountByStatus(ctx, model.ReviewPending); err != nil {
		return nil, fmt.Errorf("count pending reviews: %w", err)
	}
	if stats.NewInquiries, err = s.inquiryRepo.CountByStatus(ctx, model.InquiryNew); err != nil {
		return nil, fmt.Errorf("count new inquiries: %w", err)
	}
	if s.catalog != nil {
		stats.Listings = s.catalog.Len()
	}

	return &stats, nil
}
