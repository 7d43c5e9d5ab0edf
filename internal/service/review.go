package service

import (
	"context"
	"fmt"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"

	"github.com/google/uuid"
)

type ReviewService interface {
	Submit(ctx context.Context, userID, businessID string, rating int, text *string) (*model.Review, error)
	ListApproved(ctx context.Context, businessID string) ([]*model.Review, error)
	List(ctx context.Context, status model.ReviewStatus) ([]*model.Review, error)
	SetStatus(ctx context.Context, reviewID string, status model.ReviewStatus) error
}

type reviewServiceImpl struct {
	reviewRepo   repository.ReviewRepository
	businessRepo repository.BusinessRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, businessRepo repository.BusinessRepository) ReviewService {
	return &reviewServiceImpl{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
	}
}

// Submit stores a review awaiting moderation.
func (s *reviewServiceImpl) Submit(ctx context.Context, userID, businessID string, rating int, text *string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}
	if _, err := s.businessRepo.FindByID(ctx, nil, businessID); err != nil {
		return nil, notFoundOr(err, "business not found", "find business")
	}

	review := &model.Review{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		UserID:     userID,
		Rating:     rating,
		ReviewText: text,
		Status:     model.ReviewPending,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("store review: %w", err)
	}
	return review, nil
}

func (s *reviewServiceImpl) ListApproved(ctx context.Context, businessID string) ([]*model.Review, error) {
	return s.reviewRepo.ListByBusiness(ctx, businessID, model.ReviewApproved)
}

func (s *reviewServiceImpl) List(ctx context.Context, status model.ReviewStatus) ([]*model.Review, error) {
	switch status {
	case "", model.ReviewPending, model.ReviewApproved, model.ReviewRejected:
	default:
		return nil, apperror.Validation("unknown review status")
	}
	return s.reviewRepo.List(ctx, status)
}

func (s *reviewServiceImpl) SetStatus(ctx context.Context, reviewID string, status model.ReviewStatus) error {
	if status != model.ReviewApproved && status != model.ReviewRejected {
		return apperror.Validation("status must be approved or rejected")
	}
	if err := s.reviewRepo.SetStatus(ctx, reviewID, status); err != nil {
		return notFoundOr(err, "review not found", "set review status")
	}
	return nil
}
