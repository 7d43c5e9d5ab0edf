package repository

import (
	"context"
	"gsinfo-directory/internal/model"
	"time"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByBusiness(ctx context.Context, businessID string, status model.ReviewStatus) ([]*model.Review, error)
	List(ctx context.Context, status model.ReviewStatus) ([]*model.Review, error)
	SetStatus(ctx context.Context, reviewID string, status model.ReviewStatus) error
	CountByStatus(ctx context.Context, status model.ReviewStatus) (int64, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) ListByBusiness(ctx context.Context, businessID string, status model.ReviewStatus) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND status = ?", businessID, status).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepoImpl) List(ctx context.Context, status model.ReviewStatus) ([]*model.Review, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var reviews []*model.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepoImpl) SetStatus(ctx context.Context, reviewID string, status model.ReviewStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", reviewID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *reviewRepoImpl) CountByStatus(ctx context.Context, status model.ReviewStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("status = ?", status).
		Count(&count).Error

	return count, err
}
