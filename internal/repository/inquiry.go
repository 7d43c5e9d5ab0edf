package repository

import (
	"context"
	"gsinfo-directory/internal/model"

	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	List(ctx context.Context, status model.InquiryStatus) ([]*model.Inquiry, error)
	SetStatus(ctx context.Context, inquiryID string, status model.InquiryStatus) error
	CountByStatus(ctx context.Context, status model.InquiryStatus) (int64, error)
}

type inquiryRepoImpl struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepoImpl{
		db: db,
	}
}

func (r *inquiryRepoImpl) Create(ctx context.Context, inquiry *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepoImpl) List(ctx context.Context, status model.InquiryStatus) ([]*model.Inquiry, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var inquiries []*model.Inquiry
	if err := q.Find(&inquiries).Error; err != nil {
		return nil, err
	}

	return inquiries, nil
}

func (r *inquiryRepoImpl) SetStatus(ctx context.Context, inquiryID string, status model.InquiryStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Inquiry{}).
		Where("id = ?", inquiryID).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *inquiryRepoImpl) CountByStatus(ctx context.Context, status model.InquiryStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Inquiry{}).
		Where("status = ?", status).
		Count(&count).Error

	return count, err
}
