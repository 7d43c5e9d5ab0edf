package repository

import (
	"context"
	"gsinfo-directory/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BusinessRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, businessID string) (*model.Business, error)
	FindByListingID(ctx context.Context, listingID string) (*model.Business, error)
	List(ctx context.Context, limit int) ([]*model.Business, error)
	Count(ctx context.Context) (int64, error)
	MarkClaimed(ctx context.Context, tx *gorm.DB, businessID, userID string, at time.Time) (bool, error)
	SetVerified(ctx context.Context, businessID string, verified bool) error
	Delete(ctx context.Context, businessID string) error
	UpsertByListingID(ctx context.Context, businesses []*model.Business) (int64, error)
}

type businessRepoImpl struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepoImpl{
		db: db,
	}
}

func (r *businessRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, businessID string) (*model.Business, error) {
	if tx == nil {
		tx = r.db
	}

	var business model.Business
	err := tx.WithContext(ctx).
		Where("id = ?", businessID).
		First(&business).Error
	if err != nil {
		return nil, err
	}

	return &business, nil
}

func (r *businessRepoImpl) FindByListingID(ctx context.Context, listingID string) (*model.Business, error) {
	var business model.Business
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		First(&business).Error
	if err != nil {
		return nil, err
	}

	return &business, nil
}

func (r *businessRepoImpl) List(ctx context.Context, limit int) ([]*model.Business, error) {
	var businesses []*model.Business
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *businessRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Business{}).Count(&count).Error
	return count, err
}

// MarkClaimed assigns the business to userID only if nobody owns it yet.
func (r *businessRepoImpl) MarkClaimed(ctx context.Context, tx *gorm.DB, businessID, userID string, at time.Time) (bool, error) {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).Model(&model.Business{}).
		Where("id = ? AND claimed = ?", businessID, false).
		Updates(map[string]interface{}{
			"claimed":    true,
			"claimed_by": userID,
			"claimed_at": at,
			"updated_at": at,
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *businessRepoImpl) SetVerified(ctx context.Context, businessID string, verified bool) error {
	result := r.db.
		WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", businessID).
		Updates(map[string]interface{}{
			"verified":   verified,
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

func (r *businessRepoImpl) Delete(ctx context.Context, businessID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", businessID).
		Delete(&model.Business{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpsertByListingID inserts new listings and refreshes directory fields of
// existing ones. Ownership and verification columns are left untouched.
func (r *businessRepoImpl) UpsertByListingID(ctx context.Context, businesses []*model.Business) (int64, error) {
	if len(businesses) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "listing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "subcategory", "address", "locality", "city", "state", "pincode",
			"phone_numbers", "website", "email", "opening_hours", "rating", "reviews_count",
			"description", "images", "geo_lat", "geo_lon", "last_updated", "updated_at",
		}),
	}).CreateInBatches(businesses, 100)

	return result.RowsAffected, result.Error
}
