package repository

import (
	"context"
	"gsinfo-directory/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *model.Favorite) error
	Remove(ctx context.Context, userID, businessID string) error
	ListBusinesses(ctx context.Context, userID string) ([]*model.Business, error)
}

type favoriteRepoImpl struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepoImpl{
		db: db,
	}
}

// Add is idempotent per (user, business).
func (r *favoriteRepoImpl) Add(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "business_id"}},
		DoNothing: true,
	}).Create(favorite).Error
}

func (r *favoriteRepoImpl) Remove(ctx context.Context, userID, businessID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepoImpl) ListBusinesses(ctx context.Context, userID string) ([]*model.Business, error) {
	favorites := r.db.Model(&model.Favorite{}).
		Select("business_id").
		Where("user_id = ?", userID)

	var businesses []*model.Business
	err := r.db.WithContext(ctx).
		Where("id IN (?)", favorites).
		Order("name ASC").
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}

	return businesses, nil
}
