package repository

import (
	"context"
	"gsinfo-directory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository interface {
	HasRole(ctx context.Context, userID string, role model.AppRole) (bool, error)
	Grant(ctx context.Context, userID string, role model.AppRole) error
	Roles(ctx context.Context, userID string) ([]model.AppRole, error)
}

type roleRepoImpl struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepoImpl{
		db: db,
	}
}

func (r *roleRepoImpl) HasRole(ctx context.Context, userID string, role model.AppRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error

	return count > 0, err
}

func (r *roleRepoImpl) Grant(ctx context.Context, userID string, role model.AppRole) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(&model.UserRole{
		ID:     uuid.NewString(),
		UserID: userID,
		Role:   role,
	}).Error
}

func (r *roleRepoImpl) Roles(ctx context.Context, userID string) ([]model.AppRole, error) {
	var roles []model.AppRole
	err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, err
	}

	return roles, nil
}
