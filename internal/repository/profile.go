package repository

import (
	"context"
	"gsinfo-directory/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	FirstOrCreate(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	Update(ctx context.Context, profileID string, fields ProfileFields) (*model.Profile, error)
	Count(ctx context.Context) (int64, error)
}

// ProfileFields holds the user-editable columns; nil leaves a column unchanged.
type ProfileFields struct {
	FullName  *string
	Phone     *string
	AvatarURL *string
}

type profileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepoImpl{
		db: db,
	}
}

func (r *profileRepoImpl) FirstOrCreate(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	var out model.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", profile.ID).
		Attrs(profile).
		FirstOrCreate(&out).Error
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *profileRepoImpl) Update(ctx context.Context, profileID string, fields ProfileFields) (*model.Profile, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if fields.FullName != nil {
		updates["full_name"] = *fields.FullName
	}
	if fields.Phone != nil {
		updates["phone"] = *fields.Phone
	}
	if fields.AvatarURL != nil {
		updates["avatar_url"] = *fields.AvatarURL
	}

	var profile model.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Profile{}).
			Where("id = ?", profileID).
			Updates(updates)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", profileID).First(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Profile{}).Count(&count).Error
	return count, err
}
