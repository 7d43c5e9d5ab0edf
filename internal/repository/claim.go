package repository

import (
	"context"
	"gsinfo-directory/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClaimRepository interface {
	CreatePending(ctx context.Context, claim *model.BusinessClaim) (bool, error)
	FindByID(ctx context.Context, tx *gorm.DB, claimID string) (*model.BusinessClaim, error)
	List(ctx context.Context, status model.ClaimStatus, limit int) ([]*model.BusinessClaim, error)
	CountByStatus(ctx context.Context, status model.ClaimStatus) (int64, error)
	Decide(ctx context.Context, tx *gorm.DB, decision ClaimDecision) (bool, error)
}

type ClaimDecision struct {
	ClaimID       string
	Status        model.ClaimStatus
	ReviewerNotes *string
	DecidedBy     string
	DecidedAt     time.Time
}

type claimRepoImpl struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepoImpl{
		db: db,
	}
}

// CreatePending inserts a pending claim unless the same user already holds one on
// the business. The unique pending_key decides, so concurrent submissions cannot
// both land. It reports whether the claim was stored.
func (r *claimRepoImpl) CreatePending(ctx context.Context, claim *model.BusinessClaim) (bool, error) {
	key := model.PendingClaimKey(claim.BusinessID, claim.UserID)
	claim.Status = model.ClaimPending
	claim.PendingKey = &key

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "pending_key"}}, DoNothing: true}).
		Create(claim)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *claimRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, claimID string) (*model.BusinessClaim, error) {
	if tx == nil {
		tx = r.db
	}

	var claim model.BusinessClaim
	err := tx.WithContext(ctx).
		Where("id = ?", claimID).
		First(&claim).Error
	if err != nil {
		return nil, err
	}

	return &claim, nil
}

// List returns at most limit claims, newest first; an empty status matches every claim.
func (r *claimRepoImpl) List(ctx context.Context, status model.ClaimStatus, limit int) ([]*model.BusinessClaim, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var claims []*model.BusinessClaim
	if err := q.Find(&claims).Error; err != nil {
		return nil, err
	}

	return claims, nil
}

func (r *claimRepoImpl) CountByStatus(ctx context.Context, status model.ClaimStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BusinessClaim{}).
		Where("status = ?", status).
		Count(&count).Error

	return count, err
}

// Decide writes the decision only while the claim is still pending, so two
// concurrent decisions cannot both succeed. It reports whether a row changed.
func (r *claimRepoImpl) Decide(ctx context.Context, tx *gorm.DB, decision ClaimDecision) (bool, error) {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).Model(&model.BusinessClaim{}).
		Where("id = ? AND status = ?", decision.ClaimID, model.ClaimPending).
		Updates(map[string]interface{}{
			"status":         decision.Status,
			"pending_key":    nil,
			"reviewer_notes": decision.ReviewerNotes,
			"decided_by":     decision.DecidedBy,
			"decided_at":     decision.DecidedAt,
			"updated_at":     decision.DecidedAt,
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
