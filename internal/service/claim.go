package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxClaimList = 100

type ClaimService interface {
	Submit(ctx context.Context, userID, businessID string, document, notes *string) (*model.BusinessClaim, error)
	List(ctx context.Context, status model.ClaimStatus, limit int) ([]*model.BusinessClaim, error)
	Decide(ctx context.Context, adminID, claimID string, decision model.ClaimStatus, reviewerNotes *string) (*model.BusinessClaim, error)
}

type claimServiceImpl struct {
	db           *gorm.DB
	claimRepo    repository.ClaimRepository
	businessRepo repository.BusinessRepository
	logger       *slog.Logger
	now          func() time.Time
}

func NewClaimService(
	db *gorm.DB,
	claimRepo repository.ClaimRepository,
	businessRepo repository.BusinessRepository,
	logger *slog.Logger,
) ClaimService {
	if logger == nil {
		logger = slog.Default()
	}
	return &claimServiceImpl{
		db:           db,
		claimRepo:    claimRepo,
		businessRepo: businessRepo,
		logger:       logger.With("component", "claims"),
		now:          time.Now,
	}
}

func (s *claimServiceImpl) Submit(ctx context.Context, userID, businessID string, document, notes *string) (*model.BusinessClaim, error) {
	if userID == "" {
		return nil, apperror.Authorization("authentication required")
	}

	business, err := s.businessRepo.FindByID(ctx, nil, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("business not found")
		}
		return nil, fmt.Errorf("find business: %w", err)
	}
	if business.Claimed {
		return nil, apperror.Conflict("business is already claimed")
	}

	claim := &model.BusinessClaim{
		ID:                   uuid.NewString(),
		BusinessID:           businessID,
		UserID:               userID,
		Status:               model.ClaimPending,
		VerificationDocument: document,
		Notes:                notes,
	}
	created, err := s.claimRepo.CreatePending(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("store claim: %w", err)
	}
	if !created {
		return nil, apperror.Conflict("you already have a pending claim for this business")
	}

	s.logger.InfoContext(ctx, "claim submitted", "claim_id", claim.ID, "business_id", businessID, "user_id", userID)
	return claim, nil
}

func (s *claimServiceImpl) List(ctx context.Context, status model.ClaimStatus, limit int) ([]*model.BusinessClaim, error) {
	if status != "" && status != model.ClaimPending && !status.IsDecision() {
		return nil, apperror.Validation("unknown claim status")
	}

	if limit <= 0 || limit > maxClaimList {
		limit = maxClaimList
	}

	claims, err := s.claimRepo.List(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}

// Decide applies an administrator's decision. The claim update and, on approval,
// the business ownership update commit together or not at all.
func (s *claimServiceImpl) Decide(ctx context.Context, adminID, claimID string, decision model.ClaimStatus, reviewerNotes *string) (*model.BusinessClaim, error) {
	if !decision.IsDecision() {
		return nil, apperror.Validation("status must be approved or rejected")
	}

	log := s.logger.With("claim_id", claimID, "decision", decision, "admin_id", adminID)
	now := s.now()

	var claim *model.BusinessClaim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		decided, err := s.claimRepo.Decide(ctx, tx, repository.ClaimDecision{
			ClaimID:       claimID,
			Status:        decision,
			ReviewerNotes: reviewerNotes,
			DecidedBy:     adminID,
			DecidedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("update claim: %w", err)
		}

		claim, err = s.claimRepo.FindByID(ctx, tx, claimID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("claim not found")
			}
			return fmt.Errorf("find claim: %w", err)
		}
		if !decided {
			return apperror.Conflict(fmt.Sprintf("claim already %s", claim.Status))
		}

		if decision != model.ClaimApproved {
			return nil
		}

		claimed, err := s.businessRepo.MarkClaimed(ctx, tx, claim.BusinessID, claim.UserID, now)
		if err != nil {
			return fmt.Errorf("update business: %w", err)
		}
		if !claimed {
			if _, err := s.businessRepo.FindByID(ctx, tx, claim.BusinessID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.NotFound("business not found")
				}
				return fmt.Errorf("find business: %w", err)
			}
			return apperror.Conflict("business is already claimed")
		}
		return nil
	})
	if err != nil {
		log.WarnContext(ctx, "claim decision not applied", "error", err)
		return nil, err
	}

	log.InfoContext(ctx, "claim decided", "business_id", claim.BusinessID)
	return claim, nil
}
