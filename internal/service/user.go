package service

import (
	"context"
	"fmt"

	"gsinfo-directory/internal/auth"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"

	"github.com/google/uuid"
)

type UserService interface {
	GetProfile(ctx context.Context, principal *auth.Principal) (*model.Profile, error)
	UpdateProfile(ctx context.Context, principal *auth.Principal, fields repository.ProfileFields) (*model.Profile, error)
	Roles(ctx context.Context, userID string) ([]model.AppRole, error)
	AddFavorite(ctx context.Context, userID, businessID string) error
	RemoveFavorite(ctx context.Context, userID, businessID string) error
	Favorites(ctx context.Context, userID string) ([]*model.Business, error)
}

type userServiceImpl struct {
	profileRepo  repository.ProfileRepository
	roleRepo     repository.RoleRepository
	favoriteRepo repository.FavoriteRepository
	businessRepo repository.BusinessRepository
}

func NewUserService(
	profileRepo repository.ProfileRepository,
	roleRepo repository.RoleRepository,
	favoriteRepo repository.FavoriteRepository,
	businessRepo repository.BusinessRepository,
) UserService {
	return &userServiceImpl{
		profileRepo:  profileRepo,
		roleRepo:     roleRepo,
		favoriteRepo: favoriteRepo,
		businessRepo: businessRepo,
	}
}

// GetProfile returns the caller's profile, creating it from the token on first access.
func (s *userServiceImpl) GetProfile(ctx context.Context, principal *auth.Principal) (*model.Profile, error) {
	profile := &model.Profile{
		ID:    principal.UserID,
		Email: principal.Email,
	}
	if principal.Phone != "" {
		phone := principal.Phone
		profile.Phone = &phone
	}

	p, err := s.profileRepo.FirstOrCreate(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, principal *auth.Principal, fields repository.ProfileFields) (*model.Profile, error) {
	if _, err := s.GetProfile(ctx, principal); err != nil {
		return nil, err
	}

	p, err := s.profileRepo.Update(ctx, principal.UserID, fields)
	if err != nil {
		return nil, notFoundOr(err, "profile not found", "update profile")
	}
	return p, nil
}

func (s *userServiceImpl) Roles(ctx context.Context, userID string) ([]model.AppRole, error) {
	roles, err := s.roleRepo.Roles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	return roles, nil
}

func (s *userServiceImpl) AddFavorite(ctx context.Context, userID, businessID string) error {
	if _, err := s.businessRepo.FindByID(ctx, nil, businessID); err != nil {
		return notFoundOr(err, "business not found", "find business")
	}

	err := s.favoriteRepo.Add(ctx, &model.Favorite{
		ID:         uuid.NewString(),
		UserID:     userID,
		BusinessID: businessID,
	})
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (s *userServiceImpl) RemoveFavorite(ctx context.Context, userID, businessID string) error {
	return s.favoriteRepo.Remove(ctx, userID, businessID)
}

func (s *userServiceImpl) Favorites(ctx context.Context, userID string) ([]*model.Business, error) {
	return s.favoriteRepo.ListBusinesses(ctx, userID)
}
