package service

import (
	"context"
	"fmt"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/dto"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"

	"github.com/google/uuid"
)

type InquiryService interface {
	Submit(ctx context.Context, userID *string, businessID string, req *dto.SubmitInquiryRequest) (*model.Inquiry, error)
	List(ctx context.Context, status model.InquiryStatus) ([]*model.Inquiry, error)
	SetStatus(ctx context.Context, inquiryID string, status model.InquiryStatus) error
}

type inquiryServiceImpl struct {
	inquiryRepo  repository.InquiryRepository
	businessRepo repository.BusinessRepository
}

func NewInquiryService(inquiryRepo repository.InquiryRepository, businessRepo repository.BusinessRepository) InquiryService {
	return &inquiryServiceImpl{
		inquiryRepo:  inquiryRepo,
		businessRepo: businessRepo,
	}
}

func (s *inquiryServiceImpl) Submit(ctx context.Context, userID *string, businessID string, req *dto.SubmitInquiryRequest) (*model.Inquiry, error) {
	if _, err := s.businessRepo.FindByID(ctx, nil, businessID); err != nil {
		return nil, notFoundOr(err, "business not found", "find business")
	}

	inquiry := &model.Inquiry{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		Status:     model.InquiryNew,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("store inquiry: %w", err)
	}
	return inquiry, nil
}

func (s *inquiryServiceImpl) List(ctx context.Context, status model.InquiryStatus) ([]*model.Inquiry, error) {
	switch status {
	case "", model.InquiryNew, model.InquiryResolved:
	default:
		return nil, apperror.Validation("unknown inquiry status")
	}
	return s.inquiryRepo.List(ctx, status)
}

func (s *inquiryServiceImpl) SetStatus(ctx context.Context, inquiryID string, status model.InquiryStatus) error {
	if status != model.InquiryNew && status != model.InquiryResolved {
		return apperror.Validation("status must be new or resolved")
	}
	if err := s.inquiryRepo.SetStatus(ctx, inquiryID, status); err != nil {
		return notFoundOr(err, "inquiry not found", "set inquiry status")
	}
	return nil
}
