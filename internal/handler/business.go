package handler

import (
	"net/http"
	"strconv"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/dto"
	"gsinfo-directory/internal/listing"
	"gsinfo-directory/internal/middleware"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/service"

	"github.com/labstack/echo/v4"
)

type BusinessHandler struct {
	businessService service.BusinessService
	reviewService   service.ReviewService
	inquiryService  service.InquiryService
}

func NewBusinessHandler(
	businessService service.BusinessService,
	reviewService service.ReviewService,
	inquiryService service.InquiryService,
) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		reviewService:   reviewService,
		inquiryService:  inquiryService,
	}
}

func (h *BusinessHandler) Get(c echo.Context) error {
	business, err := h.businessService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "business": business})
}

func (h *BusinessHandler) Reviews(c echo.Context) error {
	reviews, err := h.reviewService.ListApproved(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reviews": reviews})
}

func (h *BusinessHandler) SubmitReview(c echo.Context) error {
	var req dto.SubmitReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewService.Submit(c.Request().Context(), middleware.GetPrincipal(c).UserID, c.Param("id"), req.Rating, req.ReviewText)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "review": review})
}

// SubmitInquiry works for anonymous visitors; signed-in users are linked to the inquiry.
func (h *BusinessHandler) SubmitInquiry(c echo.Context) error {
	var req dto.SubmitInquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var userID *string
	if p := middleware.GetPrincipal(c); p != nil {
		userID = &p.UserID
	}

	inquiry, err := h.inquiryService.Submit(c.Request().Context(), userID, c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "inquiry": inquiry})
}

// -------- admin --------

func (h *BusinessHandler) AdminList(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	businesses, err := h.businessService.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "businesses": businesses})
}

func (h *BusinessHandler) SetVerified(c echo.Context) error {
	var req dto.VerifiedUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.businessService.SetVerified(c.Request().Context(), c.Param("id"), *req.Verified); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *BusinessHandler) Delete(c echo.Context) error {
	if err := h.businessService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *BusinessHandler) Import(c echo.Context) error {
	var listings []listing.Listing
	if err := c.Bind(&listings); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}

	affected, err := h.businessService.Import(c.Request().Context(), listings)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ImportResponse{Success: true, Received: len(listings), Affected: affected})
}

func (h *BusinessHandler) AdminReviews(c echo.Context) error {
	reviews, err := h.reviewService.List(c.Request().Context(), model.ReviewStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reviews": reviews})
}

func (h *BusinessHandler) SetReviewStatus(c echo.Context) error {
	var req dto.StatusUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.reviewService.SetStatus(c.Request().Context(), c.Param("id"), model.ReviewStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *BusinessHandler) AdminInquiries(c echo.Context) error {
	inquiries, err := h.inquiryService.List(c.Request().Context(), model.InquiryStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "inquiries": inquiries})
}

func (h *BusinessHandler) SetInquiryStatus(c echo.Context) error {
	var req dto.StatusUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.inquiryService.SetStatus(c.Request().Context(), c.Param("id"), model.InquiryStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
