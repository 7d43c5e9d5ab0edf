package handler

import (
	"net/http"
	"strconv"

	"gsinfo-directory/internal/dto"
	"gsinfo-directory/internal/middleware"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/service"

	"github.com/labstack/echo/v4"
)

type ClaimHandler struct {
	claimService service.ClaimService
}

func NewClaimHandler(claimService service.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

func (h *ClaimHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubmitClaimRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	claim, err := h.claimService.Submit(ctx, middleware.GetPrincipal(c).UserID, c.Param("id"), req.VerificationDocument, req.Notes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "claim": claim})
}

func (h *ClaimHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	claims, err := h.claimService.List(ctx, model.ClaimStatus(c.QueryParam("status")), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "claims": claims})
}

// Decide accepts the claim id from the path or, on the collection route, from the body.
func (h *ClaimHandler) Decide(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ClaimDecisionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if id := c.Param("id"); id != "" {
		req.ClaimID = id
	}

	claim, err := h.claimService.Decide(ctx, middleware.GetPrincipal(c).UserID, req.ClaimID, model.ClaimStatus(req.Status), req.ReviewerNotes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "claim": claim})
}
