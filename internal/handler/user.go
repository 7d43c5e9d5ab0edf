package handler

import (
	"net/http"

	"gsinfo-directory/internal/dto"
	"gsinfo-directory/internal/middleware"
	"gsinfo-directory/internal/repository"
	"gsinfo-directory/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService  service.UserService
	adminService service.AdminService
}

func NewUserHandler(userService service.UserService, adminService service.AdminService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		adminService: adminService,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	principal := middleware.GetPrincipal(c)

	profile, err := h.userService.GetProfile(ctx, principal)
	if err != nil {
		return err
	}
	roles, err := h.userService.Roles(ctx, principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "profile": profile, "roles": roles})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.userService.UpdateProfile(c.Request().Context(), middleware.GetPrincipal(c), repository.ProfileFields{
		FullName:  req.FullName,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "profile": profile})
}

func (h *UserHandler) Favorites(c echo.Context) error {
	businesses, err := h.userService.Favorites(c.Request().Context(), middleware.GetPrincipal(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "businesses": businesses})
}

func (h *UserHandler) AddFavorite(c echo.Context) error {
	if err := h.userService.AddFavorite(c.Request().Context(), middleware.GetPrincipal(c).UserID, c.Param("businessID")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	if err := h.userService.RemoveFavorite(c.Request().Context(), middleware.GetPrincipal(c).UserID, c.Param("businessID")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stats": stats})
}
