package handler

import (
	"net/http"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/listing"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	catalog *listing.Catalog
}

func NewListingHandler(catalog *listing.Catalog) *ListingHandler {
	return &ListingHandler{
		catalog: catalog,
	}
}

func (h *ListingHandler) Search(c echo.Context) error {
	results := h.catalog.Search(listing.Query{
		Text:     c.QueryParam("q"),
		Category: c.QueryParam("category"),
		City:     c.QueryParam("city"),
		Sort:     listing.SortKey(c.QueryParam("sort")),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"count":    len(results),
		"listings": results,
	})
}

func (h *ListingHandler) Cities(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "cities": h.catalog.Cities()})
}

func (h *ListingHandler) Get(c echo.Context) error {
	l, ok := h.catalog.Get(c.Param("listingID"))
	if !ok {
		return apperror.NotFound("listing not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "listing": l})
}
