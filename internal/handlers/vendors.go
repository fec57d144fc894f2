package handlers

import (
	"fmt"
	"net/http"

	"rfphub/internal/database"
	"rfphub/internal/models"

	"github.com/labstack/echo/v4"
)

// ListVendorsHandler returns all registered vendors
func ListVendorsHandler(vendors *database.VendorService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := vendors.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	}
}

// CreateVendorHandler registers a vendor directly, ahead of any reply from
// them
func CreateVendorHandler(vendors *database.VendorService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateVendorRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if req.Email == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Email is required"})
		}

		vendor, err := vendors.Create(c.Request().Context(), req.Name, req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		}

		return c.JSON(http.StatusCreated, vendor)
	}
}
