package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/drjidental/clinic_backend/models"
	"github.com/drjidental/clinic_backend/repositories"
)

// CatalogStore is the read side of the public dentist/service catalog.
type CatalogStore interface {
	Dentists(ctx context.Context) ([]models.Dentist, error)
	ActiveServices(ctx context.Context) ([]models.Service, error)
	ServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
}

// CatalogController serves the public, read-only clinic catalog.
type CatalogController struct {
	catalog CatalogStore
	logger  *log.Logger
}

func NewCatalogController(catalog CatalogStore) *CatalogController {
	return &CatalogController{
		catalog: catalog,
		logger:  log.New(os.Stdout, "[CATALOG] ", log.LstdFlags),
	}
}

// Dentists lists the clinic's dentists.
func (cc *CatalogController) Dentists(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	dentists, err := cc.catalog.Dentists(ctx)
	if err != nil {
		cc.logger.Printf("Failed to load dentists: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load dentists",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    dentists,
	})
}

// Services lists active services ordered for display.
func (cc *CatalogController) Services(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	svcs, err := cc.catalog.ActiveServices(ctx)
	if err != nil {
		cc.logger.Printf("Failed to load services: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load services",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    svcs,
	})
}

// ServiceBySlug returns a single catalog service.
func (cc *CatalogController) ServiceBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	slug := c.Param("slug")
	svc, err := cc.catalog.ServiceBySlug(ctx, slug)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "Service not found",
			})
		}
		cc.logger.Printf("Failed to load service %s: %v", slug, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load service",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    svc,
	})
}
