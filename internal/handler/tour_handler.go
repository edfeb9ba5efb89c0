package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "tourly/internal/errors"
	"tourly/internal/model"
	"tourly/internal/service"
)

// TourHandler bundles the tour CRUD and geospatial endpoints.
type TourHandler struct {
	svc service.TourService
}

// NewTourHandler creates a handler layer.
func NewTourHandler(svc service.TourService) *TourHandler {
	return &TourHandler{svc: svc}
}

// TourRequest is the create/update payload. Zero-valued fields are left
// untouched on update.
type TourRequest struct {
	Name          string          `json:"name"`
	Duration      int             `json:"duration"`
	MaxGroupSize  int             `json:"max_group_size"`
	Difficulty    string          `json:"difficulty"`
	Price         decimal.Decimal `json:"price"`
	PriceDiscount decimal.Decimal `json:"price_discount"`
	Summary       string          `json:"summary"`
	Description   string          `json:"description"`
	ImageCover    string          `json:"image_cover"`
	StartAddress  string          `json:"start_address"`
	StartLat      float64         `json:"start_lat"`
	StartLng      float64         `json:"start_lng"`
}

func (r *TourRequest) toModel() *model.Tour {
	return &model.Tour{
		Name:          r.Name,
		Duration:      r.Duration,
		MaxGroupSize:  r.MaxGroupSize,
		Difficulty:    model.Difficulty(r.Difficulty),
		Price:         r.Price,
		PriceDiscount: r.PriceDiscount,
		Summary:       r.Summary,
		Description:   r.Description,
		ImageCover:    r.ImageCover,
		StartAddress:  r.StartAddress,
		StartLat:      r.StartLat,
		StartLng:      r.StartLng,
	}
}

// parseLatLng splits a "lat,lng" path segment.
func parseLatLng(raw string) (float64, float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, apperrors.Validation("Please provide latitude and longitude in the format lat,lng.")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, apperrors.Validation("invalid latitude")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, apperrors.Validation("invalid longitude")
	}
	return lat, lng, nil
}

// ListTours godoc
// @Summary List all tours
// @Tags tours
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tours [get]
func (h *TourHandler) ListTours(c echo.Context) error {
	tours, err := h.svc.ListTours(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(tours),
		"data":    echo.Map{"tours": tours},
	})
}

// GetTour godoc
// @Summary Get a tour by id
// @Tags tours
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /tours/{id} [get]
func (h *TourHandler) GetTour(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	tour, err := h.svc.GetTour(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"tour": tour},
	})
}

// GetTourBySlug godoc
// @Summary Get a tour by slug
// @Tags tours
// @Produce json
// @Param slug path string true "Tour slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /tours/slug/{slug} [get]
func (h *TourHandler) GetTourBySlug(c echo.Context) error {
	tour, err := h.svc.GetTourBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"tour": tour},
	})
}

// CreateTour godoc
// @Summary Create a tour
// @Tags tours
// @Accept json
// @Produce json
// @Param request body TourRequest true "Tour payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tours [post]
func (h *TourHandler) CreateTour(c echo.Context) error {
	var req TourRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if req.Name == "" {
		return apperrors.Validation("a tour must have a name")
	}

	tour, err := h.svc.CreateTour(c.Request().Context(), req.toModel())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"tour": tour},
	})
}

// UpdateTour godoc
// @Summary Update a tour
// @Tags tours
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Param request body TourRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tours/{id} [patch]
func (h *TourHandler) UpdateTour(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req TourRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	tour, err := h.svc.UpdateTour(c.Request().Context(), id, req.toModel())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"tour": tour},
	})
}

// DeleteTour godoc
// @Summary Delete a tour
// @Tags tours
// @Param id path string true "Tour ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tours/{id} [delete]
func (h *TourHandler) DeleteTour(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTour(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToursWithin godoc
// @Summary List tours starting within a radius of a point
// @Tags tours
// @Produce json
// @Param distance path number true "Radius"
// @Param latlng path string true "Center as lat,lng"
// @Param unit path string true "mi or km"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /tours/tours-within/{distance}/center/{latlng}/unit/{unit} [get]
func (h *TourHandler) ToursWithin(c echo.Context) error {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		return apperrors.Validation("invalid distance")
	}
	lat, lng, err := parseLatLng(c.Param("latlng"))
	if err != nil {
		return err
	}

	tours, err := h.svc.ToursWithin(c.Request().Context(), distance, lat, lng, c.Param("unit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(tours),
		"data":    echo.Map{"tours": tours},
	})
}

// Distances godoc
// @Summary List all tours with their distance from a point
// @Tags tours
// @Produce json
// @Param latlng path string true "Point as lat,lng"
// @Param unit path string true "mi or km"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /tours/distances/{latlng}/unit/{unit} [get]
func (h *TourHandler) Distances(c echo.Context) error {
	lat, lng, err := parseLatLng(c.Param("latlng"))
	if err != nil {
		return err
	}

	rows, err := h.svc.Distances(c.Request().Context(), lat, lng, c.Param("unit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"distances": rows},
	})
}
