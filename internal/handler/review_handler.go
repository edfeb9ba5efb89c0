package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "tourly/internal/errors"
	"tourly/internal/service"
)

// ReviewHandler bundles review endpoints, including the nested tour routes.
type ReviewHandler struct {
	svc service.ReviewService
}

// NewReviewHandler creates a handler layer.
func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// ReviewRequest is the create/update payload.
type ReviewRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// ListReviews godoc
// @Summary List all reviews
// @Tags reviews
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.svc.ListReviews(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(reviews),
		"data":    echo.Map{"reviews": reviews},
	})
}

// ListTourReviews godoc
// @Summary List the reviews of one tour
// @Tags reviews
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} map[string]interface{}
// @Router /tours/{id}/reviews [get]
func (h *ReviewHandler) ListTourReviews(c echo.Context) error {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.Validation("invalid tour id")
	}
	reviews, err := h.svc.ListTourReviews(c.Request().Context(), tourID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(reviews),
		"data":    echo.Map{"reviews": reviews},
	})
}

// CreateReview godoc
// @Summary Review a tour
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Param request body ReviewRequest true "Review payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tours/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.Validation("invalid tour id")
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	review, err := h.svc.CreateReview(c.Request().Context(), user, tourID, req.Review, req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"review": review},
	})
}

// UpdateReview godoc
// @Summary Update an owned review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body ReviewRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	review, err := h.svc.UpdateReview(c.Request().Context(), user, id, req.Review, req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"review": review},
	})
}

// DeleteReview godoc
// @Summary Delete an owned review
// @Tags reviews
// @Param id path string true "Review ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteReview(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
