package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "tourly/internal/errors"
	"tourly/internal/middleware"
	"tourly/internal/model"
	"tourly/internal/service"
)

// UserHandler bundles profile self-service and the admin user surface.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateMeRequest is the self-service profile update: name and email only.
type UpdateMeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AdminUpdateUserRequest is the privileged update payload.
type AdminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role"`
}

func requireUser(c echo.Context) (*model.User, error) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return nil, apperrors.NotAuthenticated("You are not logged in! Please log in to get access.")
	}
	return user, nil
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid id")
	}
	return id, nil
}

// GetMe godoc
// @Summary Get the logged-in user's profile
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// UpdateMe godoc
// @Summary Update the logged-in user's name or email
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateMeRequest true "Profile update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/updateMe [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if req.Password != "" || req.Role != "" {
		return service.ErrNoPasswordUpdatesHere
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	updated, err := h.svc.UpdateMe(c.Request().Context(), user, service.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": updated},
	})
}

// DeleteMe godoc
// @Summary Deactivate the logged-in user's account
// @Tags users
// @Success 204
// @Security BearerAuth
// @Router /users/deleteMe [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMe(c.Request().Context(), user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers godoc
// @Summary List all active users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(users),
		"data":    echo.Map{"users": users},
	})
}

// CreateUser godoc
// @Summary Not implemented, accounts are created through signup
// @Tags users
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	return apperrors.Validation("This route is not defined! Please use /signup instead")
}

// GetUser godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// UpdateUser godoc
// @Summary Update any user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body AdminUpdateUserRequest true "Update payload"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req AdminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, err := h.svc.AdminUpdate(c.Request().Context(), id, service.AdminUserUpdate{
		Name:  req.Name,
		Email: req.Email,
		Role:  model.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// DeleteUser godoc
// @Summary Deactivate any user (admin)
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.AdminDelete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
