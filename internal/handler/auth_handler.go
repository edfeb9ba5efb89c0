package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"tourly/internal/auth"
	"tourly/internal/config"
	apperrors "tourly/internal/errors"
	"tourly/internal/middleware"
	"tourly/internal/model"
	"tourly/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// SignupRequest represents a signup request. The confirmation field is used
// for equality validation only and is never persisted.
type SignupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest carries the address to mail a reset token to.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the new password for a reset-token flow.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

// UpdatePasswordRequest carries an authenticated password change.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

// sendToken writes the session cookie and the standard auth response body.
func (h *AuthHandler) sendToken(c echo.Context, statusCode int, token string, user *model.User) error {
	c.SetCookie(auth.SessionCookie(token, h.cfg.CookieExpiry, h.cfg.Production()))
	body := echo.Map{
		"status": "success",
		"token":  token,
	}
	if user != nil {
		body["data"] = echo.Map{"user": user}
	}
	return c.JSON(statusCode, body)
}

// Signup godoc
// @Summary Sign up a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusCreated, token, user)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.Validation("Please provide email and password!")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token, user)
}

// Logout godoc
// @Summary Log out by overwriting the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /users/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	// No server-side revocation: the bearer token stays valid until its own
	// expiry. This only clears the browser's copy.
	c.SetCookie(auth.LogoutCookie(h.cfg.Production()))
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// ForgotPassword godoc
// @Summary Request a password-reset token by email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	resetURLBase := fmt.Sprintf("%s://%s/api/v1/users/resetPassword", c.Scheme(), c.Request().Host)
	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email, resetURLBase); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Token sent to email!",
	})
}

// ResetPassword godoc
// @Summary Reset the password with a mailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Plaintext reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/resetPassword/{token} [patch]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token, user)
}

// UpdatePassword godoc
// @Summary Change the password of the logged-in user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "Password change"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/updateMyPassword [patch]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return apperrors.NotAuthenticated("You are not logged in! Please log in to get access.")
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	token, err := h.authService.UpdatePassword(c.Request().Context(), user, req.PasswordCurrent, req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token, user)
}
