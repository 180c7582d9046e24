package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventra/eventra-api/internal/api/metrics"
	"github.com/eventra/eventra-api/internal/core/domain"
	"github.com/eventra/eventra-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new user account with the requested role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(roleLabel(req.Role), domain.Reason(domain.ErrInvalidInput)).Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	confirmation, err := h.authService.Signup(c.Request().Context(), toSignupInput(req))
	metrics.SignupsTotal.WithLabelValues(roleLabel(req.Role), domain.Reason(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: confirmation.Message})
}

// Login authenticates a user and returns a bearer token with the account's
// roles and permissions.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(domain.Reason(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLoginResponse(result))
}

// roleLabel bounds the metric label to known role names.
func roleLabel(raw string) string {
	role, ok := domain.ParseRoleName(raw)
	if !ok {
		return "invalid"
	}
	return string(role)
}
