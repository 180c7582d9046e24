package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventra/eventra-api/internal/api/middleware"
	"github.com/eventra/eventra-api/internal/core/domain"
	"github.com/eventra/eventra-api/internal/core/ports"
)

// UserHandler serves the authenticated user's own resources.
type UserHandler struct {
	users  ports.UserService
	events ports.EventService
}

func NewUserHandler(users ports.UserService, events ports.EventService) *UserHandler {
	return &UserHandler{users: users, events: events}
}

// Profile handles GET /api/user/profile.
//
// @Summary      Current user profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Email: profile.Email, Message: profile.Message})
}

// Events handles GET /api/user/events.
//
// @Summary      Events the current user is registered for
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userEventResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/events [get]
func (h *UserHandler) Events(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	events, err := h.events.ListForUser(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserEvents(events))
}

// identityFrom fails fast with 401 when the Auth middleware did not run.
func identityFrom(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.Email == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
