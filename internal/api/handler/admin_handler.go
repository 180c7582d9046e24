package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventra/eventra-api/internal/core/ports"
)

// AdminHandler serves the administrator overviews. Routes are guarded by
// middleware.RBAC(domain.RoleAdmin).
type AdminHandler struct {
	users  ports.UserService
	events ports.EventService
}

func NewAdminHandler(users ports.UserService, events ports.EventService) *AdminHandler {
	return &AdminHandler{users: users, events: events}
}

// Users handles GET /api/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userSummaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserSummaries(users))
}

// Events handles GET /api/admin/events.
//
// @Summary      List all events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminEventResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/events [get]
func (h *AdminHandler) Events(c echo.Context) error {
	events, err := h.events.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminEvents(events))
}
