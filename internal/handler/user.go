package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/pkg/auth"
)

func (h *Handler) CurrentUser(c echo.Context) error {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No Identity")
	}
	user, err := h.userSvc.Get(c.Request().Context(), id.UserUID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers returns all users, password digests excluded, newest first.
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.userSvc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser updates a profile. Non-admin callers may only update themselves
// and must present their current password; the service enforces the
// re-authentication rules.
func (h *Handler) UpdateUser(c echo.Context) error {
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No Identity")
	}
	userUid := c.Param("id")
	if id.Role != string(model.RoleAdmin) && id.UserUID != userUid {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient Role")
	}

	var req model.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caller := model.User{UserUid: id.UserUID, Role: model.Role(id.Role)}
	user, err := h.userSvc.Update(c.Request().Context(), userUid, req, caller)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.userSvc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully."})
}

func (h *Handler) StatsOverview(c echo.Context) error {
	overview, err := h.statsSvc.Overview(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, overview)
}
