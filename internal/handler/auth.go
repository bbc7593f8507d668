package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libhub/library-service/internal/model"
)

// Signup registers a new burrower.
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.SignupRequest	true	"user"
//	@Success	201		{object}	model.AuthResponse
//	@Failure	400		{object}	echo.HTTPError
//	@Router		/signup [post]
func (h *Handler) Signup(c echo.Context) error {
	var req model.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.authSvc.Signup(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for a token.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.LoginRequest	true	"credentials"
//	@Success	200		{object}	model.AuthResponse
//	@Failure	400		{object}	echo.HTTPError
//	@Router		/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.authSvc.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) TotalUsers(c echo.Context) error {
	count, err := h.userSvc.Count(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"totalUsers": count})
}
