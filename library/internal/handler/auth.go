package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-ledger/library/internal/model"
)

// Register godoc
// @Summary register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body model.RegisterRequest true "credentials"
// @Success 201 {object} model.RegisterResponse
// @Failure 400,409 {object} model.Message
// @Router /auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body model.LoginRequest true "credentials"
// @Success 201 {object} model.Token
// @Failure 400,401 {object} model.Message
// @Router /auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	token, err := h.users.Login(c.Request().Context(), req)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, token)
}
