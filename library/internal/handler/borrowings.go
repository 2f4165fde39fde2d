package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-ledger/library/internal/model"
)

// CreateBorrowing godoc
// @Summary lend a copy of a book
// @Tags borrowings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param borrowing body model.CreateBorrowingRequest true "borrowing"
// @Success 201 {object} model.Borrowing
// @Failure 400,401,404 {object} model.Message
// @Router /borrowings [post]
func (h *Handler) CreateBorrowing(c echo.Context) error {
	var req model.CreateBorrowingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	borrowing, err := h.ledger.CreateBorrowing(c.Request().Context(), req)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, borrowing)
}

// ListBorrowings godoc
// @Summary list borrowings, newest first
// @Tags borrowings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Borrowing
// @Failure 401 {object} model.Message
// @Router /borrowings [get]
func (h *Handler) ListBorrowings(c echo.Context) error {
	list, err := h.ledger.ListBorrowings(c.Request().Context())
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// GetBorrowing godoc
// @Summary get a borrowing
// @Tags borrowings
// @Security BearerAuth
// @Produce json
// @Param id path int true "borrowing id"
// @Success 200 {object} model.Borrowing
// @Failure 400,401,404 {object} model.Message
// @Router /borrowings/{id} [get]
func (h *Handler) GetBorrowing(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	borrowing, err := h.ledger.GetBorrowing(c.Request().Context(), id)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, borrowing)
}

// ReturnBook godoc
// @Summary return a borrowed copy
// @Tags borrowings
// @Security BearerAuth
// @Produce json
// @Param id path int true "borrowing id"
// @Success 200 {object} model.Borrowing
// @Failure 400,401,404 {object} model.Message
// @Router /borrowings/{id}/return [put]
func (h *Handler) ReturnBook(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	borrowing, err := h.ledger.ReturnBook(c.Request().Context(), id)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, borrowing)
}

// DeleteBorrowing godoc
// @Summary delete a borrowing
// @Tags borrowings
// @Security BearerAuth
// @Produce json
// @Param id path int true "borrowing id"
// @Success 200 {object} model.Message
// @Failure 400,401,404 {object} model.Message
// @Router /borrowings/{id} [delete]
func (h *Handler) DeleteBorrowing(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.ledger.RemoveBorrowing(c.Request().Context(), id); err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, model.Message{Message: "Borrowing deleted successfully"})
}
