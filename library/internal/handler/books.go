package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-ledger/library/internal/model"
)

// CreateBook godoc
// @Summary add a book to the catalog
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param book body model.CreateBookRequest true "book"
// @Success 201 {object} model.Book
// @Failure 400,401,409 {object} model.Message
// @Router /books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	book, err := h.catalog.CreateBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

// ListBooks godoc
// @Summary list the catalog
// @Tags books
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Book
// @Failure 401 {object} model.Message
// @Router /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.catalog.ListBooks(c.Request().Context())
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary get a book
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} model.Book
// @Failure 400,401,404 {object} model.Message
// @Router /books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	book, err := h.catalog.GetBook(c.Request().Context(), id)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary update the provided fields of a book
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "book id"
// @Param book body model.UpdateBookRequest true "fields to change"
// @Success 200 {object} model.Book
// @Failure 400,401,404,409 {object} model.Message
// @Router /books/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	book, err := h.catalog.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary remove a book
// @Description Refused with 409 while copies of the book are on loan.
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param id path int true "book id"
// @Success 200 {object} model.Message
// @Failure 400,401,404,409 {object} model.Message
// @Router /books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.RemoveBook(c.Request().Context(), id); err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, model.Message{Message: "Book deleted successfully"})
}
