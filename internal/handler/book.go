package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libhub/library-service/internal/model"
)

// ListBooks returns the whole catalog.
//
//	@Summary	List books
//	@Tags		books
//	@Produce	json
//	@Success	200	{array}	model.Book
//	@Router		/api/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.bookSvc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) CountBooks(c echo.Context) error {
	count, err := h.bookSvc.Count(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"totalBooks": count})
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.bookSvc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBook adds a book to the catalog.
//
//	@Summary	Create a book
//	@Tags		books
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.CreateBookRequest	true	"book"
//	@Success	201		{object}	model.Book
//	@Failure	400		{object}	echo.HTTPError
//	@Router		/api/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.bookSvc.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Book created successfully",
		"newBook": book,
	})
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.bookSvc.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Book updated",
		"updatedBook": book,
	})
}

func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.bookSvc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book deleted successfully"})
}

func (h *Handler) CategoryCounts(c echo.Context) error {
	counts, err := h.bookSvc.CountByCategory(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categoryCounts": counts})
}
