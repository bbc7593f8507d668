package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libhub/library-service/internal/model"
)

// Burrow borrows a book for a user.
//
//	@Summary	Borrow a book
//	@Tags		burrowings
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		bookId	path		string				true	"book uid"
//	@Param		input	body		model.BurrowRequest	true	"user and book"
//	@Success	201		{object}	model.BorrowRecord
//	@Failure	400		{object}	echo.HTTPError
//	@Failure	404		{object}	echo.HTTPError
//	@Router		/api/books/burrow/{bookId} [put]
func (h *Handler) Burrow(c echo.Context) error {
	var req model.BurrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Book == "" {
		req.Book = c.Param("bookId")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.borrowSvc.Borrow(c.Request().Context(), req.User, req.Book)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Book borrowed successfully",
		"burrowRecord": record,
	})
}

// Return marks a burrowed record returned.
//
//	@Summary	Return a book
//	@Tags		burrowings
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"record uid"
//	@Success	200	{object}	model.BorrowRecord
//	@Failure	400	{object}	echo.HTTPError
//	@Failure	404	{object}	echo.HTTPError
//	@Router		/api/books/return/{id} [put]
func (h *Handler) Return(c echo.Context) error {
	recordUid := c.Param("id")
	if recordUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "record id is empty")
	}

	record, err := h.borrowSvc.Return(c.Request().Context(), recordUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Book returned successfully",
		"burrowRecord": record,
	})
}

// BurrowStatus returns a user's borrowing history, newest first.
func (h *Handler) BurrowStatus(c echo.Context) error {
	userUid := c.Param("userId")
	if userUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user id is empty")
	}

	records, err := h.borrowSvc.GetByUser(c.Request().Context(), userUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) ListBurrowings(c echo.Context) error {
	records, err := h.borrowSvc.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) CountBurrowed(c echo.Context) error {
	count, err := h.borrowSvc.CountActive(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"burrowedBooksCount": count})
}

func (h *Handler) CountOverdue(c echo.Context) error {
	count, err := h.borrowSvc.CountOverdue(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"overdueBooksCount": count})
}
