package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/service"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
)

type BookHTTP struct {
	Svc *service.CatalogService
}

func (h *BookHTTP) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.list")

	limit, offset, err := pageParams(c, service.BooksDefaultLimit)
	if err != nil {
		return badRequest(l, "list_books_failed", err.Error(), err)
	}

	books, err := h.Svc.ListBooks(ctx, limit, offset)
	if err != nil {
		return fail(l, "list_books_failed", err)
	}
	return c.JSON(http.StatusOK, listResponse(books, limit, offset))
}

func (h *BookHTTP) SearchBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.search")

	limit, offset, err := pageParams(c, service.BooksDefaultLimit)
	if err != nil {
		return badRequest(l, "search_books_failed", err.Error(), err)
	}

	f := repo.BookFilter{Query: c.QueryParam("query")}
	if f.CategoryID, err = optionalUint(c, "category_id"); err != nil {
		return badRequest(l, "search_books_failed", err.Error(), err)
	}
	if f.AuthorID, err = optionalUint(c, "author_id"); err != nil {
		return badRequest(l, "search_books_failed", err.Error(), err)
	}
	if f.PublisherID, err = optionalUint(c, "publisher_id"); err != nil {
		return badRequest(l, "search_books_failed", err.Error(), err)
	}

	books, err := h.Svc.SearchBooks(ctx, f, limit, offset)
	if err != nil {
		return fail(l, "search_books_failed", err)
	}
	return c.JSON(http.StatusOK, listResponse(books, limit, offset))
}

func (h *BookHTTP) FeaturedBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.featured")

	limit, _, err := pageParams(c, service.FeaturedDefaultLimit)
	if err != nil {
		return badRequest(l, "featured_books_failed", err.Error(), err)
	}

	books, err := h.Svc.FeaturedBooks(ctx, limit)
	if err != nil {
		return fail(l, "featured_books_failed", err)
	}
	return c.JSON(http.StatusOK, listResponse(books, limit, 0))
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.get")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "get_book_failed", "invalid id", err)
	}

	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		return fail(l, "get_book_failed", err)
	}
	if book == nil {
		return notFound(l, "get_book_failed", "book")
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.create")

	var req transport.CreateBookRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "create_book_failed", err)
	}

	book, err := h.Svc.CreateBook(ctx, req)
	if err != nil {
		return fail(l, "create_book_failed", err)
	}

	l.Info("create_book_success", "book_id", book.ID)
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHTTP) PatchBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.patch")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "patch_book_failed", "invalid id", err)
	}

	var req transport.PatchBookRequest
	if err := bindValid(c, &req); err != nil {
		return fail(l, "patch_book_failed", err)
	}

	book, err := h.Svc.UpdateBook(ctx, id, req)
	if err != nil {
		return fail(l, "patch_book_failed", err)
	}
	if book == nil {
		return notFound(l, "patch_book_failed", "book")
	}

	l.Info("patch_book_success", "book_id", id)
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "books.delete")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "delete_book_failed", "invalid id", err)
	}

	if err := h.Svc.DeleteBook(ctx, id); err != nil {
		return fail(l, "delete_book_failed", err)
	}

	l.Info("delete_book_success", "book_id", id)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
