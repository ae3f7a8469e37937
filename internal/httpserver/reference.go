package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/service"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
)

// refResource wires the five CRUD handlers of one reference entity.
type refResource[T any, C any, P any] struct {
	name   string
	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id uint) (*T, error)
	create func(ctx context.Context, req C) (*T, error)
	update func(ctx context.Context, id uint, req P) (*T, error)
	delete func(ctx context.Context, id uint) error
}

func (r refResource[T, C, P]) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", r.name+".list")

	items, err := r.list(ctx)
	if err != nil {
		return fail(l, "list_"+r.name+"_failed", err)
	}
	return c.JSON(http.StatusOK, listResponse(items, len(items), 0))
}

func (r refResource[T, C, P]) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", r.name+".get")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "get_"+r.name+"_failed", "invalid id", err)
	}

	item, err := r.get(ctx, id)
	if err != nil {
		return fail(l, "get_"+r.name+"_failed", err)
	}
	if item == nil {
		return notFound(l, "get_"+r.name+"_failed", r.name)
	}
	return c.JSON(http.StatusOK, item)
}

func (r refResource[T, C, P]) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", r.name+".create")

	var req C
	if err := bindValid(c, &req); err != nil {
		return fail(l, "create_"+r.name+"_failed", err)
	}

	item, err := r.create(ctx, req)
	if err != nil {
		return fail(l, "create_"+r.name+"_failed", err)
	}

	l.Info("create_" + r.name + "_success")
	return c.JSON(http.StatusCreated, item)
}

func (r refResource[T, C, P]) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", r.name+".patch")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "patch_"+r.name+"_failed", "invalid id", err)
	}

	var req P
	if err := bindValid(c, &req); err != nil {
		return fail(l, "patch_"+r.name+"_failed", err)
	}

	item, err := r.update(ctx, id, req)
	if err != nil {
		return fail(l, "patch_"+r.name+"_failed", err)
	}
	if item == nil {
		return notFound(l, "patch_"+r.name+"_failed", r.name)
	}
	return c.JSON(http.StatusOK, item)
}

func (r refResource[T, C, P]) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", r.name+".delete")

	id, err := parseID(c)
	if err != nil {
		return badRequest(l, "delete_"+r.name+"_failed", "invalid id", err)
	}
	if err := r.delete(ctx, id); err != nil {
		return fail(l, "delete_"+r.name+"_failed", err)
	}
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (r refResource[T, C, P]) register(g *echo.Group, admin echo.MiddlewareFunc) {
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.POST("", r.Create, admin)
	g.PATCH("/:id", r.Patch, admin)
	g.DELETE("/:id", r.Delete, admin)
}

type ReferenceHTTP struct {
	Svc *service.ReferenceService
}

func (h *ReferenceHTTP) Register(v1 *echo.Group, admin echo.MiddlewareFunc) {
	refResource[models.Author, transport.CreateAuthorRequest, transport.PatchAuthorRequest]{
		name:   "author",
		list:   h.Svc.ListAuthors,
		get:    h.Svc.GetAuthor,
		create: h.Svc.CreateAuthor,
		update: h.Svc.UpdateAuthor,
		delete: h.Svc.DeleteAuthor,
	}.register(v1.Group("/authors"), admin)

	refResource[models.Publisher, transport.CreatePublisherRequest, transport.PatchPublisherRequest]{
		name:   "publisher",
		list:   h.Svc.ListPublishers,
		get:    h.Svc.GetPublisher,
		create: h.Svc.CreatePublisher,
		update: h.Svc.UpdatePublisher,
		delete: h.Svc.DeletePublisher,
	}.register(v1.Group("/publishers"), admin)

	refResource[models.Category, transport.CreateCategoryRequest, transport.PatchCategoryRequest]{
		name:   "category",
		list:   h.Svc.ListCategories,
		get:    h.Svc.GetCategory,
		create: h.Svc.CreateCategory,
		update: h.Svc.UpdateCategory,
		delete: h.Svc.DeleteCategory,
	}.register(v1.Group("/categories"), admin)
}
