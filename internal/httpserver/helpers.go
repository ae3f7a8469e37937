package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_bookstore/internal/service"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
	"github.com/Skotchmaster/online_bookstore/internal/util"
	"github.com/Skotchmaster/online_bookstore/internal/validation"
)

// Validator plugs the shared request validation into echo.
type Validator struct{}

func (Validator) Validate(i any) error {
	if err := validation.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// fail maps a service error to an HTTP error and logs it under event.
func fail(l *slog.Logger, event string, err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		l.Warn(event, "status", he.Code, "reason", he.Message, "error", err)
		return he
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid input", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		l.Warn(event, "status", 401, "reason", "unauthenticated", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrForbidden):
		l.Warn(event, "status", 403, "reason", "forbidden", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "already exists", "error", err)
		return echo.NewHTTPError(http.StatusConflict, "already exists")
	case errors.Is(err, service.ErrStorageUnavailable):
		l.Error(event, "status", 503, "reason", "storage unavailable", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable")
	default:
		l.Error(event, "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func notFound(l *slog.Logger, event, what string) error {
	l.Warn(event, "status", 404, "reason", what+" not found")
	return echo.NewHTTPError(http.StatusNotFound, what+" not found")
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", 400, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

// bindValid decodes the body into req and runs the validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return c.Validate(req)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("id %q is not a positive integer", c.Param("id"))
	}
	return uint(id), nil
}

func optionalUint(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a non-negative integer", name)
	}
	u := uint(v)
	return &u, nil
}

func pageParams(c echo.Context, defLimit int) (limit, offset int, err error) {
	if limit, err = util.ParseIntDefault(c.QueryParam("limit"), defLimit); err != nil {
		return 0, 0, err
	}
	if offset, err = util.ParseIntDefault(c.QueryParam("offset"), 0); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func listResponse[T any](items []T, limit, offset int) transport.ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return transport.ListResponse[T]{
		Data: items,
		Meta: transport.PageMeta{Limit: limit, Offset: offset},
	}
}
