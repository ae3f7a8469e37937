package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/middleware/auth"
	"github.com/Skotchmaster/online_bookstore/internal/service"
	"github.com/Skotchmaster/online_bookstore/internal/transport"
)

type UserHTTP struct {
	Svc          *service.UserService
	CookieSecure bool
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	limit, offset, err := pageParams(c, service.UsersDefaultLimit)
	if err != nil {
		return badRequest(l, "list_users_failed", err.Error(), err)
	}

	users, err := h.Svc.ListUsers(ctx, limit, offset)
	if err != nil {
		return fail(l, "list_users_failed", err)
	}
	return c.JSON(http.StatusOK, listResponse(users, limit, offset))
}

// Me returns the signed-in user, or null for anonymous callers.
func (h *UserHTTP) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.CurrentUser(c))
}

func (h *UserHTTP) Logout(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.logout")
	auth.ClearSession(c, h.CookieSecure)
	l.Info("logout_success")
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
