package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/online_bookstore/internal/db"
	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/middleware/auth"
)

type Deps struct {
	DB     *gorm.DB
	Gate   *auth.AutoRefreshMiddleware
	Books  *BookHTTP
	Refs   *ReferenceHTTP
	Orders *OrderHTTP
	Users  *UserHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = Validator{}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Warn("readiness_failed", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group("/api/v1")
	admin := d.Gate.RequireAdmin

	books := v1.Group("/books")
	books.GET("", d.Books.ListBooks)
	books.GET("/search", d.Books.SearchBooks)
	books.GET("/featured", d.Books.FeaturedBooks)
	books.GET("/:id", d.Books.GetBook)
	books.POST("", d.Books.CreateBook, admin)
	books.PATCH("/:id", d.Books.PatchBook, admin)
	books.DELETE("/:id", d.Books.DeleteBook, admin)

	d.Refs.Register(v1, admin)

	orders := v1.Group("/orders")
	orders.POST("", d.Orders.CreateOrder, d.Gate.RequireAuth)
	orders.GET("/mine", d.Orders.MyOrders, d.Gate.RequireAuth)
	orders.GET("/:id", d.Orders.GetOrder, d.Gate.RequireAuth)
	orders.GET("", d.Orders.ListOrders, admin)
	orders.PATCH("/:id/status", d.Orders.UpdateStatus, admin)

	v1.GET("/users", d.Users.ListUsers, admin)

	authGroup := v1.Group("/auth")
	authGroup.GET("/me", d.Users.Me, d.Gate.OptionalAuth)
	authGroup.POST("/logout", d.Users.Logout)
}
