package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/ganeshmurthy/product-recommender-system/internal/middleware/auth"
)

type Deps struct {
	CartHandler *CartHTTP
	JWTSecret   []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	cart := e.Group("/cart")
	cart.Use(mwauth.RequireAuth(d.JWTSecret))

	cart.GET("/:user_id", d.CartHandler.GetCart, mwauth.RequireCartOwner)
	cart.POST("/:user_id", d.CartHandler.AddItem, mwauth.RequireCartOwner)
	cart.PUT("/:user_id", d.CartHandler.UpdateItem, mwauth.RequireCartOwner)
	cart.DELETE("/:user_id", d.CartHandler.RemoveItem, mwauth.RequireCartOwner)
}
