package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
)

type Deps struct {
	Gate           *auth.Gate
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	// public storefront
	e.GET("/", d.ProductHandler.Home)
	e.GET("/search", d.SearchHandler.Search)
	e.GET("/product/:id", d.ProductHandler.ProductDetail)

	// cart, anonymous-friendly
	e.POST("/add_to_cart", d.CartHandler.AddToCart)
	e.GET("/cart", d.CartHandler.CartPage)
	e.POST("/update_cart", d.CartHandler.UpdateCart)
	e.POST("/remove_from_cart/:id", d.CartHandler.RemoveFromCart)

	// auth
	e.GET("/register", d.AuthHandler.RegisterPage)
	e.POST("/register", d.AuthHandler.Register)
	e.GET("/login", d.AuthHandler.LoginPage)
	e.POST("/login", d.AuthHandler.Login)
	e.GET("/logout", d.AuthHandler.Logout, d.Gate.RequireLogin)
	e.GET("/dashboard", d.AuthHandler.Dashboard, d.Gate.RequireLogin)

	// admin-only product management
	e.GET("/admin/dashboard", d.ProductHandler.AdminDashboard, d.Gate.AdminOnly)
	e.GET("/add_product", d.ProductHandler.AddProductPage, d.Gate.AdminOnly)
	e.POST("/add_product", d.ProductHandler.AddProduct, d.Gate.AdminOnly)
	e.GET("/edit_product/:id", d.ProductHandler.EditProductPage, d.Gate.AdminOnly)
	e.POST("/edit_product/:id", d.ProductHandler.EditProduct, d.Gate.AdminOnly)
	e.POST("/delete_product/:id", d.ProductHandler.DeleteProduct, d.Gate.AdminOnly)
}
