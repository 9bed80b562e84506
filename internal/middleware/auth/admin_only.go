package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/session"
)

// AdminOnly guards product mutation routes and the admin dashboard.
// Authenticated non-admins are bounced to their own dashboard with a
// denial flash rather than an error page.
func (g *Gate) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return g.RequireLogin(func(c echo.Context) error {
		if !IsAdmin(c) {
			sess := session.FromContext(c)
			sess.AddFlash("Access denied. Admin privileges required.", "error")
			return c.Redirect(http.StatusFound, "/dashboard")
		}
		return next(c)
	})
}
