package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/session"
)

// RequireLogin sends anonymous visitors to the login screen. The
// attempted destination is not carried along.
func (g *Gate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := session.FromContext(c)
		if !sess.LoggedIn() {
			return c.Redirect(http.StatusFound, "/login")
		}

		user, err := g.Users.FindByID(c.Request().Context(), sess.UserID)
		if err != nil {
			// stale identity, e.g. the user row is gone
			sess.ClearUser()
			return c.Redirect(http.StatusFound, "/login")
		}

		setUserContext(c, user)
		return next(c)
	}
}
